package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// LoadFile reads a YAML config file into cfg via viper, on top of
// whatever defaults and env overrides cfg already carries. Only keys
// present in the file are applied.
func LoadFile(path string, cfg Config) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	return fromViper(v, cfg)
}

func fromViper(v *viper.Viper, cfg Config) (Config, error) {
	if v.IsSet("engine") {
		cfg.Engine = v.GetString("engine")
	}
	if v.IsSet("sample_rate") {
		cfg.SampleRate = v.GetInt("sample_rate")
	}
	if v.IsSet("log_level") {
		cfg.LogLevel = v.GetString("log_level")
	}

	if v.IsSet("admission.max_short") {
		cfg.Admission.MaxShort = v.GetInt("admission.max_short")
	}
	if v.IsSet("admission.max_medium") {
		cfg.Admission.MaxMedium = v.GetInt("admission.max_medium")
	}
	if v.IsSet("admission.max_long") {
		cfg.Admission.MaxLong = v.GetInt("admission.max_long")
	}

	if v.IsSet("cache.max_entries") {
		cfg.Cache.MaxEntries = v.GetInt("cache.max_entries")
	}

	if v.IsSet("cmdline.binary") {
		cfg.Cmdline.Binary = v.GetString("cmdline.binary")
	}
	if v.IsSet("cmdline.args") {
		cfg.Cmdline.Args = v.GetStringSlice("cmdline.args")
	}
	if v.IsSet("cmdline.output_dir") {
		cfg.Cmdline.OutputDir = v.GetString("cmdline.output_dir")
	}
	if v.IsSet("cmdline.timeout") {
		cfg.Cmdline.Timeout = v.GetDuration("cmdline.timeout")
	}
	if v.IsSet("cmdline.sample_rate") {
		cfg.Cmdline.SampleRate = v.GetInt("cmdline.sample_rate")
	}

	if v.IsSet("mock.delay") {
		cfg.Mock.Delay = v.GetDuration("mock.delay")
	}
	if v.IsSet("mock.words_per_minute") {
		cfg.Mock.WordsPerMinute = v.GetInt("mock.words_per_minute")
	}

	if v.IsSet("speakers") {
		cfg.Speakers = v.GetStringMapString("speakers")
	}
	if v.IsSet("emotions") {
		cfg.Emotions = v.GetStringMapString("emotions")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
