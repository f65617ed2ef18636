// Package config holds the service configuration: engine selection,
// per-tier admission capacities, cache bounds, and the reference tables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains all configuration options.
type Config struct {
	// Engine selects the synthesis backend.
	Engine string `yaml:"engine" env:"VOXD_ENGINE" envDefault:"mock"`

	// SampleRate of produced audio in Hz.
	SampleRate int `yaml:"sample_rate" env:"VOXD_SAMPLE_RATE" envDefault:"24000"`

	// LogLevel controls log verbosity (debug, info, warn, error).
	LogLevel string `yaml:"log_level" env:"VOXD_LOG_LEVEL" envDefault:"info"`

	Admission AdmissionConfig `yaml:"admission"`
	Cache     CacheConfig     `yaml:"cache"`
	Cmdline   CmdlineConfig   `yaml:"cmdline"`
	Mock      MockConfig      `yaml:"mock"`

	// Speakers maps reference ids to speaker prompt audio paths.
	Speakers map[string]string `yaml:"speakers"`

	// Emotions maps reference ids to emotion prompt audio paths.
	Emotions map[string]string `yaml:"emotions"`
}

// AdmissionConfig bounds concurrent jobs per cost tier.
type AdmissionConfig struct {
	MaxShort  int `yaml:"max_short" env:"VOXD_MAX_SHORT" envDefault:"3"`
	MaxMedium int `yaml:"max_medium" env:"VOXD_MAX_MEDIUM" envDefault:"2"`
	MaxLong   int `yaml:"max_long" env:"VOXD_MAX_LONG" envDefault:"1"`
}

// CacheConfig bounds the reference artifact cache.
type CacheConfig struct {
	MaxEntries int `yaml:"max_entries" env:"VOXD_CACHE_MAX_ENTRIES" envDefault:"50"`
}

// CmdlineConfig contains cmdline engine specific settings.
type CmdlineConfig struct {
	Binary     string        `yaml:"binary" env:"VOXD_CMDLINE_BINARY"`
	Args       []string      `yaml:"args"`
	OutputDir  string        `yaml:"output_dir" env:"VOXD_CMDLINE_OUTPUT_DIR"`
	Timeout    time.Duration `yaml:"timeout" env:"VOXD_CMDLINE_TIMEOUT" envDefault:"120s"`
	SampleRate int           `yaml:"sample_rate" env:"VOXD_CMDLINE_SAMPLE_RATE" envDefault:"24000"`
}

// MockConfig contains mock engine specific settings for testing.
type MockConfig struct {
	Delay          time.Duration `yaml:"delay" env:"VOXD_MOCK_DELAY" envDefault:"50ms"`
	WordsPerMinute int           `yaml:"words_per_minute" env:"VOXD_MOCK_WORDS_PER_MINUTE" envDefault:"150"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Engine:     "mock",
		SampleRate: 24000,
		LogLevel:   "info",
		Admission: AdmissionConfig{
			MaxShort:  3,
			MaxMedium: 2,
			MaxLong:   1,
		},
		Cache: CacheConfig{
			MaxEntries: 50,
		},
		Cmdline: CmdlineConfig{
			Timeout:    120 * time.Second,
			SampleRate: 24000,
		},
		Mock: MockConfig{
			Delay:          50 * time.Millisecond,
			WordsPerMinute: 150,
		},
	}
}

// FromEnv returns the default configuration with environment overrides
// applied.
func FromEnv() (Config, error) {
	cfg := Default()
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	switch c.Engine {
	case "mock", "cmdline":
	default:
		return fmt.Errorf("invalid engine %q (want mock or cmdline)", c.Engine)
	}

	if c.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", c.SampleRate)
	}

	if c.Admission.MaxShort < 1 || c.Admission.MaxMedium < 1 || c.Admission.MaxLong < 1 {
		return fmt.Errorf("tier capacities must be at least 1, got %d/%d/%d",
			c.Admission.MaxShort, c.Admission.MaxMedium, c.Admission.MaxLong)
	}

	if c.Cache.MaxEntries < 1 {
		return fmt.Errorf("cache max entries must be at least 1, got %d", c.Cache.MaxEntries)
	}

	if c.Engine == "cmdline" {
		if c.Cmdline.Binary == "" {
			return fmt.Errorf("cmdline engine requires a binary")
		}
		if c.Cmdline.Timeout <= 0 {
			return fmt.Errorf("cmdline timeout must be positive, got %v", c.Cmdline.Timeout)
		}
	}

	return nil
}
