package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	if cfg.Engine != "mock" {
		t.Errorf("Engine = %q, want mock", cfg.Engine)
	}
	if cfg.SampleRate != 24000 {
		t.Errorf("SampleRate = %d, want 24000", cfg.SampleRate)
	}
	if cfg.Admission.MaxShort != 3 || cfg.Admission.MaxMedium != 2 || cfg.Admission.MaxLong != 1 {
		t.Errorf("admission defaults = %d/%d/%d, want 3/2/1",
			cfg.Admission.MaxShort, cfg.Admission.MaxMedium, cfg.Admission.MaxLong)
	}
	if cfg.Cache.MaxEntries != 50 {
		t.Errorf("Cache.MaxEntries = %d, want 50", cfg.Cache.MaxEntries)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults pass",
			mutate: func(*Config) {},
		},
		{
			name:    "unknown engine",
			mutate:  func(c *Config) { c.Engine = "espeak" },
			wantErr: true,
		},
		{
			name:    "zero sample rate",
			mutate:  func(c *Config) { c.SampleRate = 0 },
			wantErr: true,
		},
		{
			name:    "zero short capacity",
			mutate:  func(c *Config) { c.Admission.MaxShort = 0 },
			wantErr: true,
		},
		{
			name:    "negative long capacity",
			mutate:  func(c *Config) { c.Admission.MaxLong = -1 },
			wantErr: true,
		},
		{
			name:    "zero cache entries",
			mutate:  func(c *Config) { c.Cache.MaxEntries = 0 },
			wantErr: true,
		},
		{
			name:    "cmdline without binary",
			mutate:  func(c *Config) { c.Engine = "cmdline" },
			wantErr: true,
		},
		{
			name: "cmdline with binary passes",
			mutate: func(c *Config) {
				c.Engine = "cmdline"
				c.Cmdline.Binary = "/usr/bin/synth"
			},
		},
		{
			name: "cmdline with zero timeout",
			mutate: func(c *Config) {
				c.Engine = "cmdline"
				c.Cmdline.Binary = "/usr/bin/synth"
				c.Cmdline.Timeout = 0
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("VOXD_ENGINE", "cmdline")
	t.Setenv("VOXD_CMDLINE_BINARY", "/usr/bin/synth")
	t.Setenv("VOXD_MAX_SHORT", "5")
	t.Setenv("VOXD_CACHE_MAX_ENTRIES", "10")
	t.Setenv("VOXD_MOCK_DELAY", "200ms")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}

	if cfg.Engine != "cmdline" {
		t.Errorf("Engine = %q, want cmdline", cfg.Engine)
	}
	if cfg.Cmdline.Binary != "/usr/bin/synth" {
		t.Errorf("Cmdline.Binary = %q", cfg.Cmdline.Binary)
	}
	if cfg.Admission.MaxShort != 5 {
		t.Errorf("Admission.MaxShort = %d, want 5", cfg.Admission.MaxShort)
	}
	if cfg.Admission.MaxMedium != 2 {
		t.Errorf("Admission.MaxMedium = %d, want default 2", cfg.Admission.MaxMedium)
	}
	if cfg.Cache.MaxEntries != 10 {
		t.Errorf("Cache.MaxEntries = %d, want 10", cfg.Cache.MaxEntries)
	}
	if cfg.Mock.Delay != 200*time.Millisecond {
		t.Errorf("Mock.Delay = %v, want 200ms", cfg.Mock.Delay)
	}
}

func TestFromEnvRejectsInvalid(t *testing.T) {
	t.Setenv("VOXD_ENGINE", "espeak")

	if _, err := FromEnv(); err == nil {
		t.Fatal("FromEnv should reject an unknown engine")
	}
}

func TestLoadFile(t *testing.T) {
	content := `
engine: mock
sample_rate: 22050
log_level: debug
admission:
  max_short: 4
  max_long: 2
cache:
  max_entries: 8
mock:
  delay: 10ms
speakers:
  alice: /refs/alice.wav
emotions:
  happy: /refs/happy.wav
`
	path := filepath.Join(t.TempDir(), "voxd.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path, Default())
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if cfg.SampleRate != 22050 {
		t.Errorf("SampleRate = %d, want 22050", cfg.SampleRate)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Admission.MaxShort != 4 || cfg.Admission.MaxLong != 2 {
		t.Errorf("admission = %d/%d/%d", cfg.Admission.MaxShort, cfg.Admission.MaxMedium, cfg.Admission.MaxLong)
	}
	if cfg.Admission.MaxMedium != 2 {
		t.Errorf("Admission.MaxMedium = %d, want untouched default 2", cfg.Admission.MaxMedium)
	}
	if cfg.Cache.MaxEntries != 8 {
		t.Errorf("Cache.MaxEntries = %d, want 8", cfg.Cache.MaxEntries)
	}
	if cfg.Mock.Delay != 10*time.Millisecond {
		t.Errorf("Mock.Delay = %v, want 10ms", cfg.Mock.Delay)
	}
	if cfg.Speakers["alice"] != "/refs/alice.wav" {
		t.Errorf("Speakers = %v", cfg.Speakers)
	}
	if cfg.Emotions["happy"] != "/refs/happy.wav" {
		t.Errorf("Emotions = %v", cfg.Emotions)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"), Default()); err == nil {
		t.Fatal("LoadFile should fail on a missing file")
	}
}

func TestLoadFileRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voxd.yaml")
	if err := os.WriteFile(path, []byte("sample_rate: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFile(path, Default()); err == nil {
		t.Fatal("LoadFile should reject an invalid sample rate")
	}
}
