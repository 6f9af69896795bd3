package configparser

import (
	"testing"
	"time"
)

type testConfig struct {
	Name     string        `env:"CFGTEST_NAME" default:"fallback"`
	Port     int           `env:"CFGTEST_PORT" default:"8080"`
	Enabled  bool          `env:"CFGTEST_ENABLED" default:"true"`
	Interval time.Duration `env:"CFGTEST_INTERVAL" default:"90s"`

	Nested struct {
		Rate float64 `env:"CFGTEST_RATE" default:"1.5"`
	}
}

func TestParseEnv_Defaults(t *testing.T) {
	var cfg testConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("ParseEnv: %v", err)
	}

	if cfg.Name != "fallback" {
		t.Errorf("Name: got %q", cfg.Name)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port: got %d", cfg.Port)
	}
	if !cfg.Enabled {
		t.Errorf("Enabled: got false")
	}
	if cfg.Interval != 90*time.Second {
		t.Errorf("Interval: got %v", cfg.Interval)
	}
	if cfg.Nested.Rate != 1.5 {
		t.Errorf("Nested.Rate: got %v", cfg.Nested.Rate)
	}
}

func TestParseEnv_EnvOverridesDefault(t *testing.T) {
	t.Setenv("CFGTEST_PORT", "9000")
	t.Setenv("CFGTEST_INTERVAL", "2m")

	var cfg testConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("ParseEnv: %v", err)
	}

	if cfg.Port != 9000 {
		t.Errorf("Port: got %d, want 9000", cfg.Port)
	}
	if cfg.Interval != 2*time.Minute {
		t.Errorf("Interval: got %v, want 2m", cfg.Interval)
	}
}

func TestParseEnv_RejectsNonPointer(t *testing.T) {
	if err := ParseEnv(testConfig{}); err == nil {
		t.Fatal("expected error for non-pointer argument")
	}
}
