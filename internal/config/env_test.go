package config

import (
	"io"
	"testing"
	"time"
)

func TestEnvOverrides(t *testing.T) {
	t.Setenv("LOGMAP_MODE", "async")
	t.Setenv("LOGMAP_INPUT", "0..9")
	t.Setenv("LOGMAP_ITERATIONS", "12")
	t.Setenv("LOGMAP_MODULUS", "1000000007")
	t.Setenv("LOGMAP_MULTIPLIER", "-2")
	t.Setenv("LOGMAP_POOL_SIZE", "3")
	t.Setenv("LOGMAP_TIMEOUT", "90s")
	t.Setenv("LOGMAP_ERROR_DETAIL", "yes")
	t.Setenv("LOGMAP_LOG_LEVEL", "debug")

	cfg, err := ParseConfig("logmap", nil, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Mode != ModeAsync || cfg.Input != "0..9" || cfg.Iterations != 12 ||
		cfg.Modulus != 1_000_000_007 || cfg.Multiplier != -2 || cfg.PoolSize != 3 ||
		cfg.Timeout != 90*time.Second || !cfg.ErrorDetail || cfg.LogLevel != "debug" {
		t.Errorf("env not applied: %+v", cfg)
	}
}

func TestEnvOverrides_FlagsWin(t *testing.T) {
	t.Setenv("LOGMAP_MODULUS", "5")
	t.Setenv("LOGMAP_QUIET", "true")

	cfg, err := ParseConfig("logmap", []string{"calc", "-p", "11", "-q=false"}, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Modulus != 11 {
		t.Errorf("Modulus = %d, flag should win over env", cfg.Modulus)
	}
	if cfg.Quiet {
		t.Error("Quiet = true, flag should win over env")
	}
}

func TestEnvOverrides_Theme(t *testing.T) {
	t.Setenv("LOGMAP_THEME", "LIGHT")
	cfg, err := ParseConfig("logmap", []string{"calc"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Theme != "light" {
		t.Errorf("Theme = %q, want light", cfg.Theme)
	}

	cfg, err = ParseConfig("logmap", []string{"calc", "-theme", "orange"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Theme != "orange" {
		t.Errorf("Theme = %q, flag should win over env", cfg.Theme)
	}
}

func TestEnvOverrides_PositionalModeWins(t *testing.T) {
	t.Setenv("LOGMAP_MODE", "serve")
	cfg, err := ParseConfig("logmap", []string{"calc"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Mode != ModeCalc {
		t.Errorf("Mode = %q", cfg.Mode)
	}
}

func TestEnvOverrides_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("LOGMAP_ITERATIONS", "many")
	t.Setenv("LOGMAP_VERBOSE", "perhaps")

	cfg, err := ParseConfig("logmap", []string{"calc"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Iterations != DefaultIterations || cfg.Verbose {
		t.Errorf("invalid env values leaked: %+v", cfg)
	}
}

func TestParseBoolEnv(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		def  bool
		want bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"YES", false, true},
		{"false", true, false},
		{"0", true, false},
		{"No", true, false},
		{"maybe", true, true},
		{"maybe", false, false},
	}
	for _, tt := range tests {
		if got := parseBoolEnv(tt.in, tt.def); got != tt.want {
			t.Errorf("parseBoolEnv(%q, %v) = %v", tt.in, tt.def, got)
		}
	}
}
