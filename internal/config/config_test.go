package config

import (
	"errors"
	"flag"
	"io"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	apperrors "github.com/agbru/bigint/internal/errors"
	"github.com/agbru/bigint/internal/nat"
)

var testOps = []string{"add", "mul", "div", "sqrt"}

func TestParseConfigEval(t *testing.T) {
	t.Parallel()
	cfg, err := ParseConfig("bigcalc", []string{"-hex", "-q", "MUL", "-12", "34"}, io.Discard, testOps)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Op != "mul" {
		t.Errorf("Op = %q, want mul", cfg.Op)
	}
	if diff := cmp.Diff([]string{"-12", "34"}, cfg.Args); diff != "" {
		t.Errorf("Args mismatch (-want +got):\n%s", diff)
	}
	if !cfg.Hex || !cfg.Quiet {
		t.Errorf("Hex=%v Quiet=%v, want both true", cfg.Hex, cfg.Quiet)
	}
	if cfg.Timeout != DefaultTimeout || cfg.Cases != DefaultCases || cfg.LogLevel != DefaultLogLevel {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestParseConfigVerify(t *testing.T) {
	t.Parallel()
	cfg, err := ParseConfig("bigcalc", []string{"-verify", "-ops", "add, div,add", "-cases", "10", "-seed", "7"}, io.Discard, testOps)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if diff := cmp.Diff([]string{"add", "div"}, cfg.VerifyOps(testOps)); diff != "" {
		t.Errorf("VerifyOps mismatch (-want +got):\n%s", diff)
	}
	if cfg.Cases != 10 || cfg.Seed != 7 {
		t.Errorf("Cases=%d Seed=%d", cfg.Cases, cfg.Seed)
	}

	all := AppConfig{Ops: "all"}
	if diff := cmp.Diff(testOps, all.VerifyOps(testOps)); diff != "" {
		t.Errorf("VerifyOps(all) mismatch (-want +got):\n%s", diff)
	}
}

func TestParseConfigHelp(t *testing.T) {
	t.Parallel()
	_, err := ParseConfig("bigcalc", []string{"-h"}, io.Discard, testOps)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("error = %v, want flag.ErrHelp", err)
	}
}

func TestParseConfigInvalid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		args []string
	}{
		{"missing op", nil},
		{"unknown op", []string{"frobnicate", "1"}},
		{"two modes", []string{"-repl", "-verify"}},
		{"op in repl mode", []string{"-repl", "add"}},
		{"zero timeout", []string{"-timeout", "0s", "add", "1", "2"}},
		{"small threshold", []string{"-karatsuba-threshold", "2", "add", "1", "2"}},
		{"negative workers", []string{"-workers", "-1", "add", "1", "2"}},
		{"tui without verify", []string{"-tui", "add", "1", "2"}},
		{"quick without calibrate", []string{"-quick", "add", "1", "2"}},
		{"zero cases", []string{"-verify", "-cases", "0"}},
		{"too many limbs", []string{"-verify", "-max-limbs", "70000"}},
		{"unknown verify op", []string{"-verify", "-ops", "add,pow"}},
		{"bad log level", []string{"-log-level", "loud", "add", "1", "2"}},
		{"bad completion", []string{"-completion", "tcsh"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseConfig("bigcalc", tt.args, io.Discard, testOps)
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("error = %v, want ConfigError", err)
			}
		})
	}
}

func TestCompletionSkipsModeChecks(t *testing.T) {
	t.Parallel()
	if _, err := ParseConfig("bigcalc", []string{"-completion", "zsh"}, io.Discard, testOps); err != nil {
		t.Errorf("ParseConfig(-completion zsh): %v", err)
	}
}

// Environment tests cannot run in parallel because t.Setenv is process-wide.

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"CASES", "42")
	t.Setenv(EnvPrefix+"TIMEOUT", "90s")
	t.Setenv(EnvPrefix+"QUIET", "yes")
	t.Setenv(EnvPrefix+"KARATSUBA_THRESHOLD", "24")
	t.Setenv(EnvPrefix+"ORACLES", "math/big")

	cfg, err := ParseConfig("bigcalc", []string{"-verify"}, io.Discard, testOps)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Cases != 42 || cfg.Timeout != 90*time.Second || !cfg.Quiet || cfg.KaratsubaThreshold != 24 {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
	if cfg.Oracles != "math/big" {
		t.Errorf("Oracles = %q", cfg.Oracles)
	}
}

func TestFlagsTakePrecedenceOverEnv(t *testing.T) {
	t.Setenv(EnvPrefix+"CASES", "42")
	t.Setenv(EnvPrefix+"VERBOSE", "true")

	cfg, err := ParseConfig("bigcalc", []string{"-verify", "-cases", "5", "-v=false"}, io.Discard, testOps)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Cases != 5 {
		t.Errorf("Cases = %d, want the flag value 5", cfg.Cases)
	}
	if cfg.Verbose {
		t.Error("Verbose = true, want the flag value false")
	}
}

func TestInvalidEnvValuesAreIgnored(t *testing.T) {
	t.Setenv(EnvPrefix+"CASES", "many")
	t.Setenv(EnvPrefix+"HEX", "maybe")

	cfg, err := ParseConfig("bigcalc", []string{"-verify"}, io.Discard, testOps)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Cases != DefaultCases || cfg.Hex {
		t.Errorf("Cases=%d Hex=%v, want defaults", cfg.Cases, cfg.Hex)
	}
}

func TestParseBoolEnv(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		def  bool
		want bool
	}{
		{"TRUE", false, true},
		{"1", false, true},
		{"yes", false, true},
		{"No", true, false},
		{"0", true, false},
		{"", true, true},
		{"on", false, false},
	}
	for _, tt := range tests {
		if got := parseBoolEnv(tt.in, tt.def); got != tt.want {
			t.Errorf("parseBoolEnv(%q, %v) = %v, want %v", tt.in, tt.def, got, tt.want)
		}
	}
}

func TestApplyAdaptiveThresholds(t *testing.T) {
	t.Parallel()
	cfg := ApplyAdaptiveThresholds(AppConfig{})
	if cfg.KaratsubaThreshold < nat.MinKaratsubaThreshold {
		t.Errorf("estimated threshold %d below minimum %d", cfg.KaratsubaThreshold, nat.MinKaratsubaThreshold)
	}
	kept := ApplyAdaptiveThresholds(AppConfig{KaratsubaThreshold: 40})
	if kept.KaratsubaThreshold != 40 {
		t.Errorf("explicit threshold replaced by %d", kept.KaratsubaThreshold)
	}
}
