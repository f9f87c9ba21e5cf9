// Package config defines the command-line configuration of the bigcalc tool,
// its validation, and the environment variable overrides.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	apperrors "github.com/agbru/bigint/internal/errors"
	"github.com/agbru/bigint/internal/nat"
)

// EnvPrefix is the prefix shared by every environment variable override.
const EnvPrefix = "BIGCALC_"

// Default values for the command-line flags.
const (
	DefaultTimeout  = 5 * time.Minute
	DefaultCases    = 2000
	DefaultMaxLimbs = 64
	DefaultOps      = "all"
	DefaultLogLevel = "info"

	// DefaultProfileFileName is the calibration profile stored in the home
	// directory when -calibration-profile is not given.
	DefaultProfileFileName = ".bigcalc_calibration.json"

	// MaxLimbsLimit bounds the operand size the verifier will generate.
	MaxLimbsLimit = 1 << 16
)

// AppConfig aggregates the parsed configuration of the application.
type AppConfig struct {
	// Op is the operation to evaluate in one-shot mode (e.g. "mul").
	Op string
	// Args holds the operands of Op as given on the command line.
	Args []string

	// REPL starts the interactive session instead of a one-shot evaluation.
	REPL bool

	// Verify cross-checks the engine against reference implementations.
	Verify bool
	// Ops is a comma separated list of operations to verify, or "all".
	Ops string
	// Cases is the number of random cases generated per operation.
	Cases int
	// MaxLimbs bounds the size of generated operands, in 64-bit words.
	MaxLimbs int
	// Workers is the number of verification workers. 0 means one per CPU.
	Workers int
	// Seed makes verification runs reproducible. 0 picks a random seed.
	Seed uint64
	// Oracles selects the reference implementations, or "all".
	Oracles string
	// TUI shows the verification run in the interactive dashboard.
	TUI bool

	// Calibrate benchmarks Karatsuba thresholds and saves a profile.
	Calibrate bool
	// QuickCalibrate limits calibration to a few thresholds around the
	// hardware estimate.
	QuickCalibrate bool
	// CalibrationProfile is the path of the calibration profile.
	CalibrationProfile string
	// KaratsubaThreshold overrides the limb count at which multiplication
	// switches to Karatsuba. 0 means resolve it from the profile or hardware.
	KaratsubaThreshold int

	// Timeout bounds the whole run.
	Timeout time.Duration
	// Quiet prints only results.
	Quiet bool
	// Verbose prints full values instead of truncated ones.
	Verbose bool
	// Hex prints results in hexadecimal two's complement.
	Hex bool
	// NoColor disables colored output.
	NoColor bool
	// OutputFile saves the result of a one-shot evaluation.
	OutputFile string

	// MetricsAddr, when set, serves Prometheus metrics on that address.
	MetricsAddr string
	// LogLevel is the zerolog level name for diagnostic logs.
	LogLevel string

	// Completion generates a shell completion script for the given shell.
	Completion string
}

// ParseConfig parses the command-line arguments into an AppConfig, applies
// the BIGCALC_ environment overrides for flags not given explicitly, and
// validates the result. availableOps lists the operation names accepted by
// the evaluator.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableOps []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	var config AppConfig
	fs.BoolVar(&config.REPL, "repl", false, "Start an interactive session.")
	fs.BoolVar(&config.Verify, "verify", false, "Cross-check the engine against reference implementations on random operands.")
	fs.StringVar(&config.Ops, "ops", DefaultOps, "Comma separated operations to verify, or 'all'.")
	fs.IntVar(&config.Cases, "cases", DefaultCases, "Random cases per verified operation.")
	fs.IntVar(&config.MaxLimbs, "max-limbs", DefaultMaxLimbs, "Maximum operand size in 64-bit words for verification.")
	fs.IntVar(&config.Workers, "workers", 0, "Verification workers (0 = one per CPU).")
	fs.Uint64Var(&config.Seed, "seed", 0, "Random seed for verification (0 = random).")
	fs.StringVar(&config.Oracles, "oracles", "all", "Comma separated reference implementations, or 'all'.")
	fs.BoolVar(&config.TUI, "tui", false, "Show the verification run in the interactive dashboard.")
	fs.BoolVar(&config.Calibrate, "calibrate", false, "Benchmark Karatsuba thresholds and save a calibration profile.")
	fs.BoolVar(&config.QuickCalibrate, "quick", false, "With -calibrate, only measure thresholds near the hardware estimate.")
	fs.StringVar(&config.CalibrationProfile, "calibration-profile", "", "Path of the calibration profile (default ~/"+DefaultProfileFileName+").")
	fs.IntVar(&config.KaratsubaThreshold, "karatsuba-threshold", 0, "Limb count at which multiplication switches to Karatsuba (0 = auto).")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum duration of the run.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print only results.")
	fs.BoolVar(&config.Quiet, "q", false, "Shorthand for -quiet.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Print full values instead of truncated ones.")
	fs.BoolVar(&config.Verbose, "v", false, "Shorthand for -verbose.")
	fs.BoolVar(&config.Hex, "hex", false, "Print results as hexadecimal two's complement.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&config.OutputFile, "output", "", "Write the result to this file.")
	fs.StringVar(&config.OutputFile, "o", "", "Shorthand for -output.")
	fs.StringVar(&config.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090).")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Diagnostic log level (debug, info, warn, error).")
	fs.StringVar(&config.Completion, "completion", "", "Print a completion script for bash, zsh or fish.")

	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [flags] <op> <operands...>\n", programName)
		fmt.Fprintf(errWriter, "       %s -repl | -verify | -calibrate [flags]\n\n", programName)
		fmt.Fprintf(errWriter, "Operations: %s\n\nFlags:\n", strings.Join(availableOps, ", "))
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if rest := fs.Args(); len(rest) > 0 {
		config.Op = strings.ToLower(rest[0])
		config.Args = rest[1:]
	}

	applyEnvOverrides(fs)

	if err := config.Validate(availableOps); err != nil {
		fmt.Fprintln(errWriter, "Error:", err)
		fs.Usage()
		return AppConfig{}, err
	}
	return config, nil
}

// Validate checks the semantic consistency of the configuration.
func (c AppConfig) Validate(availableOps []string) error {
	if c.Completion != "" {
		switch c.Completion {
		case "bash", "zsh", "fish":
			return nil
		}
		return apperrors.NewConfigError("unsupported completion shell %q", c.Completion)
	}

	modes := 0
	for _, on := range []bool{c.REPL, c.Verify, c.Calibrate} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return apperrors.NewConfigError("-repl, -verify and -calibrate are mutually exclusive")
	}
	if modes == 0 {
		if c.Op == "" {
			return apperrors.NewConfigError("missing operation")
		}
		if !slices.Contains(availableOps, c.Op) {
			return apperrors.NewConfigError("unknown operation %q", c.Op)
		}
	} else if c.Op != "" {
		return apperrors.NewConfigError("unexpected operation %q in %s mode", c.Op, c.mode())
	}

	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if c.KaratsubaThreshold != 0 && c.KaratsubaThreshold < nat.MinKaratsubaThreshold {
		return apperrors.NewConfigError("karatsuba threshold must be 0 or at least %d, got %d",
			nat.MinKaratsubaThreshold, c.KaratsubaThreshold)
	}
	if c.Workers < 0 {
		return apperrors.NewConfigError("workers must not be negative, got %d", c.Workers)
	}
	if c.QuickCalibrate && !c.Calibrate {
		return apperrors.NewConfigError("-quick requires -calibrate")
	}
	if c.TUI && !c.Verify {
		return apperrors.NewConfigError("-tui requires -verify")
	}
	if c.Verify {
		if c.Cases <= 0 {
			return apperrors.NewConfigError("cases must be positive, got %d", c.Cases)
		}
		if c.MaxLimbs <= 0 || c.MaxLimbs > MaxLimbsLimit {
			return apperrors.NewConfigError("max-limbs must be in [1, %d], got %d", MaxLimbsLimit, c.MaxLimbs)
		}
		for _, op := range c.VerifyOps(availableOps) {
			if !slices.Contains(availableOps, op) {
				return apperrors.NewConfigError("unknown operation %q in -ops", op)
			}
		}
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return apperrors.NewConfigError("invalid log level %q", c.LogLevel)
	}
	return nil
}

// VerifyOps expands the -ops selection. "all" yields every available
// operation.
func (c AppConfig) VerifyOps(availableOps []string) []string {
	return splitList(c.Ops, availableOps)
}

// OracleNames expands the -oracles selection against the registered names.
func (c AppConfig) OracleNames(available []string) []string {
	return splitList(c.Oracles, available)
}

func (c AppConfig) mode() string {
	switch {
	case c.REPL:
		return "repl"
	case c.Verify:
		return "verify"
	case c.Calibrate:
		return "calibrate"
	}
	return "eval"
}

func splitList(s string, all []string) []string {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "all" {
		return slices.Clone(all)
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" && !slices.Contains(out, part) {
			out = append(out, part)
		}
	}
	return out
}
