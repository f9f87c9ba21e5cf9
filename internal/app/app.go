// Package app wires the parsed configuration to one of the bigcalc modes:
// one-shot evaluation, REPL, verification, calibration or completion.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agbru/bigint"
	"github.com/agbru/bigint/internal/calibration"
	"github.com/agbru/bigint/internal/cli"
	"github.com/agbru/bigint/internal/config"
	apperrors "github.com/agbru/bigint/internal/errors"
	"github.com/agbru/bigint/internal/logging"
	"github.com/agbru/bigint/internal/metrics"
	"github.com/agbru/bigint/internal/ops"
	"github.com/agbru/bigint/internal/server"
	"github.com/agbru/bigint/internal/ui"
)

// Application represents the bigcalc application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	Logger    logging.Logger
	Metrics   *metrics.Collector

	// In is the REPL input. Nil means standard input.
	In io.Reader

	// thresholdSource names where the Karatsuba threshold came from.
	thresholdSource string
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger sets the diagnostic logger. By default a console logger on the
// error writer is built from -log-level.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// WithInput sets the reader the REPL reads commands from.
func WithInput(in io.Reader) AppOption {
	return func(a *Application) { a.In = in }
}

// WithCollector sets the metrics collector shared by every mode.
func WithCollector(c *metrics.Collector) AppOption {
	return func(a *Application) { a.Metrics = c }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	programName := "bigcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, ops.Names())
	if err != nil {
		return nil, err
	}

	switch cfgWithProfile, loaded := calibration.LoadCachedCalibration(cfg, cfg.CalibrationProfile); {
	case cfg.KaratsubaThreshold != 0:
		app.thresholdSource = "flag"
	case loaded:
		cfg = cfgWithProfile
		app.thresholdSource = "profile"
	default:
		cfg = config.ApplyAdaptiveThresholds(cfg)
		app.thresholdSource = "estimate"
	}

	if app.Logger == nil {
		app.Logger = logging.NewConsoleLogger(errWriter, "bigcalc", cfg.LogLevel, cfg.NoColor)
	}
	if app.Metrics == nil {
		app.Metrics = metrics.NewCollector()
	}
	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	if lvl, err := zerolog.ParseLevel(strings.ToLower(a.Config.LogLevel)); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	ui.InitTheme(a.Config.NoColor)

	if a.Config.Calibrate {
		return a.runCalibration(ctx, out)
	}

	bigint.SetKaratsubaThreshold(a.Config.KaratsubaThreshold)
	a.Logger.Debug("karatsuba threshold resolved",
		logging.Int("limbs", bigint.KaratsubaThreshold()),
		logging.String("source", a.thresholdSource))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if a.Config.MetricsAddr != "" {
		if code := a.startMetricsServer(ctx); code != apperrors.ExitSuccess {
			return code
		}
	}

	switch {
	case a.Config.Verify:
		return a.runVerify(ctx, out)
	case a.Config.REPL:
		return a.runREPL(ctx, out)
	default:
		return a.runEval(ctx, out)
	}
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, ops.Names()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runCalibration runs the full calibration mode.
func (a *Application) runCalibration(ctx context.Context, out io.Writer) int {
	ctx, stop := a.lifecycle(ctx)
	defer stop()

	var reporter cli.CLIProgressReporter
	code := calibration.RunCalibration(ctx, out, calibration.Options{
		ProfilePath: a.Config.CalibrationProfile,
		Quick:       a.Config.QuickCalibrate,
	}, reporter)
	a.Logger.Debug("calibration finished", logging.Int("exit_code", code))
	return code
}

// startMetricsServer serves /metrics until ctx is done.
func (a *Application) startMetricsServer(ctx context.Context) int {
	srv := server.New(a.Config.MetricsAddr, a.Metrics, a.Logger)
	addr, err := srv.Start(ctx)
	if err != nil {
		a.Logger.Error("cannot start metrics server", err, logging.String("addr", a.Config.MetricsAddr))
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	if !a.Config.Quiet {
		fmt.Fprintf(a.ErrWriter, "Metrics available at http://%s/metrics\n", addr)
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
