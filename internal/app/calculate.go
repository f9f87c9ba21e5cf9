package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/bigint/internal/cli"
	apperrors "github.com/agbru/bigint/internal/errors"
	"github.com/agbru/bigint/internal/logging"
	"github.com/agbru/bigint/internal/ops"
	"github.com/agbru/bigint/internal/orchestration"
	"github.com/agbru/bigint/internal/tui"
)

// lifecycle bounds ctx by the configured timeout and by SIGINT/SIGTERM.
func (a *Application) lifecycle(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	return ctx, func() {
		stopSignals()
		cancelTimeout()
	}
}

// asTimeout turns a deadline into a TimeoutError naming op and the limit.
func (a *Application) asTimeout(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.TimeoutError{Operation: op, Limit: a.Config.Timeout}
	}
	return err
}

// runEval evaluates the operation given on the command line.
func (a *Application) runEval(ctx context.Context, out io.Writer) int {
	op, ok := ops.Get(a.Config.Op)
	if !ok {
		fmt.Fprintf(a.ErrWriter, "Error: unknown operation %q\n", a.Config.Op)
		return apperrors.ExitErrorConfig
	}
	if len(a.Config.Args) != op.Arity {
		fmt.Fprintf(a.ErrWriter, "Error: %s takes %d operand(s), got %d\nUsage: %s %s\n",
			op.Name, op.Arity, len(a.Config.Args), op.Name, op.Usage)
		return apperrors.ExitErrorConfig
	}
	args, err := ops.ParseArgs(a.Config.Args)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	ctx, stop := a.lifecycle(ctx)
	defer stop()

	if a.Config.Verbose && !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		fmt.Fprintln(out)
	}

	res := orchestration.ExecuteEval(ctx, op, args)
	a.Metrics.ObserveEval(op.Name, res.Duration, res.Err)
	a.Logger.Debug("evaluated",
		logging.String("op", op.Name),
		logging.Duration("elapsed", res.Duration))

	if res.Err != nil {
		err := a.asTimeout(op.Name, res.Err)
		if !apperrors.IsContextError(res.Err) {
			err = apperrors.CalculationError{Cause: res.Err}
		}
		return cli.CLIResultPresenter{}.HandleError(err, res.Duration, a.ErrWriter)
	}

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		Hex:        a.Config.Hex,
	}
	if err := cli.DisplayResultWithConfig(out, res, outputCfg); err != nil {
		a.Logger.Error("cannot save result", err, logging.String("path", a.Config.OutputFile))
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runVerify cross-checks the engine against the reference implementations,
// in the dashboard when -tui is set.
func (a *Application) runVerify(ctx context.Context, out io.Writer) int {
	opts, err := orchestration.BuildVerifyOptions(a.Config)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitCode(err)
	}
	opts.Observer = a.Metrics

	ctx, stop := a.lifecycle(ctx)
	defer stop()

	a.Logger.Info("verification started",
		logging.Uint64("seed", opts.Seed),
		logging.Int("ops", len(opts.Ops)),
		logging.Int("cases", opts.Cases),
		logging.Int("workers", opts.Workers))

	if a.Config.TUI {
		code := tui.Run(ctx, opts, resolvedVersion())
		a.Logger.Info("verification finished", logging.Int("exit_code", code))
		return code
	}

	var progressReporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if a.Config.Quiet {
		progressReporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	} else {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintVerificationPlan(opts, out)
	}

	report, err := orchestration.ExecuteVerification(ctx, opts, progressReporter, progressOut)
	presenter := cli.CLIResultPresenter{Verbose: a.Config.Verbose}
	if err != nil {
		a.Logger.Error("verification interrupted", err,
			logging.Int("cases", report.TotalCases),
			logging.Int("mismatches", report.TotalMismatches))
		return presenter.HandleError(a.asTimeout("verify", err), report.Duration, out)
	}

	code := orchestration.AnalyzeVerificationResults(report, presenter, out)
	a.Logger.Info("verification finished",
		logging.Int("cases", report.TotalCases),
		logging.Int("mismatches", report.TotalMismatches),
		logging.Duration("elapsed", report.Duration),
		logging.Int("exit_code", code))
	return code
}

// runREPL starts the interactive session. The timeout applies to each
// evaluation, not to the session.
func (a *Application) runREPL(ctx context.Context, out io.Writer) int {
	oracles, err := orchestration.GetOraclesToRun(a.Config)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitCode(err)
	}

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	repl := cli.NewREPL(cli.REPLConfig{
		Timeout:   a.Config.Timeout,
		HexOutput: a.Config.Hex,
		Verbose:   a.Config.Verbose,
		Oracles:   oracles,
		Observer:  a.Metrics,
	})
	repl.SetOutput(out)
	if a.In != nil {
		repl.SetInput(a.In)
	}
	repl.Start(ctx)
	return apperrors.ExitSuccess
}
