package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/agbru/bigint"
	apperrors "github.com/agbru/bigint/internal/errors"
	"github.com/agbru/bigint/internal/format"
	"github.com/agbru/bigint/internal/orchestration"
	"github.com/agbru/bigint/internal/progress"
	"github.com/agbru/bigint/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with the
// spinner and progress bar of DisplayProgress.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for a running job.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numWorkers int, out io.Writer) {
	DisplayProgress(wg, progressChan, numWorkers, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter for CLI output.
type CLIResultPresenter struct {
	// Verbose prints full operand values in the mismatch list.
	Verbose bool
}

var (
	_ orchestration.ResultPresenter   = CLIResultPresenter{}
	_ orchestration.DurationFormatter = CLIResultPresenter{}
	_ orchestration.ErrorHandler      = CLIResultPresenter{}
)

// PresentEval displays an evaluation result.
func (p CLIResultPresenter) PresentEval(result orchestration.EvalResult, hex bool, out io.Writer) {
	DisplayEvalResult(out, result, hex, p.Verbose)
}

// PresentVerification prints one row per operation and then the recorded
// mismatches. The table is aligned with tabwriter, so colors are applied
// to the status column only, after alignment.
func (p CLIResultPresenter) PresentVerification(report orchestration.VerificationReport, out io.Writer) {
	fmt.Fprintf(out, "\n--- Verification Summary ---\n")
	fmt.Fprintf(out, "Seed %d, %d worker(s), oracles: %s\n\n", report.Seed, report.Workers, strings.Join(report.Oracles, ", "))

	var table strings.Builder
	tw := tabwriter.NewWriter(&table, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "Operation\tCases\tRejected\tUnchecked\tEngine time\t")
	statuses := make([]string, len(report.Ops))
	for i, op := range report.Ops {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\t\n", op.Op, op.Cases, op.Rejected, op.Unchecked, p.FormatDuration(op.EngineTime))
		switch {
		case op.Mismatches > 0:
			statuses[i] = fmt.Sprintf("%s❌ %d mismatch(es)%s", ui.ColorRed(), op.Mismatches, ui.ColorReset())
		case op.Cases == 0:
			statuses[i] = fmt.Sprintf("%s– not run%s", ui.ColorGrey(), ui.ColorReset())
		case op.Unchecked == op.Cases:
			statuses[i] = fmt.Sprintf("%s? unchecked%s", ui.ColorYellow(), ui.ColorReset())
		default:
			statuses[i] = fmt.Sprintf("%s✅ OK%s", ui.ColorGreen(), ui.ColorReset())
		}
	}
	tw.Flush()

	lines := strings.Split(strings.TrimRight(table.String(), "\n"), "\n")
	for i, line := range lines {
		if i == 0 {
			fmt.Fprintf(out, "%s%s%s%s\n", ui.ColorUnderline(), line, "Status", ui.ColorReset())
			continue
		}
		fmt.Fprintf(out, "%s%s\n", line, statuses[i-1])
	}
	fmt.Fprintf(out, "\n%d cases in %s\n", report.TotalCases, p.FormatDuration(report.Duration))

	if len(report.Mismatches) == 0 {
		return
	}
	fmt.Fprintf(out, "\n%sMismatches", ui.ColorRed())
	if report.TotalMismatches > len(report.Mismatches) {
		fmt.Fprintf(out, " (first %d of %d)", len(report.Mismatches), report.TotalMismatches)
	}
	fmt.Fprintf(out, ":%s\n", ui.ColorReset())
	for _, m := range report.Mismatches {
		fmt.Fprintf(out, "  %s case %d vs %s\n", m.Op, m.CaseIndex, m.Oracle)
		fmt.Fprintf(out, "    args: %s\n", p.formatValues(m.Args))
		fmt.Fprintf(out, "    got:  %s\n", p.formatOutcome(m.Got, m.GotErr))
		fmt.Fprintf(out, "    want: %s\n", p.formatOutcome(m.Want, m.WantErr))
	}
}

func (p CLIResultPresenter) formatValues(values []bigint.BigInteger) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i], _ = FormatValue(v, false, p.Verbose)
	}
	return strings.Join(parts, ", ")
}

func (p CLIResultPresenter) formatOutcome(values []bigint.BigInteger, err error) string {
	if err != nil {
		return "error: " + err.Error()
	}
	return p.formatValues(values)
}

// FormatDuration formats a duration for display using the CLI's standard
// duration formatting.
func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

// HandleError reports err and returns the matching exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	if err == nil {
		return apperrors.ExitSuccess
	}
	var timeoutErr apperrors.TimeoutError
	switch {
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "%sTimeout: the evaluation did not finish after %s.%s\n",
			ui.ColorRed(), format.FormatExecutionDuration(duration), ui.ColorReset())
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sCanceled after %s.%s\n",
			ui.ColorYellow(), format.FormatExecutionDuration(duration), ui.ColorReset())
	default:
		fmt.Fprintf(out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
	}
	return apperrors.ExitCode(err)
}
