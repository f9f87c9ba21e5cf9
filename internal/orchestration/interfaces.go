package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/bigint"
	"github.com/agbru/bigint/internal/progress"
)

// EvalResult is the outcome of one evaluation of a catalog operation.
type EvalResult struct {
	// Op is the operation name.
	Op string
	// Args are the parsed operands.
	Args []bigint.BigInteger
	// Values holds one or two results. It is nil if Err is set.
	Values []bigint.BigInteger
	// Duration is the time spent in the engine.
	Duration time.Duration
	// Err is the engine error, if any.
	Err error
}

// ProgressReporter defines the interface for displaying verification progress.
// It decouples the orchestration layer from the presentation layer.
type ProgressReporter interface {
	// DisplayProgress consumes updates until progressChan is closed and then
	// calls wg.Done. It runs in its own goroutine.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numWorkers int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numWorkers int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numWorkers int, out io.Writer) {
	f(wg, progressChan, numWorkers, out)
}

// NullProgressReporter drains the progress channel without displaying
// anything. Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// CaseObserver is notified after every verification case. Implementations
// are called from several workers at once and must be safe for concurrent
// use.
type CaseObserver interface {
	ObserveCase(op string, elapsed time.Duration, err error, mismatch bool)
}

// CaseObservers fans a case out to several observers.
type CaseObservers []CaseObserver

// ObserveCase forwards to every non-nil observer.
func (cs CaseObservers) ObserveCase(op string, elapsed time.Duration, err error, mismatch bool) {
	for _, c := range cs {
		if c != nil {
			c.ObserveCase(op, elapsed, err, mismatch)
		}
	}
}

// ResultPresenter renders results. Implementations live in the cli package.
type ResultPresenter interface {
	// PresentEval displays the values of a successful evaluation.
	PresentEval(result EvalResult, hex bool, out io.Writer)

	// PresentVerification displays the per-operation summary table and the
	// recorded mismatches.
	PresentVerification(report VerificationReport, out io.Writer)
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}

// ErrorHandler handles errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
