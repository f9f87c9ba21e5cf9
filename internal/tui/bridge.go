package tui

import (
	"io"
	"maps"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/bigint/internal/errors"
	"github.com/agbru/bigint/internal/format"
	"github.com/agbru/bigint/internal/orchestration"
	"github.com/agbru/bigint/internal/progress"
)

// programRef lets goroutines started from a Model reach the running
// program. Models are copied on every Update, so they share this pointer.
type programRef struct {
	program atomic.Pointer[tea.Program]
}

func (r *programRef) SetProgram(p *tea.Program) { r.program.Store(p) }

// Send delivers msg if a program is attached and drops it otherwise.
func (r *programRef) Send(msg tea.Msg) {
	if p := r.program.Load(); p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter forwards the progress of a run to the dashboard.
type TUIProgressReporter struct {
	ref *programRef
}

var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress sends one ProgressMsg per update and a ProgressDoneMsg
// once the channel is closed.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numWorkers int, _ io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(numWorkers)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	for update := range progressChan {
		ap := agg.Update(update)
		t.ref.Send(ProgressMsg{
			WorkerIndex:     ap.WorkerIndex,
			Value:           ap.Value,
			AverageProgress: ap.AverageProgress,
			ETA:             ap.ETA,
			FinishedWorkers: agg.FinishedWorkers(),
			NumWorkers:      agg.NumWorkers(),
		})
	}
	t.ref.Send(ProgressDoneMsg{})
}

// OpStats are the live counters of one operation.
type OpStats struct {
	Cases      int
	Rejected   int
	Mismatches int
	EngineTime time.Duration
}

// MeanTime is the average engine time per case.
func (s OpStats) MeanTime() time.Duration {
	if s.Cases == 0 {
		return 0
	}
	return s.EngineTime / time.Duration(s.Cases)
}

// CaseTally counts verification cases per operation. Workers call
// ObserveCase concurrently; the dashboard reads it with Snapshot on every
// tick instead of receiving one message per case.
type CaseTally struct {
	mu    sync.Mutex
	stats map[string]OpStats
	total int
}

var _ orchestration.CaseObserver = (*CaseTally)(nil)

// NewCaseTally returns an empty tally.
func NewCaseTally() *CaseTally {
	return &CaseTally{stats: make(map[string]OpStats)}
}

// ObserveCase records one case.
func (c *CaseTally) ObserveCase(op string, elapsed time.Duration, err error, mismatch bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats[op]
	s.Cases++
	s.EngineTime += elapsed
	switch {
	case mismatch:
		s.Mismatches++
	case err != nil:
		s.Rejected++
	}
	c.stats[op] = s
	c.total++
}

// Snapshot returns a copy of the counters and the total case count.
func (c *CaseTally) Snapshot() (map[string]OpStats, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return maps.Clone(c.stats), c.total
}

// Reset clears the counters.
func (c *CaseTally) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.stats)
	c.total = 0
}

// TUIResultPresenter implements orchestration.ResultPresenter.
// It sends result messages to the TUI instead of writing to stdout.
type TUIResultPresenter struct {
	ref *programRef
}

var (
	_ orchestration.ResultPresenter   = (*TUIResultPresenter)(nil)
	_ orchestration.DurationFormatter = (*TUIResultPresenter)(nil)
	_ orchestration.ErrorHandler      = (*TUIResultPresenter)(nil)
)

// PresentEval is a no-op: the dashboard only shows verification runs.
func (t *TUIResultPresenter) PresentEval(orchestration.EvalResult, bool, io.Writer) {}

// PresentVerification sends the final report to the TUI.
func (t *TUIResultPresenter) PresentVerification(report orchestration.VerificationReport, _ io.Writer) {
	t.ref.Send(ReportMsg{Report: report})
}

// FormatDuration delegates to the shared formatter.
func (t *TUIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError sends an error message to the TUI and returns the exit code.
func (t *TUIResultPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	if err == nil {
		return apperrors.ExitSuccess
	}
	t.ref.Send(ErrorMsg{Err: err, Duration: duration})
	return apperrors.ExitCode(err)
}
