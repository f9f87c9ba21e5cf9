package orchestration

import (
	"time"

	"github.com/agbru/bigint/internal/format"
	"github.com/agbru/bigint/internal/progress"
)

// ProgressAggregator folds the per-worker updates of a run into an overall
// fraction and an ETA. The CLI spinner and the dashboard share it.
type ProgressAggregator struct {
	state    *format.ProgressWithETA
	workers  int
	finished map[int]bool
}

// NewProgressAggregator returns nil when numWorkers is not positive; the
// caller should then DrainChannel.
func NewProgressAggregator(numWorkers int) *ProgressAggregator {
	if numWorkers <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:    format.NewProgressWithETA(numWorkers),
		workers:  numWorkers,
		finished: make(map[int]bool, numWorkers),
	}
}

// AggregatedProgress is the view of the run after one update.
type AggregatedProgress struct {
	WorkerIndex     int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// Update applies u. A worker counts as finished once it reports 1, however
// many times it does so.
func (a *ProgressAggregator) Update(u progress.ProgressUpdate) AggregatedProgress {
	if u.Value >= 1 && u.WorkerIndex >= 0 && u.WorkerIndex < a.workers {
		a.finished[u.WorkerIndex] = true
	}
	avg, eta := a.state.UpdateWithETA(u.WorkerIndex, u.Value)
	return AggregatedProgress{
		WorkerIndex:     u.WorkerIndex,
		Value:           u.Value,
		AverageProgress: avg,
		ETA:             eta,
	}
}

// CalculateAverage and GetETA read the current figures without an update,
// for displays that refresh on a timer.
func (a *ProgressAggregator) CalculateAverage() float64 { return a.state.CalculateAverage() }

func (a *ProgressAggregator) GetETA() time.Duration { return a.state.GetETA() }

func (a *ProgressAggregator) NumWorkers() int { return a.workers }

func (a *ProgressAggregator) FinishedWorkers() int { return len(a.finished) }

func (a *ProgressAggregator) IsMultiWorker() bool { return a.workers > 1 }

// DrainChannel discards updates until the channel is closed.
func DrainChannel(progressChan <-chan progress.ProgressUpdate) {
	for range progressChan {
	}
}
