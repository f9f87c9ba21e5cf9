package orchestration

import (
	"testing"

	"github.com/agbru/bigint/internal/progress"
)

func TestNewProgressAggregator(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		workers int
		wantNil bool
		multi   bool
	}{
		{"three workers", 3, false, true},
		{"single worker", 1, false, false},
		{"zero workers", 0, true, false},
		{"negative workers", -1, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			agg := NewProgressAggregator(tt.workers)
			if (agg == nil) != tt.wantNil {
				t.Fatalf("NewProgressAggregator(%d) = %v", tt.workers, agg)
			}
			if agg == nil {
				return
			}
			if agg.NumWorkers() != tt.workers {
				t.Errorf("NumWorkers() = %d, want %d", agg.NumWorkers(), tt.workers)
			}
			if agg.IsMultiWorker() != tt.multi {
				t.Errorf("IsMultiWorker() = %v, want %v", agg.IsMultiWorker(), tt.multi)
			}
		})
	}
}

func TestProgressAggregatorUpdate(t *testing.T) {
	t.Parallel()
	agg := NewProgressAggregator(2)

	ap := agg.Update(progress.ProgressUpdate{WorkerIndex: 0, Value: 0.5})
	if ap.WorkerIndex != 0 || ap.Value != 0.5 {
		t.Errorf("update echoed as %+v", ap)
	}
	if ap.AverageProgress != 0.25 {
		t.Errorf("AverageProgress = %f, want 0.25", ap.AverageProgress)
	}

	ap = agg.Update(progress.ProgressUpdate{WorkerIndex: 1, Value: 1})
	if ap.AverageProgress != 0.75 {
		t.Errorf("AverageProgress = %f, want 0.75", ap.AverageProgress)
	}
	if agg.FinishedWorkers() != 1 {
		t.Errorf("FinishedWorkers() = %d, want 1", agg.FinishedWorkers())
	}
	if avg := agg.CalculateAverage(); avg != 0.75 {
		t.Errorf("CalculateAverage() = %f, want 0.75", avg)
	}
}

func TestProgressAggregatorRepeatedCompletion(t *testing.T) {
	t.Parallel()
	agg := NewProgressAggregator(3)
	for range 3 {
		agg.Update(progress.ProgressUpdate{WorkerIndex: 2, Value: 1})
	}
	agg.Update(progress.ProgressUpdate{WorkerIndex: 7, Value: 1})
	if got := agg.FinishedWorkers(); got != 1 {
		t.Errorf("FinishedWorkers() = %d, want 1", got)
	}
}

func TestProgressAggregatorInitialETA(t *testing.T) {
	t.Parallel()
	if eta := NewProgressAggregator(1).GetETA(); eta != 0 {
		t.Errorf("initial ETA = %v, want 0", eta)
	}
}

func TestDrainChannel(t *testing.T) {
	t.Parallel()
	ch := make(chan progress.ProgressUpdate, 3)
	for i := range 3 {
		ch <- progress.ProgressUpdate{WorkerIndex: 0, Value: float64(i) / 10}
	}
	close(ch)
	DrainChannel(ch)
	if len(ch) != 0 {
		t.Errorf("%d updates left in channel", len(ch))
	}
}
