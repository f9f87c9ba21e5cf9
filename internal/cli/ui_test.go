package cli

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"
	"github.com/golang/mock/gomock"

	"github.com/agbru/bigint/internal/cli/mocks"
	"github.com/agbru/bigint/internal/orchestration"
	"github.com/agbru/bigint/internal/progress"
)

// withSpinner swaps newSpinner for the duration of a test.
func withSpinner(t *testing.T, s Spinner) {
	t.Helper()
	original := newSpinner
	newSpinner = func(...spinner.Option) Spinner { return s }
	t.Cleanup(func() { newSpinner = original })
}

func TestRealSpinner(t *testing.T) {
	t.Parallel()
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(io.Discard))
	rs := &realSpinner{s}

	// Just verify these methods don't panic
	rs.Start()
	rs.UpdateSuffix(" test")
	rs.Stop()
	if s.Suffix != " test" {
		t.Errorf("Suffix = %q, want %q", s.Suffix, " test")
	}
}

func TestDisplayProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockS := mocks.NewMockSpinner(ctrl)

	var mu sync.Mutex
	var suffixes []string
	gomock.InOrder(
		mockS.EXPECT().UpdateSuffix(gomock.Any()).Do(func(s string) {
			mu.Lock()
			suffixes = append(suffixes, s)
			mu.Unlock()
		}),
		mockS.EXPECT().Start(),
	)
	mockS.EXPECT().UpdateSuffix(gomock.Any()).Do(func(s string) {
		mu.Lock()
		suffixes = append(suffixes, s)
		mu.Unlock()
	}).AnyTimes()
	mockS.EXPECT().Stop()
	withSpinner(t, mockS)

	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan progress.ProgressUpdate)
	go func() {
		progressChan <- progress.ProgressUpdate{WorkerIndex: 0, Value: 0.5}
		progressChan <- progress.ProgressUpdate{WorkerIndex: 1, Value: 1}
		close(progressChan)
	}()

	var out bytes.Buffer
	DisplayProgress(&wg, progressChan, 2, &out)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(suffixes) < 3 {
		t.Fatalf("got %d suffix updates, want at least 3", len(suffixes))
	}
	if !strings.Contains(suffixes[0], "Workers 0/2") {
		t.Errorf("initial suffix = %q", suffixes[0])
	}
	if last := suffixes[len(suffixes)-1]; !strings.Contains(last, "75.00%") || !strings.Contains(last, "Workers 1/2") {
		t.Errorf("last suffix = %q, want 75%% with one finished worker", last)
	}
	if !strings.Contains(out.String(), "100.00%") {
		t.Errorf("final line = %q, want 100%%", out.String())
	}
}

func TestDisplayProgress_ZeroWorkers(t *testing.T) {
	ctrl := gomock.NewController(t)
	// No expectation: the spinner must not be created or started.
	withSpinner(t, mocks.NewMockSpinner(ctrl))

	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan progress.ProgressUpdate, 1)
	progressChan <- progress.ProgressUpdate{Value: 1}
	close(progressChan)

	DisplayProgress(&wg, progressChan, 0, io.Discard)
	wg.Wait()
}

func TestProgressSuffix(t *testing.T) {
	t.Parallel()
	single := orchestration.NewProgressAggregator(1)
	if got := progressSuffix(single, 0.25, 90*time.Second); !strings.Contains(got, "Progress:  25.00%") || !strings.Contains(got, "ETA 1m30s") {
		t.Errorf("progressSuffix = %q", got)
	}
	if got := progressSuffix(single, 1, 0); strings.Contains(got, "ETA") {
		t.Errorf("completed suffix should not show an ETA: %q", got)
	}
}
