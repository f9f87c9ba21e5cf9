//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/bigint/internal/format"
	"github.com/agbru/bigint/internal/orchestration"
	"github.com/agbru/bigint/internal/progress"
)

const (
	// TruncationLimit is the digit count from which a value is truncated on
	// standard output unless -verbose is given.
	TruncationLimit = 100
	// DisplayEdges is the number of leading and trailing digits shown for a
	// truncated decimal value.
	DisplayEdges = 25
	// HexDisplayEdges is the same for hexadecimal values.
	HexDisplayEdges = 40
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts the terminal spinner so DisplayProgress can be tested
// without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress renders a spinner followed by the average progress of all
// workers and an ETA. It consumes progressChan until it is closed, prints a
// final line, and calls wg.Done.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numWorkers int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numWorkers)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(progressSuffix(agg, 0, 0))
	s.Start()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.Stop()
				fmt.Fprintf(out, "%s\n", progressSuffix(agg, 1, 0))
				return
			}
			a := agg.Update(update)
			s.UpdateSuffix(progressSuffix(agg, a.AverageProgress, a.ETA))
		case <-ticker.C:
			s.UpdateSuffix(progressSuffix(agg, agg.CalculateAverage(), agg.GetETA()))
		}
	}
}

func progressSuffix(agg *orchestration.ProgressAggregator, avg float64, eta time.Duration) string {
	label := "Progress"
	if agg.IsMultiWorker() {
		label = fmt.Sprintf("Workers %d/%d", agg.FinishedWorkers(), agg.NumWorkers())
	}
	suffix := fmt.Sprintf(" %s: %6.2f%% [%s]", label, avg*100, format.ProgressBar(avg, ProgressBarWidth))
	if avg < 1 {
		suffix += " ETA " + format.FormatETA(eta)
	}
	return suffix
}
