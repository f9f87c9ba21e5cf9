// Package progress defines the progress messages exchanged between the
// verification workers, the calibration loop and the presentation layers.
package progress

// ProgressUpdate reports the completion fraction of one worker.
type ProgressUpdate struct {
	// WorkerIndex identifies the sender among the workers of a run.
	WorkerIndex int
	// Value is the completed fraction, from 0.0 to 1.0.
	Value float64
}

// ProgressCallback receives the completed fraction of a task.
type ProgressCallback func(progress float64)

// reportStep is the minimum progress delta forwarded to the channel.
const reportStep = 0.01

// Tracker counts completed units of work for one worker and forwards the
// progress to a channel in steps of at least one percent, so a fast worker
// does not flood a slow display.
type Tracker struct {
	ch       chan<- ProgressUpdate
	index    int
	total    int
	done     int
	reported float64
}

// NewTracker returns a Tracker for total units of work. A nil channel
// disables reporting.
func NewTracker(ch chan<- ProgressUpdate, index, total int) *Tracker {
	return &Tracker{ch: ch, index: index, total: total}
}

// Advance records n more completed units.
func (t *Tracker) Advance(n int) {
	t.done += n
	if t.ch == nil || t.total <= 0 {
		return
	}
	p := float64(t.done) / float64(t.total)
	if p > 1 {
		p = 1
	}
	if p-t.reported < reportStep && p < 1 {
		return
	}
	select {
	case t.ch <- ProgressUpdate{WorkerIndex: t.index, Value: p}:
		t.reported = p
	default:
		// Display is behind; the next step will carry the newer value.
	}
}

// Done forces a final 100% update, blocking until the channel accepts it.
func (t *Tracker) Done() {
	if t.ch == nil || t.reported >= 1 {
		return
	}
	t.ch <- ProgressUpdate{WorkerIndex: t.index, Value: 1}
	t.reported = 1
}

// Completed returns the number of units recorded so far.
func (t *Tracker) Completed() int { return t.done }
