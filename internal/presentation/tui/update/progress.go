package update

import "sync"

const progressBuffer = 8

// ProgressReporter forwards pipeline status lines to the TUI without blocking
// the pipeline. Each run gets its own channel, closed when the run finishes;
// lines are dropped while no run is active or the buffer is full.
type ProgressReporter struct {
	mu sync.Mutex
	ch chan string
}

// NewProgressReporter creates an idle reporter.
func NewProgressReporter() *ProgressReporter {
	return new(ProgressReporter{})
}

// Start opens the channel for a new run, closing any previous one.
func (r *ProgressReporter) Start() <-chan string {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ch != nil {
		close(r.ch)
	}
	r.ch = make(chan string, progressBuffer)
	return r.ch
}

// Finish closes the current run's channel.
func (r *ProgressReporter) Finish() {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ch != nil {
		close(r.ch)
		r.ch = nil
	}
}

// Update implements usecase.ProgressReporter.
func (r *ProgressReporter) Update(status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ch == nil {
		return
	}
	select {
	case r.ch <- status:
	default:
	}
}
