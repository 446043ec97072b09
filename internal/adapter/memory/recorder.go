package memory

import "sync"

// Recorder is a fake Alerter that records bells and alerts instead of
// surfacing them to a user, for assertions in tests and the demo CLI.
type Recorder struct {
	mu     sync.Mutex
	bells  int
	alerts []error
}

// NewRecorder builds an empty Recorder.
func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Bell() {
	r.mu.Lock()
	r.bells++
	r.mu.Unlock()
}

func (r *Recorder) Alert(err error) {
	r.mu.Lock()
	r.alerts = append(r.alerts, err)
	r.mu.Unlock()
}

// Bells returns the number of Bell calls recorded so far.
func (r *Recorder) Bells() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bells
}

// Alerts returns a snapshot of every error passed to Alert so far.
func (r *Recorder) Alerts() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error(nil), r.alerts...)
}
