package memory

import (
	"sync"

	"github.com/fluxwatch/bufcore/internal/coreevent"
)

// Clock is a deterministic, manually-driven stand-in for the driver's
// wall-clock timers. Tests call Fire to simulate an elapsed timer
// instead of waiting on real time.Timer firings.
type Clock struct {
	mu       sync.Mutex
	pending  map[coreevent.TimerID]float64
	fireFunc func(coreevent.TimerID)
}

// NewClock builds an idle fake clock.
func NewClock() *Clock {
	return &Clock{pending: make(map[coreevent.TimerID]float64)}
}

func (c *Clock) Start(id coreevent.TimerID, seconds float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending[id] = seconds
}

func (c *Clock) OnFire(fn func(coreevent.TimerID)) {
	c.mu.Lock()
	c.fireFunc = fn
	c.mu.Unlock()
}

// Pending reports whether id has an outstanding (unfired) schedule.
func (c *Clock) Pending(id coreevent.TimerID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pending[id]
	return ok
}

// Fire simulates id's scheduled timer elapsing: it clears the pending
// entry and invokes the registered OnFire callback, if any.
func (c *Clock) Fire(id coreevent.TimerID) {
	c.mu.Lock()
	delete(c.pending, id)
	fn := c.fireFunc
	c.mu.Unlock()
	if fn != nil {
		fn(id)
	}
}
