// Package telemetry tracks reducer invariant counters — token handoffs,
// rejected refreshes, and dropped protocol errors — for the driver to
// expose to its host process.
package telemetry

import (
	"sync/atomic"
	"time"
)

// Stats tracks counters for the life of a driver.
type Stats struct {
	engineAcquisitions atomic.Uint64
	hostAcquisitions   atomic.Uint64
	refreshesRejected  atomic.Uint64
	protocolErrors     atomic.Uint64
	alertsRaised       atomic.Uint64

	startTime time.Time
}

// New returns a Stats counter set with its uptime clock started now.
func New() *Stats {
	return &Stats{startTime: time.Now()}
}

// RecordTokenAcquired records the edition token being acquired by the
// named owner ("engine" or "host").
func (s *Stats) RecordTokenAcquired(owner string) {
	switch owner {
	case "engine":
		s.engineAcquisitions.Add(1)
	case "host":
		s.hostAcquisitions.Add(1)
	}
}

// RecordRefreshRejected records a RequestRefresh call dropped because
// the token was not Free (held by either side, or synchronizing).
func (s *Stats) RecordRefreshRejected() {
	s.refreshesRejected.Add(1)
}

// RecordProtocolErrorDropped records a malformed adapter notification
// dropped before it became an event.
func (s *Stats) RecordProtocolErrorDropped() {
	s.protocolErrors.Add(1)
}

// RecordAlertRaised records an AlertAction dispatched to the host.
func (s *Stats) RecordAlertRaised() {
	s.alertsRaised.Add(1)
}

// Snapshot returns a point-in-time, race-free view of the counters.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Uptime:             time.Since(s.startTime),
		EngineAcquisitions: s.engineAcquisitions.Load(),
		HostAcquisitions:   s.hostAcquisitions.Load(),
		RefreshesRejected:  s.refreshesRejected.Load(),
		ProtocolErrors:     s.protocolErrors.Load(),
		AlertsRaised:       s.alertsRaised.Load(),
	}
}

// Reset zeroes every counter and restarts the uptime clock.
func (s *Stats) Reset() {
	s.engineAcquisitions.Store(0)
	s.hostAcquisitions.Store(0)
	s.refreshesRejected.Store(0)
	s.protocolErrors.Store(0)
	s.alertsRaised.Store(0)
	s.startTime = time.Now()
}

// Snapshot is an immutable, point-in-time view of Stats.
type Snapshot struct {
	Uptime             time.Duration
	EngineAcquisitions uint64
	HostAcquisitions   uint64
	RefreshesRejected  uint64
	ProtocolErrors     uint64
	AlertsRaised       uint64
}

// TotalAcquisitions returns the combined token handoff count across
// both sides.
func (s Snapshot) TotalAcquisitions() uint64 {
	return s.EngineAcquisitions + s.HostAcquisitions
}
