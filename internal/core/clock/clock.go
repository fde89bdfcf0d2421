package clock

import (
	"sync"
	"time"
)

// Clock supplies timestamps for every supervisor record.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock, truncated to milliseconds in UTC. It never goes
// backwards: a wall-clock step back returns the last value handed out.
type System struct {
	mu   sync.Mutex
	last time.Time
}

// NewSystem returns a System clock.
func NewSystem() *System {
	return &System{}
}

func (s *System) Now() time.Time {
	now := time.Now().UTC().Truncate(time.Millisecond)

	s.mu.Lock()
	defer s.mu.Unlock()
	if now.Before(s.last) {
		return s.last
	}
	s.last = now
	return now
}

// Manual is a Clock that only moves when told to. Used by tests.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual returns a Manual clock set to start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start.UTC().Truncate(time.Millisecond)}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d. Negative durations are ignored.
func (m *Manual) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d).Truncate(time.Millisecond)
}
