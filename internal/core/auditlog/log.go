// Package auditlog keeps the four bounded, append-only sequences behind the
// supervisor: events, approvals, rollbacks and insights.
//
// A Log is not safe for concurrent use. The supervisor owns it and serializes
// every call.
package auditlog

import (
	"slices"
	"sort"
	"time"

	v1 "github.com/aevon-lab/overseer/internal/api/v1"
	"github.com/aevon-lab/overseer/internal/core/payload"
)

// Log holds the audit sequences. Each sequence keeps at most limit entries; the
// oldest are evicted first.
type Log struct {
	limit     int
	events    sequence[v1.Event]
	approvals sequence[v1.Approval]
	rollbacks sequence[v1.Rollback]
	insights  sequence[v1.Insight]
}

// New creates an empty log bounded by limit. limit must be positive.
func New(limit int) *Log {
	if limit <= 0 {
		panic("auditlog: limit must be positive")
	}
	return &Log{limit: limit}
}

// SetLimit changes the retention bound and trims every sequence to it.
func (l *Log) SetLimit(limit int) {
	if limit <= 0 {
		return
	}
	l.limit = limit
	l.events.trim(limit)
	l.approvals.trim(limit)
	l.rollbacks.trim(limit)
	l.insights.trim(limit)
}

func (l *Log) AppendEvent(e v1.Event)       { l.events.append(e, l.limit) }
func (l *Log) AppendApproval(a v1.Approval) { l.approvals.append(a, l.limit) }
func (l *Log) AppendRollback(r v1.Rollback) { l.rollbacks.append(r, l.limit) }
func (l *Log) AppendInsight(i v1.Insight)   { l.insights.append(i, l.limit) }

// FindEvent looks up a retained event by id. Trimmed events are not found.
func (l *Log) FindEvent(id string) (v1.Event, bool) {
	for i := len(l.events.items) - 1; i >= 0; i-- {
		if l.events.items[i].ID == id {
			return l.events.items[i], true
		}
	}
	return v1.Event{}, false
}

// EventsSince returns the retained events with Timestamp >= cutoff, oldest first.
// The result aliases the log: callers must not modify it or keep it past the
// next append.
func (l *Log) EventsSince(cutoff time.Time) []v1.Event {
	items := l.events.items
	i := sort.Search(len(items), func(i int) bool {
		return !items[i].Timestamp.Before(cutoff)
	})
	return items[i:]
}

// Snapshot copies all four sequences. Event payloads are deep-copied; the
// Policy field is left for the caller to fill.
func (l *Log) Snapshot() v1.Snapshot {
	events := slices.Clone(l.events.items)
	for i := range events {
		events[i].Payload = payload.Copy(events[i].Payload)
	}
	return v1.Snapshot{
		Events:    nonNil(events),
		Approvals: nonNil(slices.Clone(l.approvals.items)),
		Rollbacks: nonNil(slices.Clone(l.rollbacks.items)),
		Insights:  nonNil(slices.Clone(l.insights.items)),
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

type sequence[T any] struct {
	items []T
}

func (s *sequence[T]) append(v T, limit int) {
	s.items = append(s.items, v)
	s.trim(limit)
}

// trim drops entries from the front until len <= limit. Dropped slots are zeroed
// so the backing array does not pin evicted payloads.
func (s *sequence[T]) trim(limit int) {
	over := len(s.items) - limit
	if over <= 0 {
		return
	}
	clear(s.items[:over])
	s.items = s.items[over:]
}
