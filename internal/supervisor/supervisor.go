// Package supervisor is the entry point producers and consumers talk to. It owns
// the audit log, the policy store and the subscriber list, and runs every
// mutation as one serialized store-analyze-approve step.
package supervisor

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	v1 "github.com/aevon-lab/overseer/internal/api/v1"
	"github.com/aevon-lab/overseer/internal/core/approval"
	"github.com/aevon-lab/overseer/internal/core/auditlog"
	"github.com/aevon-lab/overseer/internal/core/clock"
	"github.com/aevon-lab/overseer/internal/core/notify"
	"github.com/aevon-lab/overseer/internal/core/payload"
	"github.com/aevon-lab/overseer/internal/core/policy"
	"github.com/aevon-lab/overseer/internal/core/sink"
	"github.com/aevon-lab/overseer/internal/core/temporal"
	"github.com/google/uuid"
)

// DefaultApprover is recorded when a manual approval names nobody.
const DefaultApprover = "operator"

// Options configures a Supervisor. A nil Clock selects the system clock and a
// nil Policy selects policy.Defaults. A non-nil Policy is used as given, with
// nil lists meaning empty; it is not merged over the defaults.
type Options struct {
	Clock  clock.Clock
	Policy *v1.Policy
	Sink   sink.Sink
}

// Supervisor is safe for concurrent use.
type Supervisor struct {
	mu       sync.RWMutex
	clock    clock.Clock
	policy   *policy.Store
	log      *auditlog.Log
	engine   *approval.Engine
	notifier *notify.Notifier
}

// New builds a Supervisor.
func New(opts Options) *Supervisor {
	if opts.Clock == nil {
		opts.Clock = clock.NewSystem()
	}
	base := policy.Defaults()
	if opts.Policy != nil {
		base = *opts.Policy
	}

	store := policy.NewStore(base)
	s := &Supervisor{
		clock:  opts.Clock,
		policy: store,
		log:    auditlog.New(store.Current().HistoryLimit),
		engine: approval.NewEngine(opts.Sink, auditlog.NewInsight),
	}
	s.notifier = notify.New(s.Snapshot)
	return s
}

// SubmitEvent records an action and runs correlation and auto-approval on it.
// It always succeeds and returns the new event id. A payload that cannot be
// cloned is stored as nil.
func (s *Supervisor) SubmitEvent(source, action string, data interface{}) string {
	s.mu.Lock()

	now := s.clock.Now()
	cloned, err := payload.Clone(data)
	if err != nil {
		slog.Warn("[Supervisor] Payload not cloneable, storing nil",
			"source", source,
			"action", action,
			"error", err)
		cloned = nil
	}

	evt := v1.Event{
		ID:        uuid.NewString(),
		Source:    source,
		Action:    action,
		Payload:   cloned,
		Timestamp: now,
	}
	s.log.AppendEvent(evt)

	pol := s.policy.Current()
	for _, f := range temporal.Analyze(evt, s.log, pol) {
		s.log.AppendInsight(auditlog.NewInsight(v1.InsightTemporal, f.Text, now))
		slog.Debug("[Supervisor] Temporal finding", "event_id", evt.ID, "rule", f.Rule, "text", f.Text)
	}
	_, approved := s.engine.Auto(evt, pol, s.log, now)

	s.mu.Unlock()
	s.notifier.Publish()

	slog.Debug("[Supervisor] Event recorded",
		"event_id", evt.ID,
		"source", source,
		"action", action,
		"auto_approved", approved)
	return evt.ID
}

// Approve records a manual approval of eventID. It reports false, changing
// nothing, when the event is unknown or already trimmed.
func (s *Supervisor) Approve(eventID, approvedBy string) bool {
	approvedBy = strings.TrimSpace(approvedBy)
	if approvedBy == "" {
		approvedBy = DefaultApprover
	}

	s.mu.Lock()
	evt, ok := s.log.FindEvent(eventID)
	if !ok {
		s.mu.Unlock()
		return false
	}
	s.engine.Manual(evt, approvedBy, s.log, s.clock.Now())
	s.mu.Unlock()

	s.notifier.Publish()
	slog.Info("[Supervisor] Event approved", "event_id", eventID, "approved_by", approvedBy)
	return true
}

// Rollback records that the effect of eventID was undone, together with a
// recommendation insight. It reports false, changing nothing, when the event is
// unknown or already trimmed.
func (s *Supervisor) Rollback(eventID, reason string) bool {
	s.mu.Lock()
	evt, ok := s.log.FindEvent(eventID)
	if !ok {
		s.mu.Unlock()
		return false
	}

	now := s.clock.Now()
	r := v1.Rollback{EventID: eventID, Timestamp: now, Reason: reason}
	s.log.AppendRollback(r)

	s.log.AppendInsight(auditlog.NewInsight(v1.InsightRecommendation, rollbackText(evt, reason, s.policy.Current()), now))
	s.engine.Emit(sink.RollbackEntry(evt, r))
	s.mu.Unlock()

	s.notifier.Publish()
	slog.Info("[Supervisor] Event rolled back", "event_id", eventID, "reason", reason)
	return true
}

// rollbackText suggests reviewing the rule when the rolled-back action is one
// the policy would approve on its own.
func rollbackText(evt v1.Event, reason string, pol v1.Policy) string {
	if reason == "" {
		reason = "no reason given"
	}
	text := fmt.Sprintf("Rolled back %s: %s", evt.Label(), reason)
	if d := approval.Evaluate(evt, pol); d.Approve {
		text += fmt.Sprintf("; it is auto-approved by %s, consider narrowing that rule", d.Tag)
	}
	return text
}

// Snapshot returns an independent copy of the full state.
func (s *Supervisor) Snapshot() v1.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.log.Snapshot()
	snap.Policy = s.policy.Current()
	return snap
}

// Policy returns a copy of the active policy.
func (s *Supervisor) Policy() v1.Policy {
	return s.policy.Current()
}

// UpdatePolicy merges patch into the active policy. Invalid fields are dropped
// and the rest applied; the returned list names the applied fields. Every call
// records a policy insight and notifies subscribers, even when nothing changed.
func (s *Supervisor) UpdatePolicy(patch v1.PolicyPatch) []string {
	s.mu.Lock()

	applied := s.policy.Apply(patch)
	s.log.SetLimit(s.policy.Current().HistoryLimit)

	text := "Policy update ignored: no valid fields"
	if len(applied) > 0 {
		text = "Policy updated: " + strings.Join(applied, ", ")
	}
	s.log.AppendInsight(auditlog.NewInsight(v1.InsightPolicy, text, s.clock.Now()))
	s.mu.Unlock()

	s.notifier.Publish()
	slog.Info("[Supervisor] Policy updated", "requested", patch.Fields(), "applied", applied)
	return applied
}

// Subscribe registers fn for state changes. fn receives the current snapshot
// right away and then the latest snapshot after each change; changes that land
// while fn is still running are coalesced into one delivery.
func (s *Supervisor) Subscribe(fn notify.Callback) notify.Subscription {
	return s.notifier.Subscribe(fn)
}

// Close stops all subscriber deliveries. The sink is owned by the caller.
func (s *Supervisor) Close() {
	s.notifier.Close()
}
