// Package approval decides whether an event is approved automatically and
// records approvals, automatic or manual.
package approval

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	v1 "github.com/aevon-lab/overseer/internal/api/v1"
	"github.com/aevon-lab/overseer/internal/core/sink"
)

// Policy tags attached to automatic approvals.
const (
	TagLowRisk     = "policy:low-risk"
	TagSourceAllow = "policy:source-allow"
)

// AutoApprover is the approvedBy value of automatic approvals.
const AutoApprover = "policy-engine"

// Decision is the outcome of evaluating one event.
type Decision struct {
	Approve bool
	Tag     string
	Reason  string
}

// Evaluate applies policy to evt. It is pure: the same event and policy always
// give the same decision.
func Evaluate(evt v1.Event, policy v1.Policy) Decision {
	switch {
	case !policy.AutoApprove:
		return Decision{Reason: "auto-approval disabled"}
	case policy.IsLowRisk(evt.Action):
		return Decision{Approve: true, Tag: TagLowRisk, Reason: "low-risk action"}
	case policy.SourceAllows(evt.Source, evt.Action):
		return Decision{Approve: true, Tag: TagSourceAllow, Reason: fmt.Sprintf("allowed for source %s", evt.Source)}
	default:
		return Decision{Reason: "no matching rule"}
	}
}

// Recorder is where approvals and insights are appended.
type Recorder interface {
	AppendApproval(v1.Approval)
	AppendInsight(v1.Insight)
}

// Engine records approval decisions into a Recorder and the audit sink.
type Engine struct {
	sink       sink.Sink
	newInsight func(kind v1.InsightKind, text string, at time.Time) v1.Insight
}

// NewEngine returns an Engine writing audit lines to s. newInsight stamps ids on
// the insights the engine emits.
func NewEngine(s sink.Sink, newInsight func(v1.InsightKind, string, time.Time) v1.Insight) *Engine {
	if s == nil {
		s = sink.Nop{}
	}
	if newInsight == nil {
		panic("approval: newInsight must not be nil")
	}
	return &Engine{sink: s, newInsight: newInsight}
}

// Auto evaluates evt and, on approval, records it with auto=true. It reports
// whether the event was approved.
func (e *Engine) Auto(evt v1.Event, policy v1.Policy, rec Recorder, now time.Time) (v1.Approval, bool) {
	d := Evaluate(evt, policy)
	if !d.Approve {
		slog.Debug("[Approval] Event left for review", "event_id", evt.ID, "reason", d.Reason)
		return v1.Approval{}, false
	}

	a := v1.Approval{
		EventID:    evt.ID,
		ApprovedBy: AutoApprover,
		Timestamp:  now,
		PolicyTag:  d.Tag,
		Auto:       true,
	}
	e.record(evt, a, rec, fmt.Sprintf("Auto-approved %s (%s)", evt.Label(), d.Reason))
	return a, true
}

// Manual records an approval made by approvedBy.
func (e *Engine) Manual(evt v1.Event, approvedBy string, rec Recorder, now time.Time) v1.Approval {
	a := v1.Approval{
		EventID:    evt.ID,
		ApprovedBy: approvedBy,
		Timestamp:  now,
	}
	e.record(evt, a, rec, fmt.Sprintf("Manually approved %s by %s", evt.Label(), approvedBy))
	return a
}

func (e *Engine) record(evt v1.Event, a v1.Approval, rec Recorder, text string) {
	rec.AppendApproval(a)
	rec.AppendInsight(e.newInsight(v1.InsightPolicy, text, a.Timestamp))
	e.Emit(sink.ApprovalEntry(evt, a))
}

// Emit sends one entry to the audit sink. Failures are logged, never returned.
func (e *Engine) Emit(entry sink.Entry) {
	if err := e.sink.Write(context.Background(), entry); err != nil {
		slog.Warn("[Approval] Audit sink write failed",
			"kind", entry.Kind,
			"event_id", entry.EventID,
			"error", err)
	}
}
