// Package temporal correlates a newly ingested event with recent history.
//
// Every rule here is deliberately simple (windowed counting and substring
// matching) so each finding can be traced back to the rule that produced it.
package temporal

import (
	"fmt"
	"math"
	"strings"
	"time"

	v1 "github.com/aevon-lab/overseer/internal/api/v1"
	"github.com/shopspring/decimal"
)

// RepeatThreshold is the number of identical (source, action) events inside one
// window, the new event included, that counts as a repeat.
const RepeatThreshold = 3

// LabelSeparator joins "source:action" labels before signature matching.
const LabelSeparator = " > "

// Rule names the heuristic behind a Finding.
type Rule string

const (
	RuleRepeat    Rule = "repeat"
	RuleTrigger   Rule = "trigger"
	RuleSignature Rule = "signature"
)

// Finding is one detected pattern.
type Finding struct {
	Rule Rule
	Text string
}

// History is the ordered event sequence the analyzer scans.
type History interface {
	// EventsSince returns events with Timestamp >= cutoff in arrival order.
	EventsSince(cutoff time.Time) []v1.Event
}

// Analyze scans history for patterns ending in evt, which must already be the
// newest entry of history. Windows are evaluated independently in ascending
// order; overlapping windows may report the same pair more than once.
func Analyze(evt v1.Event, history History, policy v1.Policy) []Finding {
	var findings []Finding

	for _, w := range policy.TemporalWindows {
		selected := history.EventsSince(windowStart(evt.Timestamp, w))
		findings = append(findings, repeats(evt, selected, w)...)
		findings = append(findings, triggers(evt, selected, w)...)
	}

	for _, sig := range policy.SequenceSignatures {
		selected := history.EventsSince(windowStart(evt.Timestamp, sig.WithinSeconds))
		if matchesSignature(selected, sig) {
			findings = append(findings, Finding{
				Rule: RuleSignature,
				Text: fmt.Sprintf("Signature %q matched: %s within %ds",
					sig.Name, strings.Join(sig.Pattern, LabelSeparator), sig.WithinSeconds),
			})
		}
	}

	return findings
}

// maxWindow is the longest span time.Duration can hold, in whole seconds.
const maxWindow = int64(math.MaxInt64 / int64(time.Second))

// windowStart saturates instead of overflowing, so a huge window selects the
// whole history.
func windowStart(t time.Time, seconds int) time.Time {
	if int64(seconds) > maxWindow {
		return time.Time{}
	}
	return t.Add(-time.Duration(seconds) * time.Second)
}

func repeats(evt v1.Event, selected []v1.Event, w int) []Finding {
	count := 0
	for i := range selected {
		if selected[i].Source == evt.Source && selected[i].Action == evt.Action {
			count++
		}
	}
	if count < RepeatThreshold {
		return nil
	}
	return []Finding{{
		Rule: RuleRepeat,
		Text: fmt.Sprintf("%s repeated %d times within %ds window", evt.Label(), count, w),
	}}
}

// triggers pairs every strictly earlier event in the window with evt.
func triggers(evt v1.Event, selected []v1.Event, w int) []Finding {
	var out []Finding
	limit := decimal.NewFromInt(int64(w))
	for i := range selected {
		e := &selected[i]
		if e.ID == evt.ID || !e.Timestamp.Before(evt.Timestamp) {
			continue
		}
		dt := decimal.New(evt.Timestamp.Sub(e.Timestamp).Milliseconds(), -3)
		if !dt.IsPositive() || dt.GreaterThan(limit) {
			continue
		}
		out = append(out, Finding{
			Rule: RuleTrigger,
			Text: fmt.Sprintf("%s → %s within %s seconds", e.Label(), evt.Label(), dt.String()),
		})
	}
	return out
}

// matchesSignature reports whether the signature's steps occur consecutively,
// in order, among all events in the window. This is a plain substring test on
// the joined labels, so label boundaries are not enforced.
func matchesSignature(selected []v1.Event, sig v1.Signature) bool {
	if len(sig.Pattern) == 0 {
		return false
	}
	labels := make([]string, len(selected))
	for i := range selected {
		labels[i] = selected[i].Label()
	}
	return strings.Contains(
		strings.Join(labels, LabelSeparator),
		strings.Join(sig.Pattern, LabelSeparator),
	)
}
