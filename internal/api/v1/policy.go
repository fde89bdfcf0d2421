package v1

import (
	"maps"
	"slices"
)

// Signature is a named ordered pattern of "source:action" labels that is expected
// to appear consecutively within WithinSeconds of the newest event.
type Signature struct {
	Name          string   `json:"name" yaml:"name"`
	Pattern       []string `json:"pattern" yaml:"pattern"`
	WithinSeconds int      `json:"within_seconds" yaml:"within_seconds"`
}

// Policy is the rule configuration consulted by the analyzer and the approval engine.
// Sets are kept as sorted, duplicate-free slices so snapshots serialize stably.
type Policy struct {
	AutoApprove        bool                `json:"auto_approve"`
	LowRiskActions     []string            `json:"low_risk_actions"`
	PerSourceAllow     map[string][]string `json:"per_source_allow"`
	TemporalWindows    []int               `json:"temporal_windows"` // seconds, ascending
	SequenceSignatures []Signature         `json:"sequence_signatures"`
	HistoryLimit       int                 `json:"history_limit"`
}

// IsLowRisk reports whether action is whitelisted for every source.
func (p *Policy) IsLowRisk(action string) bool {
	return slices.Contains(p.LowRiskActions, action)
}

// SourceAllows reports whether action is whitelisted for source. A source without
// an entry allows nothing.
func (p *Policy) SourceAllows(source, action string) bool {
	return slices.Contains(p.PerSourceAllow[source], action)
}

// Clone returns a copy that shares no slices or maps with p.
func (p Policy) Clone() Policy {
	out := p
	out.LowRiskActions = slices.Clone(p.LowRiskActions)
	out.TemporalWindows = slices.Clone(p.TemporalWindows)
	out.PerSourceAllow = make(map[string][]string, len(p.PerSourceAllow))
	for source, actions := range p.PerSourceAllow {
		out.PerSourceAllow[source] = slices.Clone(actions)
	}
	out.SequenceSignatures = make([]Signature, len(p.SequenceSignatures))
	for i, sig := range p.SequenceSignatures {
		sig.Pattern = slices.Clone(sig.Pattern)
		out.SequenceSignatures[i] = sig
	}
	return out
}

// PolicyPatch is a partial policy update. A nil field is absent and leaves the
// current value untouched; a non-nil empty slice or map replaces the value with
// an empty one.
type PolicyPatch struct {
	AutoApprove        *bool
	LowRiskActions     []string
	PerSourceAllow     map[string][]string
	TemporalWindows    []int
	SequenceSignatures []Signature
	HistoryLimit       *int
}

// Empty reports whether the patch carries no fields at all.
func (p PolicyPatch) Empty() bool {
	return p.AutoApprove == nil &&
		p.LowRiskActions == nil &&
		p.PerSourceAllow == nil &&
		p.TemporalWindows == nil &&
		p.SequenceSignatures == nil &&
		p.HistoryLimit == nil
}

// Fields lists the JSON names of the fields present in the patch, in a fixed order.
func (p PolicyPatch) Fields() []string {
	present := map[string]bool{
		"auto_approve":        p.AutoApprove != nil,
		"low_risk_actions":    p.LowRiskActions != nil,
		"per_source_allow":    p.PerSourceAllow != nil,
		"temporal_windows":    p.TemporalWindows != nil,
		"sequence_signatures": p.SequenceSignatures != nil,
		"history_limit":       p.HistoryLimit != nil,
	}
	var out []string
	for _, name := range slices.Sorted(maps.Keys(present)) {
		if present[name] {
			out = append(out, name)
		}
	}
	return out
}

// PolicyUpdateResponse reports which fields of a patch were applied and the
// resulting policy.
type PolicyUpdateResponse struct {
	Applied []string `json:"applied"`
	Policy  Policy   `json:"policy"`
}
