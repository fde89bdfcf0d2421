package policy

import (
	"log/slog"
	"math"
	"slices"
	"strings"
	"sync"

	v1 "github.com/aevon-lab/overseer/internal/api/v1"
)

// Retention bounds for HistoryLimit. Out-of-range values are clamped, not rejected.
const (
	MinHistoryLimit     = 10
	MaxHistoryLimit     = 10000
	DefaultHistoryLimit = 500
)

// MaxWindowSeconds bounds temporal windows and signature spans. Larger values
// are rejected like non-positive ones.
const MaxWindowSeconds = math.MaxInt32

// Defaults returns the policy a supervisor starts with.
func Defaults() v1.Policy {
	return v1.Policy{
		AutoApprove:        true,
		LowRiskActions:     []string{"listFiles", "logNote", "readFile"},
		PerSourceAllow:     map[string][]string{},
		TemporalWindows:    []int{10, 60},
		SequenceSignatures: []v1.Signature{},
		HistoryLimit:       DefaultHistoryLimit,
	}
}

// Store holds the current policy. Readers always get a complete copy; a patch is
// merged on a private copy and swapped in under the write lock.
type Store struct {
	mu      sync.RWMutex
	current v1.Policy
}

// NewStore creates a store whose policy is base. base is taken as a complete
// policy: nil lists and maps mean empty and a zero HistoryLimit means
// DefaultHistoryLimit. It is sanitized the same way a full patch would be, so
// a hand-built policy cannot bypass validation.
func NewStore(base v1.Policy) *Store {
	s := &Store{current: Defaults()}
	s.Apply(patchFrom(base))
	return s
}

// Current returns a copy of the active policy.
func (s *Store) Current() v1.Policy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Apply validates patch field by field and merges the fields that survive.
// Invalid fields are dropped without failing the rest of the update.
// It returns the JSON names of the fields that were applied.
func (s *Store) Apply(patch v1.PolicyPatch) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current.Clone()
	var applied []string

	if patch.AutoApprove != nil {
		next.AutoApprove = *patch.AutoApprove
		applied = append(applied, "auto_approve")
	}
	if patch.LowRiskActions != nil {
		next.LowRiskActions = normalizeSet(patch.LowRiskActions)
		applied = append(applied, "low_risk_actions")
	}
	if patch.PerSourceAllow != nil {
		allow := make(map[string][]string, len(patch.PerSourceAllow))
		for source, actions := range patch.PerSourceAllow {
			source = strings.TrimSpace(source)
			if source == "" {
				continue
			}
			allow[source] = normalizeSet(actions)
		}
		next.PerSourceAllow = allow
		applied = append(applied, "per_source_allow")
	}
	if patch.TemporalWindows != nil {
		if windows, ok := sanitizeWindows(patch.TemporalWindows); ok {
			next.TemporalWindows = windows
			applied = append(applied, "temporal_windows")
		} else {
			slog.Debug("[Policy] Dropped temporal_windows: no valid entries", "value", patch.TemporalWindows)
		}
	}
	if patch.SequenceSignatures != nil {
		if sigs, ok := sanitizeSignatures(patch.SequenceSignatures); ok {
			next.SequenceSignatures = sigs
			applied = append(applied, "sequence_signatures")
		} else {
			slog.Debug("[Policy] Dropped sequence_signatures: no valid entries")
		}
	}
	if patch.HistoryLimit != nil {
		next.HistoryLimit = ClampHistoryLimit(*patch.HistoryLimit)
		applied = append(applied, "history_limit")
	}

	s.current = next
	return applied
}

// ClampHistoryLimit forces n into [MinHistoryLimit, MaxHistoryLimit].
func ClampHistoryLimit(n int) int {
	return min(max(n, MinHistoryLimit), MaxHistoryLimit)
}

// sanitizeWindows keeps windows in (0, MaxWindowSeconds], sorted and deduplicated.
// An explicitly empty list is valid and disables windowed analysis; a non-empty
// list with no valid entries is rejected.
func sanitizeWindows(in []int) ([]int, bool) {
	out := make([]int, 0, len(in))
	for _, w := range in {
		if w > 0 && w <= MaxWindowSeconds {
			out = append(out, w)
		}
	}
	if len(out) == 0 && len(in) > 0 {
		return nil, false
	}
	slices.Sort(out)
	return slices.Compact(out), true
}

// sanitizeSignatures keeps well-formed signatures in their given order. The first
// signature wins when names repeat.
func sanitizeSignatures(in []v1.Signature) ([]v1.Signature, bool) {
	out := make([]v1.Signature, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, sig := range in {
		name := strings.TrimSpace(sig.Name)
		if name == "" || seen[name] || sig.WithinSeconds <= 0 || sig.WithinSeconds > MaxWindowSeconds || !validPattern(sig.Pattern) {
			slog.Debug("[Policy] Dropped malformed signature", "name", sig.Name)
			continue
		}
		seen[name] = true
		out = append(out, v1.Signature{
			Name:          name,
			Pattern:       slices.Clone(sig.Pattern),
			WithinSeconds: sig.WithinSeconds,
		})
	}
	if len(out) == 0 && len(in) > 0 {
		return nil, false
	}
	return out, true
}

// validPattern requires at least one step, each of the form "source:action".
func validPattern(pattern []string) bool {
	if len(pattern) == 0 {
		return false
	}
	for _, step := range pattern {
		source, action, ok := strings.Cut(step, ":")
		if !ok || source == "" || action == "" {
			return false
		}
	}
	return true
}

func normalizeSet(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// patchFrom turns a complete policy into a patch that sets every field.
func patchFrom(p v1.Policy) v1.PolicyPatch {
	p = p.Clone()
	if p.LowRiskActions == nil {
		p.LowRiskActions = []string{}
	}
	if p.TemporalWindows == nil {
		p.TemporalWindows = []int{}
	}
	if p.HistoryLimit == 0 {
		p.HistoryLimit = DefaultHistoryLimit
	}
	return v1.PolicyPatch{
		AutoApprove:        &p.AutoApprove,
		LowRiskActions:     p.LowRiskActions,
		PerSourceAllow:     p.PerSourceAllow,
		TemporalWindows:    p.TemporalWindows,
		SequenceSignatures: p.SequenceSignatures,
		HistoryLimit:       &p.HistoryLimit,
	}
}
