package policy

import (
	"encoding/json"
	"log/slog"
	"math"

	v1 "github.com/aevon-lab/overseer/internal/api/v1"
	"github.com/shopspring/decimal"
)

var maxIntField = decimal.NewFromInt(math.MaxInt32)

// ParsePatch builds a PolicyPatch from a loosely typed document (decoded JSON or
// YAML). Fields or list entries of the wrong type are dropped; numbers must be
// integral. Range checks happen later in Store.Apply.
func ParsePatch(raw map[string]interface{}) v1.PolicyPatch {
	var patch v1.PolicyPatch

	for key, value := range raw {
		switch key {
		case "auto_approve":
			if b, ok := value.(bool); ok {
				patch.AutoApprove = &b
				continue
			}
		case "low_risk_actions":
			if actions, ok := stringList(value); ok {
				patch.LowRiskActions = actions
				continue
			}
		case "per_source_allow":
			if allow, ok := allowMap(value); ok {
				patch.PerSourceAllow = allow
				continue
			}
		case "temporal_windows":
			if windows, ok := intList(value); ok {
				patch.TemporalWindows = windows
				continue
			}
		case "sequence_signatures":
			if sigs, ok := signatureList(value); ok {
				patch.SequenceSignatures = sigs
				continue
			}
		case "history_limit":
			if n, ok := toInt(value); ok {
				patch.HistoryLimit = &n
				continue
			}
		default:
			slog.Debug("[Policy] Ignoring unknown policy field", "field", key)
			continue
		}
		slog.Debug("[Policy] Dropped policy field with invalid type", "field", key)
	}

	return patch
}

func stringList(v interface{}) ([]string, bool) {
	items, ok := v.([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out, true
}

func intList(v interface{}) ([]int, bool) {
	items, ok := v.([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]int, 0, len(items))
	for _, item := range items {
		if n, ok := toInt(item); ok {
			out = append(out, n)
		} else {
			out = append(out, 0) // rejected later by Apply
		}
	}
	return out, true
}

func allowMap(v interface{}) (map[string][]string, bool) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, false
	}
	out := make(map[string][]string, len(m))
	for source, actions := range m {
		if list, ok := stringList(actions); ok {
			out[source] = list
		}
	}
	return out, true
}

func signatureList(v interface{}) ([]v1.Signature, bool) {
	items, ok := v.([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]v1.Signature, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			out = append(out, v1.Signature{})
			continue
		}
		var sig v1.Signature
		sig.Name, _ = m["name"].(string)
		if pattern, ok := stringList(m["pattern"]); ok {
			sig.Pattern = pattern
		}
		if within, ok := toInt(m["within_seconds"]); ok {
			sig.WithinSeconds = within
		}
		out = append(out, sig)
	}
	return out, true
}

// toInt accepts integral numbers only. Strings, booleans and fractions are
// rejected.
func toInt(v interface{}) (int, bool) {
	var d decimal.Decimal
	switch val := v.(type) {
	case int:
		d = decimal.NewFromInt(int64(val))
	case int32:
		d = decimal.NewFromInt(int64(val))
	case int64:
		d = decimal.NewFromInt(val)
	case uint64:
		if val > math.MaxInt32 {
			return 0, false
		}
		d = decimal.NewFromInt(int64(val))
	case float32:
		return toInt(float64(val))
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0, false
		}
		d = decimal.NewFromFloat(val)
	case json.Number:
		parsed, err := decimal.NewFromString(val.String())
		if err != nil {
			return 0, false
		}
		d = parsed
	default:
		return 0, false
	}

	if !d.IsInteger() || d.Abs().GreaterThan(maxIntField) {
		return 0, false
	}
	return int(d.IntPart()), true
}
