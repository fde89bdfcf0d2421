// Package payload takes ownership of producer payloads. Producers hand the
// supervisor arbitrary values; what gets stored is a detached JSON-shaped tree
// (map[string]interface{}, []interface{}, string, float64, bool, nil) that later
// mutation by the producer cannot reach.
package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"google.golang.org/protobuf/types/known/structpb"
)

// PreviewLimit is the number of characters kept by Preview.
const PreviewLimit = 160

// ErrNotFinite is returned for payloads holding NaN or infinite numbers, which
// have no JSON representation.
var ErrNotFinite = errors.New("payload contains a non-finite number")

// Clone converts v into a detached JSON-shaped tree. Values structpb understands
// natively are converted directly; anything else (structs, typed maps and slices)
// is first normalized through its JSON encoding. An error means v cannot be
// represented at all and the caller should store a nil placeholder.
func Clone(v interface{}) (interface{}, error) {
	val, err := structpb.NewValue(v)
	if err != nil {
		normalized, nerr := normalize(v)
		if nerr != nil {
			return nil, nerr
		}
		if val, err = structpb.NewValue(normalized); err != nil {
			return nil, fmt.Errorf("failed to convert payload: %w", err)
		}
	}
	if !finite(val) {
		return nil, ErrNotFinite
	}
	return val.AsInterface(), nil
}

func normalize(v interface{}) (interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return out, nil
}

func finite(v *structpb.Value) bool {
	switch k := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		return !math.IsNaN(k.NumberValue) && !math.IsInf(k.NumberValue, 0)
	case *structpb.Value_StructValue:
		for _, field := range k.StructValue.GetFields() {
			if !finite(field) {
				return false
			}
		}
	case *structpb.Value_ListValue:
		for _, item := range k.ListValue.GetValues() {
			if !finite(item) {
				return false
			}
		}
	}
	return true
}

// Copy deep-copies a tree produced by Clone. Scalars are shared since they are
// immutable.
func Copy(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = Copy(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = Copy(item)
		}
		return out
	default:
		return val
	}
}

// Preview renders v as JSON cut to the first PreviewLimit characters. <, >
// and & are kept literal.
func Preview(v interface{}) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "null"
	}
	raw := strings.TrimSuffix(buf.String(), "\n")
	runes := []rune(raw)
	if len(runes) <= PreviewLimit {
		return raw
	}
	return string(runes[:PreviewLimit])
}
