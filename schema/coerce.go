package schema

import (
	"strconv"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
)

// coerceLeaves walks value alongside s and converts any string leaf the
// schema declares as boolean/integer/number into the matching JSON-native
// Go type (bool for boolean, float64 for both integer and number, as
// encoding/json would decode them), leaving everything else untouched.
//
// This single pass is what makes coercion safe for both sources the
// adapter feeds through Validate: query/path values arrive as plain
// strings and get converted here, while JSON body values already decoded
// as float64/bool/etc. never match the "is a string" guard and pass
// through unchanged.
func coerceLeaves(value any, s *openapi3.Schema) any {
	if s == nil {
		return value
	}

	switch {
	case s.Type != nil && s.Type.Is("object"):
		m, ok := value.(map[string]any)
		if !ok {
			return value
		}
		out := make(map[string]any, len(m))
		for k, v := range m {
			if propRef, ok := s.Properties[k]; ok && propRef != nil && propRef.Value != nil {
				out[k] = coerceLeaves(v, propRef.Value)
				continue
			}
			out[k] = v
		}
		return out

	case s.Type != nil && s.Type.Is("array"):
		items, ok := value.([]any)
		if !ok || s.Items == nil || s.Items.Value == nil {
			return value
		}
		out := make([]any, len(items))
		for i, v := range items {
			out[i] = coerceLeaves(v, s.Items.Value)
		}
		return out

	default:
		return coerceScalar(value, s)
	}
}

// coerceScalar converts a string leaf into the scalar type s declares, if
// possible. An unparsable string is left as-is so VisitJSON can report the
// appropriate type-mismatch issue.
func coerceScalar(value any, s *openapi3.Schema) any {
	str, ok := value.(string)
	if !ok || s.Type == nil {
		return value
	}

	switch {
	case s.Type.Is("boolean"):
		if b, err := strconv.ParseBool(str); err == nil {
			return b
		}
	case s.Type.Is("integer"):
		if n, err := strconv.ParseInt(str, 10, 64); err == nil {
			return float64(n)
		}
	case s.Type.Is("number"):
		if n, err := strconv.ParseFloat(str, 64); err == nil {
			return n
		}
	}
	return value
}

// typeLeaves walks an already-validated value and converts string leaves
// with format "date" or "date-time" into time.Time, for the convenience of
// procedure code that would otherwise have to re-parse them.
func typeLeaves(value any, s *openapi3.Schema) any {
	if s == nil {
		return value
	}

	switch {
	case s.Type != nil && s.Type.Is("object"):
		m, ok := value.(map[string]any)
		if !ok {
			return value
		}
		out := make(map[string]any, len(m))
		for k, v := range m {
			if propRef, ok := s.Properties[k]; ok && propRef != nil && propRef.Value != nil {
				out[k] = typeLeaves(v, propRef.Value)
				continue
			}
			out[k] = v
		}
		return out

	case s.Type != nil && s.Type.Is("array"):
		items, ok := value.([]any)
		if !ok || s.Items == nil || s.Items.Value == nil {
			return value
		}
		out := make([]any, len(items))
		for i, v := range items {
			out[i] = typeLeaves(v, s.Items.Value)
		}
		return out

	case s.Type != nil && s.Type.Is("string") && (s.Format == "date-time" || s.Format == "date"):
		str, ok := value.(string)
		if !ok {
			return value
		}
		layout := time.RFC3339
		if s.Format == "date" {
			layout = "2006-01-02"
		}
		if t, err := time.Parse(layout, str); err == nil {
			return t
		}
		return value

	default:
		return value
	}
}
