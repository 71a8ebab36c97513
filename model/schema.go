package model

// Schema validates a candidate value and reports structured issues on
// failure. The "schema adapter" component (spec.md §2.1, implemented by
// the schema package) is the concrete Schema used in practice; this
// interface is what httpadapter depends on so it never imports a specific
// validation library directly.
//
// Void is the sentinel Schema for "accepts only absence of input/output"
// (spec.md §3, "Void input/output").
type Schema interface {
	// Validate checks v and returns either the (possibly coerced) value to
	// use going forward, or a non-empty Issues slice on failure.
	Validate(v any) (value any, issues []Issue)

	// IsVoid reports whether this schema accepts only the absence of a
	// value.
	IsVoid() bool
}

// voidSchema is the Schema implementation for procedures with no
// input/output.
type voidSchema struct{}

// Void is the shared "accepts only absence of value" schema.
var Void Schema = voidSchema{}

func (voidSchema) IsVoid() bool { return true }

func (voidSchema) Validate(v any) (any, []Issue) {
	if v == nil {
		return nil, nil
	}
	if m, ok := v.(map[string]any); ok && len(m) == 0 {
		return nil, nil
	}
	return nil, []Issue{{
		Code:    "invalid_type",
		Path:    nil,
		Message: "Expected no input",
	}}
}
