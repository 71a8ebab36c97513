// Package schema adapts github.com/getkin/kin-openapi's JSON Schema
// validator (openapi3.Schema) to the model.Schema interface the HTTP
// adapter depends on.
//
// Grounded on internal/openapi/index.go's use of openapi3 to resolve and
// validate request/response schemas, generalized here from "validate a
// decoded JSON body against an indexed operation" to "validate and coerce
// any input/output value, whatever its source, against a declared
// schema."
package schema

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/openapi-rpc/httpadapter/model"
)

// Validator wraps an openapi3.Schema as a model.Schema.
type Validator struct {
	schema *openapi3.Schema
}

// New wraps s as a model.Schema. A nil s is not valid; callers that want a
// Void schema use model.Void instead.
func New(s *openapi3.Schema) *Validator {
	return &Validator{schema: s}
}

// IsVoid always reports false: Validator only ever wraps a real declared
// schema. model.Void is the Schema used for procedures with no
// input/output.
func (v *Validator) IsVoid() bool { return false }

// NativelyCoerces reports whether the underlying validation library
// coerces scalar leaves (e.g. the query string "9") into the types its
// schema declares. kin-openapi's Schema.VisitJSON never does this, so this
// is hard-coded false — Validate always performs an explicit coercion pass
// first. A Schema backed by a library that does coerce natively would
// return true here and skip straight to validation.
func (v *Validator) NativelyCoerces() bool { return false }

// OpenAPISchema returns the wrapped openapi3.Schema, for callers that
// render it into a document (see the openapidoc package) rather than
// validate against it.
func (v *Validator) OpenAPISchema() *openapi3.Schema { return v.schema }

// Validate coerces string leaves that the schema declares as a non-string
// type, validates the result against the wrapped schema, and — on success
// — returns a value with any date/date-time leaves converted to
// time.Time for convenient use by procedure code. On failure it returns
// the issues kin-openapi reported, translated into model.Issue.
func (v *Validator) Validate(value any) (any, []model.Issue) {
	coerced := coerceLeaves(value, v.schema)

	if err := v.schema.VisitJSON(coerced, openapi3.MultiErrors()); err != nil {
		return nil, schemaIssues(err)
	}

	return typeLeaves(coerced, v.schema), nil
}

// schemaIssues flattens a kin-openapi validation error (which may be a
// single *openapi3.SchemaError or an openapi3.MultiError of them) into
// model.Issue values.
func schemaIssues(err error) []model.Issue {
	if me, ok := err.(openapi3.MultiError); ok {
		issues := make([]model.Issue, 0, len(me))
		for _, sub := range me {
			issues = append(issues, schemaIssues(sub)...)
		}
		return issues
	}

	if se, ok := err.(*openapi3.SchemaError); ok {
		expected := schemaTypeName(se.Schema)
		received := jsonValueKind(se.Value)
		message := se.Reason
		if expected != "" && received != "" {
			message = fmt.Sprintf("Expected %s, received %s", expected, received)
		}
		return []model.Issue{{
			Code:     "invalid_type",
			Path:     se.JSONPointer(),
			Message:  message,
			Expected: expected,
			Received: received,
		}}
	}

	return []model.Issue{{Code: "invalid_type", Message: err.Error()}}
}

// schemaTypeName returns the first declared JSON Schema type name, or ""
// if s declares none (e.g. a oneOf/anyOf composition).
func schemaTypeName(s *openapi3.Schema) string {
	if s == nil || s.Type == nil || len(*s.Type) == 0 {
		return ""
	}
	return (*s.Type)[0]
}

// jsonValueKind names the JSON type of a decoded value (the shapes
// encoding/json ever produces: string, float64, bool, nil, map, slice).
func jsonValueKind(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return ""
	}
}
