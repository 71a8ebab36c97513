// Package model defines the types the HTTP adapter consumes from the
// external procedure router: the annotated procedure itself, its schemas,
// and the router that owns a namespace of them. These are the "external
// collaborators" spec.md §1 describes as out of scope for the adapter —
// the adapter only ever reaches them through the interfaces in this file.
package model

import "context"

// Kind distinguishes a read-only query from a mutating command. It is
// informational only — the HTTP adapter never restricts the declared
// Method based on Kind (spec.md §3).
type Kind string

const (
	KindQuery    Kind = "query"
	KindMutation Kind = "mutation"
)

// Method is one of the five HTTP methods a procedure may be bound to.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodPatch  Method = "PATCH"
	MethodDelete Method = "DELETE"
)

// DefaultContentTypes is the accepted-content-type set a procedure gets
// when it declares none explicitly.
var DefaultContentTypes = []string{"application/json"}

// InvokeFunc is the opaque callable the external router provides for a
// procedure: it receives the validated input and the context produced by
// the adapter's context factory, and returns the procedure's output or an
// error (typically a *ProcedureError carrying a caller-defined code).
type InvokeFunc func(ctx context.Context, rctx any, input any) (any, error)

// Procedure is one annotated procedure of the external router (spec.md §3,
// "Procedure binding"). ID is a diagnostic-only dotted identifier (e.g.
// "users.get"); it plays no role in routing.
type Procedure struct {
	ID                   string
	Kind                 Kind
	Method               Method
	PathTemplate         string
	AcceptedContentTypes []string
	InputSchema          Schema
	OutputSchema         Schema
	Invoke               InvokeFunc
}

// ContentTypes returns the procedure's accepted content types, defaulting
// to {"application/json"} when none were declared.
func (p *Procedure) ContentTypes() []string {
	if len(p.AcceptedContentTypes) == 0 {
		return DefaultContentTypes
	}
	return p.AcceptedContentTypes
}

// Router is the external procedure registry the adapter builds a route
// table from. A production caller supplies their own implementation
// wrapping whatever RPC framework they use; this repository's own
// InMemoryRouter (see router.go) is a reference implementation used by the
// demo server and the test suite.
type Router interface {
	// Procedures returns every procedure annotated for HTTP exposure, in a
	// stable, deterministic order. The route table rejects two procedures
	// with the same method and path structure (see
	// pathtemplate.Matcher.StructureKey), but templates with different
	// structures can still both match one path (e.g. "/users/{id}" and
	// "/users/me"); the route table then resolves to the first match in
	// this order. A stable order keeps that resolution, construction-time
	// diagnostics, and generated OpenAPI documents reproducible.
	Procedures() []*Procedure

	// ErrorFormatter returns the router's error formatter, or nil if it
	// doesn't have one. See ErrorFormatter below.
	ErrorFormatter() ErrorFormatter
}

// ErrorFormatter lets the external router enrich an error's visible shape
// (spec.md §4.5, §9). It may only contribute additional body fields; the
// adapter remains the sole authority on Code and HTTP status.
type ErrorFormatter interface {
	Format(err *ProcedureError) map[string]any
}
