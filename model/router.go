package model

import "sort"

// InMemoryRouter is a flat, in-process Router implementation: procedures
// are registered once at startup and served from a plain slice. It is the
// reference Router this repository ships so the adapter is exercisable
// end-to-end; a production caller wraps its own RPC framework behind the
// same interface instead.
type InMemoryRouter struct {
	procedures []*Procedure
	formatter  ErrorFormatter
}

// NewInMemoryRouter returns an empty InMemoryRouter. formatter may be nil.
func NewInMemoryRouter(formatter ErrorFormatter) *InMemoryRouter {
	return &InMemoryRouter{formatter: formatter}
}

// Register adds p to the router and returns the router for chaining.
func (r *InMemoryRouter) Register(p *Procedure) *InMemoryRouter {
	r.procedures = append(r.procedures, p)
	return r
}

// Procedures implements Router. It returns procedures sorted by ID so
// construction-time diagnostics and generated documents are reproducible
// across runs, independent of registration order.
func (r *InMemoryRouter) Procedures() []*Procedure {
	out := make([]*Procedure, len(r.procedures))
	copy(out, r.procedures)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ErrorFormatter implements Router.
func (r *InMemoryRouter) ErrorFormatter() ErrorFormatter { return r.formatter }
