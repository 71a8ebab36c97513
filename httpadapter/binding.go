// Package httpadapter routes incoming HTTP requests to procedures of a
// model.Router, decodes and validates their input, invokes them, and
// serializes the result or a well-formed error response.
package httpadapter

import (
	"fmt"
	"strings"

	"github.com/openapi-rpc/httpadapter/model"
	"github.com/openapi-rpc/httpadapter/pathtemplate"
)

// Binding is the compiled form of a model.Procedure: the procedure itself
// plus its compiled path matcher. Bindings are constructed once by
// BuildTable and never mutated afterward.
type Binding struct {
	Procedure *model.Procedure
	Matcher   *pathtemplate.Matcher
}

// Table is the immutable, read-only-after-construction index from (method,
// path structure) to Binding.
type Table struct {
	bindings []*Binding
}

// BuildTable walks r.Procedures() and compiles a Binding for each,
// rejecting any procedure with a missing output schema or whose path
// template structure collides with another binding for the same method.
func BuildTable(r model.Router) (*Table, error) {
	t := &Table{}
	seen := make(map[string]string) // "METHOD structureKey" -> procedure ID

	for _, p := range r.Procedures() {
		if p.OutputSchema == nil {
			return nil, fmt.Errorf("httpadapter: procedure %q: output schema is required", p.ID)
		}

		matcher, err := pathtemplate.Compile(p.PathTemplate)
		if err != nil {
			return nil, fmt.Errorf("httpadapter: procedure %q: %w", p.ID, err)
		}

		key := strings.ToUpper(string(p.Method)) + " " + matcher.StructureKey()
		if existing, dup := seen[key]; dup {
			return nil, fmt.Errorf(
				"httpadapter: procedure %q and %q declare ambiguous routes: same method and path structure",
				existing, p.ID,
			)
		}
		seen[key] = p.ID

		t.bindings = append(t.bindings, &Binding{Procedure: p, Matcher: matcher})
	}

	return t, nil
}

// Lookup returns the first binding whose method matches (case-insensitive)
// and whose compiled matcher accepts path, along with the extracted path
// parameters. ok is false when no binding matches.
func (t *Table) Lookup(method, path string) (binding *Binding, pathParams map[string]string, ok bool) {
	method = strings.ToUpper(method)
	for _, b := range t.bindings {
		if strings.ToUpper(string(b.Procedure.Method)) != method {
			continue
		}
		if params, matched := b.Matcher.Match(path); matched {
			return b, params, true
		}
	}
	return nil, nil, false
}
