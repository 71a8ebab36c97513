package demo

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/openapi-rpc/httpadapter/model"
)

// defaultTablePath locates testdata/procedures.yaml relative to this
// source file, so NewRouter works regardless of the caller's working
// directory — grounded on test/integration/harness.go's testdataDir().
func defaultTablePath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "testdata", "procedures.yaml")
}

// NewRouter builds the demo router from testdata/procedures.yaml, binding
// each declared procedure to its Go handler in handlers. It returns an
// error if the file is malformed, declares an unknown kind/method, or
// names a procedure with no registered handler.
func NewRouter() (*model.InMemoryRouter, error) {
	return NewRouterFromFile(defaultTablePath())
}

// NewRouterFromFile is NewRouter with an explicit table path, for tests
// that want a different fixture.
func NewRouterFromFile(path string) (*model.InMemoryRouter, error) {
	entries, err := loadFile(path)
	if err != nil {
		return nil, err
	}

	router := model.NewInMemoryRouter(nil)
	for _, e := range entries {
		proc, err := toProcedure(e)
		if err != nil {
			return nil, fmt.Errorf("demo: procedure %q: %w", e.ID, err)
		}
		router.Register(proc)
	}
	return router, nil
}

func toProcedure(e yamlProcedure) (*model.Procedure, error) {
	handler, ok := handlers[e.ID]
	if !ok {
		return nil, fmt.Errorf("no handler registered for procedure ID")
	}

	kind, err := toKind(e.Kind)
	if err != nil {
		return nil, err
	}
	method, err := toMethod(e.Method)
	if err != nil {
		return nil, err
	}
	input, err := toModelSchema(e.Input)
	if err != nil {
		return nil, fmt.Errorf("input schema: %w", err)
	}
	output, err := toModelSchema(e.Output)
	if err != nil {
		return nil, fmt.Errorf("output schema: %w", err)
	}

	return &model.Procedure{
		ID:           e.ID,
		Kind:         kind,
		Method:       method,
		PathTemplate: e.Path,
		InputSchema:  input,
		OutputSchema: output,
		Invoke:       handler,
	}, nil
}

func toKind(s string) (model.Kind, error) {
	switch s {
	case "query":
		return model.KindQuery, nil
	case "mutation":
		return model.KindMutation, nil
	default:
		return "", fmt.Errorf("unknown kind %q", s)
	}
}

func toMethod(s string) (model.Method, error) {
	switch s {
	case "GET":
		return model.MethodGet, nil
	case "POST":
		return model.MethodPost, nil
	case "PUT":
		return model.MethodPut, nil
	case "PATCH":
		return model.MethodPatch, nil
	case "DELETE":
		return model.MethodDelete, nil
	default:
		return "", fmt.Errorf("unknown method %q", s)
	}
}
