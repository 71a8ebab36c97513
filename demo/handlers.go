package demo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/openapi-rpc/httpadapter/model"
)

// handlers maps a procedure ID from testdata/procedures.yaml to the Go
// function that implements it. Behavior can't be expressed in the
// declarative table, so every entry there must have a matching handler
// here; NewRouter fails construction if one is missing.
var handlers = map[string]model.InvokeFunc{
	"greeting.sayHello":     sayHello,
	"greeting.sayHelloPath": sayHelloPath,
	"echo.echo":             echo,
	"users.get":             usersStore.get,
	"users.list":            usersStore.list,
	"users.create":          usersStore.create,
	"users.delete":          usersStore.delete,
	"time.now":              timeNow,
	"demo.cancelled":        cancelled,
}

func sayHello(ctx context.Context, rctx, input any) (any, error) {
	m, _ := input.(map[string]any)
	name, _ := m["name"].(string)
	if name == "" {
		name = "there"
	}
	return map[string]any{"greeting": fmt.Sprintf("Hello %s!", name)}, nil
}

func sayHelloPath(ctx context.Context, rctx, input any) (any, error) {
	m := input.(map[string]any)
	return map[string]any{"greeting": fmt.Sprintf("%s %s %s!", m["greeting"], m["first"], m["last"])}, nil
}

func echo(ctx context.Context, rctx, input any) (any, error) {
	return nil, nil
}

func timeNow(ctx context.Context, rctx, input any) (any, error) {
	return map[string]any{"unixSeconds": time.Now().Unix()}, nil
}

func cancelled(ctx context.Context, rctx, input any) (any, error) {
	return nil, &model.ProcedureError{Code: model.CodeClientClosedRequest, Message: "client closed request"}
}

// userRecord is the demo in-memory "users" domain: deliberately trivial,
// just enough to exercise a GET/LIST/POST/DELETE spread across the route
// table and OpenAPI document.
type userRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type userStore struct {
	mu     sync.Mutex
	nextID int
	byID   map[string]userRecord
}

var usersStore = newUserStore()

func newUserStore() *userStore {
	return &userStore{byID: make(map[string]userRecord)}
}

func (s *userStore) get(ctx context.Context, rctx, input any) (any, error) {
	m := input.(map[string]any)
	id, _ := m["id"].(string)

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.byID[id]
	if !ok {
		return nil, model.NewNotFound(fmt.Sprintf("user %q not found", id))
	}
	return map[string]any{"id": rec.ID, "name": rec.Name}, nil
}

func (s *userStore) list(ctx context.Context, rctx, input any) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]map[string]any, 0, len(s.byID))
	for _, rec := range s.byID {
		out = append(out, map[string]any{"id": rec.ID, "name": rec.Name})
	}
	return map[string]any{"users": out}, nil
}

func (s *userStore) create(ctx context.Context, rctx, input any) (any, error) {
	m := input.(map[string]any)
	name, _ := m["name"].(string)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	rec := userRecord{ID: fmt.Sprintf("user-%d", s.nextID), Name: name}
	s.byID[rec.ID] = rec
	return map[string]any{"id": rec.ID, "name": rec.Name}, nil
}

func (s *userStore) delete(ctx context.Context, rctx, input any) (any, error) {
	m := input.(map[string]any)
	id, _ := m["id"].(string)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return nil, model.NewNotFound(fmt.Sprintf("user %q not found", id))
	}
	delete(s.byID, id)
	return nil, nil
}
