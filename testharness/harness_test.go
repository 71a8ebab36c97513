package testharness

import (
	"context"
	"net/http"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/openapi-rpc/httpadapter/httpadapter"
	"github.com/openapi-rpc/httpadapter/model"
	"github.com/openapi-rpc/httpadapter/schema"
)

func TestHarnessRoundTripsAProcedure(t *testing.T) {
	router := model.NewInMemoryRouter(nil)
	router.Register(&model.Procedure{
		ID:           "greeting.sayHello",
		Kind:         model.KindQuery,
		Method:       model.MethodGet,
		PathTemplate: "/say-hello",
		InputSchema:  schema.New(openapi3.NewObjectSchema().WithProperty("name", openapi3.NewStringSchema())),
		OutputSchema: schema.New(openapi3.NewObjectSchema().WithProperty("greeting", openapi3.NewStringSchema())),
		Invoke: func(ctx context.Context, rctx, input any) (any, error) {
			m := input.(map[string]any)
			return map[string]any{"greeting": "Hello " + m["name"].(string) + "!"}, nil
		},
	})

	h := New(t, router, httpadapter.Options{})
	resp := h.GET("/say-hello?name=World")
	h.AssertStatus(resp, http.StatusOK)

	var body map[string]string
	h.ParseJSON(resp, &body)
	if body["greeting"] != "Hello World!" {
		t.Errorf("greeting = %q, want %q", body["greeting"], "Hello World!")
	}
}
