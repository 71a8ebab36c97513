// Package testharness provides a reusable httptest.NewServer-based fixture
// for end-to-end adapter tests: build a router, wrap it in a Handler, start
// a server, and issue requests against it with small JSON-aware helpers.
//
// Grounded on test/integration/harness.go's TestHarness shape (build
// dependencies, start an httptest.Server, expose a typed client), scoped
// down to just a model.Router and an httpadapter.Handler — there are no
// mock backends, JWT issuer, workflow store, or capability resolver here,
// since this adapter has none of those collaborators (see SPEC_FULL.md
// Non-goals: authentication, persistence, workflow).
package testharness

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/openapi-rpc/httpadapter/httpadapter"
	"github.com/openapi-rpc/httpadapter/model"
)

// Harness wraps a running httptest.Server fronting an httpadapter.Handler.
type Harness struct {
	t      *testing.T
	server *httptest.Server
}

// New builds a Handler over router with opts, starts a test server, and
// registers its cleanup with t. It fails the test immediately if the
// router's procedures don't build into a valid route table.
func New(t *testing.T, router model.Router, opts httpadapter.Options) *Harness {
	t.Helper()

	handler, err := httpadapter.NewHandler(router, opts)
	if err != nil {
		t.Fatalf("build handler: %v", err)
	}

	h := &Harness{t: t, server: httptest.NewServer(handler)}
	t.Cleanup(h.server.Close)
	return h
}

// BaseURL returns the test server's base URL.
func (h *Harness) BaseURL() string {
	return h.server.URL
}

// GET performs an unauthenticated GET request against path.
func (h *Harness) GET(path string) *http.Response {
	h.t.Helper()
	return h.do(http.MethodGet, path, nil, nil)
}

// POST performs a POST request with a JSON-encoded body.
func (h *Harness) POST(path string, body any) *http.Response {
	h.t.Helper()
	return h.do(http.MethodPost, path, body, nil)
}

// DoWithHeaders performs a request of the given method with additional
// request headers.
func (h *Harness) DoWithHeaders(method, path string, body any, headers map[string]string) *http.Response {
	h.t.Helper()
	return h.do(method, path, body, headers)
}

func (h *Harness) do(method, path string, body any, headers map[string]string) *http.Response {
	h.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			h.t.Fatalf("marshal request body: %v", err)
		}
		reader = strings.NewReader(string(data))
	}

	req, err := http.NewRequestWithContext(context.Background(), method, h.server.URL+path, reader)
	if err != nil {
		h.t.Fatalf("create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		h.t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return resp
}

// ParseJSON reads and unmarshals resp's body into target, then closes it.
func (h *Harness) ParseJSON(resp *http.Response, target any) {
	h.t.Helper()
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		h.t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		h.t.Fatalf("unmarshal response body: %v\nbody: %s", err, string(data))
	}
}

// AssertStatus fails the test if resp's status code doesn't equal expected.
func (h *Harness) AssertStatus(resp *http.Response, expected int) {
	h.t.Helper()
	if resp.StatusCode != expected {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		h.t.Errorf("status = %d, want %d\nbody: %s", resp.StatusCode, expected, string(body))
	}
}
