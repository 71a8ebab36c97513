package httpadapter

import (
	"net/http"

	"github.com/openapi-rpc/httpadapter/model"
	"github.com/openapi-rpc/httpadapter/observability"
)

// CreateContextFunc builds the caller-supplied, per-request context value
// passed through to a procedure's Invoke, to ResponseMetaFunc, and to
// OnErrorFunc. A nil CreateContextFunc means every request gets a nil
// context value.
type CreateContextFunc func(w http.ResponseWriter, r *http.Request) (any, error)

// ResponseMetaInput is passed to ResponseMetaFunc once per request that
// actually writes a body (every outcome except the HEAD warmup).
type ResponseMetaInput struct {
	Path  string
	Type  model.Kind
	Ctx   any
	Data  any
	Error *model.ProcedureError
}

// ResponseMetaResult lets ResponseMetaFunc override the default status and
// add response headers. A zero Status leaves the adapter's default in
// place.
type ResponseMetaResult struct {
	Status  int
	Headers http.Header
}

// ResponseMetaFunc is called exactly once per response that writes a body.
type ResponseMetaFunc func(meta ResponseMetaInput) ResponseMetaResult

// ErrorEvent is passed to OnErrorFunc exactly once per failed request,
// including routing failures where Path and Type are the zero value.
type ErrorEvent struct {
	Error *model.ProcedureError
	Type  model.Kind
	Path  string
	Input any
	Ctx   any
	Req   *http.Request
}

// OnErrorFunc observes every failed request exactly once. It never fires
// for a successful request or for the HEAD warmup.
type OnErrorFunc func(ev ErrorEvent)

// Options configures a Handler.
type Options struct {
	// CreateContext builds the per-request context. Optional.
	CreateContext CreateContextFunc

	// ResponseMeta lets the caller override status/headers. Optional.
	ResponseMeta ResponseMetaFunc

	// OnError observes failed requests. Optional.
	OnError OnErrorFunc

	// MaxBodySize caps the number of body bytes read, in bytes. Zero means
	// unlimited.
	MaxBodySize int64

	// Metrics records per-request instruments, if set. Optional — a nil
	// Metrics disables recording, not tracing (tracing always runs against
	// whatever otel.TracerProvider is globally installed, which defaults to
	// a no-op).
	Metrics *observability.Metrics
}
