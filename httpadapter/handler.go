package httpadapter

import (
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/openapi-rpc/httpadapter/model"
	"github.com/openapi-rpc/httpadapter/observability"
)

// Handler is an http.Handler that dispatches requests to the procedures of
// a model.Router according to their compiled route table.
type Handler struct {
	table  *Table
	router model.Router
	opts   Options
}

// NewHandler builds a route table from router and returns a ready Handler.
// It fails if any procedure is mis-declared (missing output schema,
// unparsable path template, or an ambiguous route).
func NewHandler(router model.Router, opts Options) (*Handler, error) {
	table, err := BuildTable(router)
	if err != nil {
		return nil, err
	}
	return &Handler{table: table, router: router, opts: opts}, nil
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	start := time.Now()
	ctx, span := observability.StartSpan(r.Context(), "httpadapter.dispatch",
		attribute.String(string(observability.AttrMethod), r.Method),
		attribute.String(string(observability.AttrPath), r.URL.Path),
	)
	defer span.End()
	r = r.WithContext(ctx)

	dr := decode(r, h.table, h.opts.MaxBodySize)
	if dr.err != nil {
		h.fail(w, r, dr.err, "", "", "", nil, nil, start, span)
		return
	}

	binding := dr.binding
	path := binding.Procedure.PathTemplate
	kind := binding.Procedure.Kind
	procedureID := binding.Procedure.ID
	span.SetAttributes(attribute.String(string(observability.AttrProcedure), procedureID))

	var rctx any
	if h.opts.CreateContext != nil {
		var err error
		rctx, err = h.opts.CreateContext(w, r)
		if err != nil {
			h.fail(w, r, model.NewInternalServerError("Context creation failed", err), procedureID, path, kind, dr.input, rctx, start, span)
			return
		}
	}

	validatedInput := dr.input
	if binding.Procedure.InputSchema != nil {
		value, issues := binding.Procedure.InputSchema.Validate(dr.input)
		if len(issues) > 0 {
			if h.opts.Metrics != nil {
				h.opts.Metrics.RecordValidationFailure(procedureID, "input")
			}
			h.fail(w, r, model.NewBadRequest(issues), procedureID, path, kind, dr.input, rctx, start, span)
			return
		}
		validatedInput = value
	}

	output, invokeErr := h.invoke(binding, r, rctx, validatedInput)
	if invokeErr != nil {
		h.fail(w, r, model.AsProcedureError(invokeErr), procedureID, path, kind, validatedInput, rctx, start, span)
		return
	}

	finalOutput := output
	if binding.Procedure.OutputSchema != nil {
		value, issues := binding.Procedure.OutputSchema.Validate(output)
		if len(issues) > 0 {
			if h.opts.Metrics != nil {
				h.opts.Metrics.RecordValidationFailure(procedureID, "output")
			}
			h.fail(w, r, model.NewInternalServerError("Output validation failed", nil), procedureID, path, kind, validatedInput, rctx, start, span)
			return
		}
		finalOutput = value
	}

	status, headers := h.responseMeta(path, kind, rctx, finalOutput, nil)
	written := writeSuccess(w, finalOutput, headers, status)
	if h.opts.Metrics != nil {
		h.opts.Metrics.RecordRequest(binding.Procedure.ID, r.Method, written, time.Since(start))
	}
}

// invoke calls the procedure's Invoke, recovering a panic into an error so
// a single misbehaving procedure cannot take down the server — the
// dispatcher's "any error thrown is captured" clause, mapped onto Go's
// recover idiom.
func (h *Handler) invoke(b *Binding, r *http.Request, rctx, input any) (output any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic in procedure %q: %v", b.Procedure.ID, rec)
		}
	}()
	return b.Procedure.Invoke(r.Context(), rctx, input)
}

// fail runs the shared failure path: responseMeta, onError, then the error
// response write. onError fires exactly once per failed request.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, perr *model.ProcedureError, procedureID, path string, kind model.Kind, input, rctx any, start time.Time, span trace.Span) {
	status, headers := h.responseMeta(path, kind, rctx, nil, perr)

	if h.opts.OnError != nil {
		h.opts.OnError(ErrorEvent{Error: perr, Type: kind, Path: path, Input: input, Ctx: rctx, Req: r})
	}

	written := writeError(w, perr, h.router, headers, status)
	span.RecordError(perr)
	span.SetStatus(codes.Error, perr.Code)

	if h.opts.Metrics != nil {
		h.opts.Metrics.RecordError(perr.Code)
		h.opts.Metrics.RecordRequest(procedureID, r.Method, written, time.Since(start))
	}
}

// responseMeta calls the caller's ResponseMetaFunc, if any, and returns the
// status/headers override it produced.
func (h *Handler) responseMeta(path string, kind model.Kind, rctx, data any, perr *model.ProcedureError) (int, http.Header) {
	if h.opts.ResponseMeta == nil {
		return 0, nil
	}
	result := h.opts.ResponseMeta(ResponseMetaInput{Path: path, Type: kind, Ctx: rctx, Data: data, Error: perr})
	return result.Status, result.Headers
}
