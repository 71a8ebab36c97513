package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/openapi-rpc/httpadapter/config"
)

func TestInitTracingNoneIsNoop(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), config.TracingConfig{Exporter: "none"}, "svc", "v0")
	if err != nil {
		t.Fatalf("InitTracing returned error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown returned error: %v", err)
	}
}

func TestNewSamplerClampsOutOfRangeRates(t *testing.T) {
	s := newSampler(config.TracingConfig{SamplingRate: 4.0})
	if s == nil {
		t.Fatal("expected non-nil sampler")
	}
	if desc := s.Description(); !strings.Contains(desc, "root:AlwaysOnSampler") {
		t.Fatalf("expected rate 4.0 to clamp to an always-on root sampler, got %q", desc)
	}
}

func TestNewExporterRejectsUnknownExporter(t *testing.T) {
	if _, err := newExporter(context.Background(), config.TracingConfig{Exporter: "carrier-pigeon"}); err == nil {
		t.Fatal("expected error for unsupported exporter")
	}
}

func TestTraceIDFromContextEmptyWithoutSpan(t *testing.T) {
	if got := TraceIDFromContext(context.Background()); got != "" {
		t.Fatalf("expected empty trace id, got %q", got)
	}
}

func TestTracingMiddlewareSetsErrorStatusOnServerError(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := trace.NewTracerProvider(trace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	handler := TracingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 exported span, got %d", len(spans))
	}
	if spans[0].Status.Code != codes.Error {
		t.Fatalf("span status = %v, want %v", spans[0].Status.Code, codes.Error)
	}
}
