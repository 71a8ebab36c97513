package observability

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/openapi-rpc/httpadapter/config"
)

func TestNewLoggerFallsBackToInfoOnBadLevel(t *testing.T) {
	logger, err := NewLogger(config.ObservabilityConfig{LogLevel: "not-a-level"})
	if err != nil {
		t.Fatalf("NewLogger returned error: %v", err)
	}
	if !logger.Core().Enabled(zap.InfoLevel) {
		t.Fatal("expected info level to be enabled by default")
	}
}

func TestLoggerFromReturnsFallbackWhenAbsent(t *testing.T) {
	fallback := zap.NewNop()
	got := LoggerFrom(context.Background(), fallback)
	if got != fallback {
		t.Fatal("expected fallback logger when none stored in context")
	}
}

func TestWithLoggerRoundTrips(t *testing.T) {
	core, _ := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	ctx := WithLogger(context.Background(), logger)
	got := LoggerFrom(ctx, zap.NewNop())
	if got != logger {
		t.Fatal("expected the stored logger back")
	}
}

func TestRequestLoggerAddsCorrelationID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	ctx := WithCorrelationID(context.Background(), "abc-123")
	enriched := RequestLogger(ctx, logger)
	enriched.Info("hello")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["correlation_id"]; got != "abc-123" {
		t.Fatalf("expected correlation_id field, got %v", got)
	}
}

func TestRequestLoggerWithoutCorrelationIDIsUnchanged(t *testing.T) {
	fallback := zap.NewNop()
	got := RequestLogger(context.Background(), fallback)
	if got != fallback {
		t.Fatal("expected no enrichment when no correlation ID is present")
	}
}
