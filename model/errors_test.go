package model

import (
	"errors"
	"testing"
)

func TestProcedureErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewInternalServerError("failed", cause)

	if !errors.Is(err, cause) {
		t.Fatal("expected errors.Is to find the wrapped cause")
	}
}

func TestNewUnsupportedMediaTypeMessage(t *testing.T) {
	err := NewUnsupportedMediaType("text/plain")
	if err.Code != CodeUnsupportedMediaType {
		t.Fatalf("unexpected code: %s", err.Code)
	}
	want := `Unsupported content-type "text/plain"`
	if err.Message != want {
		t.Fatalf("expected message %q, got %q", want, err.Message)
	}
}

func TestNewPayloadTooLargeMessageEqualsCode(t *testing.T) {
	err := NewPayloadTooLarge()
	if err.Message != CodePayloadTooLarge {
		t.Fatalf("expected message to equal code, got %q", err.Message)
	}
}

func TestAsProcedureErrorPassesThroughExisting(t *testing.T) {
	original := NewNotFound("missing")
	got := AsProcedureError(original)
	if got != original {
		t.Fatal("expected AsProcedureError to return the same pointer for an existing ProcedureError")
	}
}

func TestAsProcedureErrorWrapsGenericError(t *testing.T) {
	got := AsProcedureError(errors.New("oops"))
	if got.Code != CodeInternalServerError {
		t.Fatalf("expected INTERNAL_SERVER_ERROR, got %s", got.Code)
	}
}

func TestAsProcedureErrorNilIsNil(t *testing.T) {
	if AsProcedureError(nil) != nil {
		t.Fatal("expected nil in, nil out")
	}
}
