package model

import "fmt"

// Standard adapter error codes. These are the codes the adapter itself can
// raise; a procedure may also raise any other code it defines, which the
// error mapper resolves through the external router's standard code→status
// table (see statusForError in the httpadapter package).
const (
	CodeNotFound            = "NOT_FOUND"
	CodeUnsupportedMediaType = "UNSUPPORTED_MEDIA_TYPE"
	CodeBadRequest           = "BAD_REQUEST"
	CodePayloadTooLarge      = "PAYLOAD_TOO_LARGE"
	CodeInternalServerError  = "INTERNAL_SERVER_ERROR"
	CodeClientClosedRequest  = "CLIENT_CLOSED_REQUEST"
)

// Issue describes a single schema violation, mirroring the shape a
// structured validator reports: a machine code, the path into the input
// that failed, a human message, and whatever extra fields the validator
// attaches (e.g. "expected"/"received" for a type mismatch).
type Issue struct {
	Code     string         `json:"code"`
	Path     []string       `json:"path"`
	Message  string         `json:"message"`
	Expected string         `json:"expected,omitempty"`
	Received string         `json:"received,omitempty"`
	Extra    map[string]any `json:"-"`
}

// ProcedureError is the adapter's canonical error record (spec.md §3,
// "Error record"). It implements the error interface so it can be returned
// or wrapped like any other Go error, and it is what onError and
// responseMeta receive as the failure.
type ProcedureError struct {
	Code    string
	Message string
	Issues  []Issue
	Cause   error
}

// Error implements the error interface.
func (e *ProcedureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/errors.As.
func (e *ProcedureError) Unwrap() error {
	return e.Cause
}

// NewNotFound returns a NOT_FOUND ProcedureError.
func NewNotFound(msg string) *ProcedureError {
	return &ProcedureError{Code: CodeNotFound, Message: msg}
}

// NewUnsupportedMediaType returns an UNSUPPORTED_MEDIA_TYPE ProcedureError
// with the message format the spec requires: `Unsupported content-type "<raw>"`.
func NewUnsupportedMediaType(rawContentType string) *ProcedureError {
	return &ProcedureError{
		Code:    CodeUnsupportedMediaType,
		Message: fmt.Sprintf("Unsupported content-type %q", rawContentType),
	}
}

// NewBadRequest returns a BAD_REQUEST ProcedureError carrying schema issues.
func NewBadRequest(issues []Issue) *ProcedureError {
	return &ProcedureError{
		Code:    CodeBadRequest,
		Message: "Input validation failed",
		Issues:  issues,
	}
}

// NewPayloadTooLarge returns a PAYLOAD_TOO_LARGE ProcedureError. Per the
// spec, its message equals the code string.
func NewPayloadTooLarge() *ProcedureError {
	return &ProcedureError{Code: CodePayloadTooLarge, Message: CodePayloadTooLarge}
}

// NewInternalServerError returns an INTERNAL_SERVER_ERROR ProcedureError
// wrapping cause, if any.
func NewInternalServerError(msg string, cause error) *ProcedureError {
	return &ProcedureError{Code: CodeInternalServerError, Message: msg, Cause: cause}
}

// AsProcedureError unwraps err into a *ProcedureError if possible, else
// wraps it as a generic INTERNAL_SERVER_ERROR — the fallback the dispatcher
// applies to anything a procedure's Invoke panics or returns that isn't
// already a typed ProcedureError.
func AsProcedureError(err error) *ProcedureError {
	if err == nil {
		return nil
	}
	if pe, ok := err.(*ProcedureError); ok {
		return pe
	}
	return NewInternalServerError(err.Error(), err)
}
