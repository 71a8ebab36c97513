package httpadapter

import (
	"net/http"

	"github.com/openapi-rpc/httpadapter/model"
)

// standardStatus maps the adapter's own error codes to HTTP status,
// grounded on the code-to-status table idiom of
// internal/transport/response.go's statusForCode, generalized here to the
// adapter's error taxonomy (spec.md §4.5).
var standardStatus = map[string]int{
	model.CodeNotFound:             http.StatusNotFound,
	model.CodeUnsupportedMediaType: http.StatusUnsupportedMediaType,
	model.CodeBadRequest:           http.StatusBadRequest,
	model.CodePayloadTooLarge:      http.StatusRequestEntityTooLarge,
	model.CodeInternalServerError:  http.StatusInternalServerError,
	model.CodeClientClosedRequest:  499,
}

// statusForError resolves the HTTP status for err's code: the adapter's
// own standard table first, then the router's own code→status table (for
// codes a procedure raises itself), falling back to 500 for an unknown
// code — the adapter never lets an unrecognized code escape as a 200 or a
// missing status.
func statusForError(err *model.ProcedureError, router model.Router) int {
	if status, ok := standardStatus[err.Code]; ok {
		return status
	}
	if router != nil {
		if f := router.ErrorFormatter(); f != nil {
			if cs, ok := f.(codeStatusTable); ok {
				if status, ok := cs.StatusFor(err.Code); ok {
					return status
				}
			}
		}
	}
	return http.StatusInternalServerError
}

// codeStatusTable is an optional capability a model.ErrorFormatter may
// additionally implement to supply HTTP statuses for procedure-raised
// codes the adapter doesn't itself know about (spec.md §4.5, "per
// standard code→status table of the external router").
type codeStatusTable interface {
	StatusFor(code string) (int, bool)
}

// buildErrorBody assembles the JSON-serializable error body, merging the
// router's ErrorFormatter output (if any) over the adapter's own fields —
// except code/message/issues, which stay adapter-authoritative per
// spec.md §4.5/§9.
func buildErrorBody(err *model.ProcedureError, router model.Router) map[string]any {
	body := map[string]any{
		"message": err.Message,
		"code":    err.Code,
	}
	if len(err.Issues) > 0 {
		body["issues"] = err.Issues
	}

	if router != nil {
		if f := router.ErrorFormatter(); f != nil {
			for k, v := range f.Format(err) {
				if k == "code" || k == "message" || k == "issues" {
					continue
				}
				body[k] = v
			}
		}
	}

	return body
}
