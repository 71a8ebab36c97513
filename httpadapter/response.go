package httpadapter

import (
	"encoding/json"
	"net/http"

	"github.com/openapi-rpc/httpadapter/model"
)

// writeJSON writes body as a JSON response with the given status,
// grounded on internal/transport/response.go's WriteJSON.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if status == http.StatusNoContent || body == nil {
		w.WriteHeader(status)
		return
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError writes err as the adapter's canonical error body and returns
// the status code it wrote.
func writeError(w http.ResponseWriter, err *model.ProcedureError, router model.Router, extraHeaders http.Header, overrideStatus int) int {
	status := statusForError(err, router)
	if overrideStatus != 0 {
		status = overrideStatus
	}
	for k, vs := range extraHeaders {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	writeJSON(w, status, buildErrorBody(err, router))
	return status
}

// writeSuccess writes a successful procedure result and returns the status
// code it wrote. A void output (data == nil) yields an empty body.
func writeSuccess(w http.ResponseWriter, data any, extraHeaders http.Header, status int) int {
	if status == 0 {
		status = http.StatusOK
	}
	for k, vs := range extraHeaders {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	if data == nil {
		w.WriteHeader(status)
		return status
	}
	writeJSON(w, status, data)
	return status
}
