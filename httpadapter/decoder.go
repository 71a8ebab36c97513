package httpadapter

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/openapi-rpc/httpadapter/model"
)

// bodyEligibleMethods are the HTTP methods the decoder reads a body for.
// Bodies on GET/DELETE are ignored per spec.md §4.3.
var bodyEligibleMethods = map[string]bool{
	http.MethodPost:  true,
	http.MethodPut:   true,
	http.MethodPatch: true,
}

// decodeResult is the outcome of decoding stages B–E: either a binding, its
// path params, and a composed candidate input, or a terminal error.
type decodeResult struct {
	binding    *Binding
	pathParams map[string]string
	input      any
	err        *model.ProcedureError
}

// decode runs stages B (route resolution) through E (input composition) of
// the request decoder.
func decode(r *http.Request, table *Table, maxBodySize int64) decodeResult {
	binding, pathParams, ok := table.Lookup(r.Method, r.URL.Path)
	if !ok {
		return decodeResult{err: model.NewNotFound("No procedure matches this method and path")}
	}

	eligible := bodyEligibleMethods[strings.ToUpper(r.Method)]

	var bodyValue any
	bodyPresent := false

	if eligible {
		rawContentType := r.Header.Get("Content-Type")
		mediaType := cleanMediaType(rawContentType)

		if !containsFold(binding.Procedure.ContentTypes(), mediaType) || mediaType != "application/json" {
			return decodeResult{err: model.NewUnsupportedMediaType(rawContentType)}
		}

		raw, tooLarge, readErr := readBody(r.Body, maxBodySize)
		if tooLarge {
			return decodeResult{err: model.NewPayloadTooLarge()}
		}
		if readErr != nil {
			return decodeResult{err: model.NewInternalServerError("Failed to read request body", readErr)}
		}

		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &bodyValue); err != nil {
				return decodeResult{err: model.NewInternalServerError("Failed to parse request body", err)}
			}
			bodyPresent = true
		}
	}

	if binding.Procedure.InputSchema != nil && binding.Procedure.InputSchema.IsVoid() {
		return decodeResult{binding: binding, pathParams: pathParams, input: nil}
	}

	input := composeInput(r.URL.Query(), pathParams, bodyValue, bodyPresent)
	return decodeResult{binding: binding, pathParams: pathParams, input: input}
}

// cleanMediaType implements spec.md §4.3's literal algorithm: the header
// value before the first ';', trimmed and lowercased.
func cleanMediaType(raw string) string {
	before, _, _ := strings.Cut(raw, ";")
	return strings.ToLower(strings.TrimSpace(before))
}

func containsFold(haystack []string, needle string) bool {
	for _, h := range haystack {
		if strings.EqualFold(h, needle) {
			return true
		}
	}
	return false
}

// readBody reads body up to maxBodySize+1 bytes (when maxBodySize > 0) so
// the caller can detect an over-limit payload without buffering more than
// one byte past the limit, grounded on internal/invoker/openapi.go's
// io.LimitReader(resp.Body, 10<<20) idiom.
func readBody(body io.ReadCloser, maxBodySize int64) (raw []byte, tooLarge bool, err error) {
	defer body.Close()

	if maxBodySize <= 0 {
		raw, err = io.ReadAll(body)
		return raw, false, err
	}

	limited := io.LimitReader(body, maxBodySize+1)
	raw, err = io.ReadAll(limited)
	if err != nil {
		return nil, false, err
	}
	if int64(len(raw)) > maxBodySize {
		return nil, true, nil
	}
	return raw, false, nil
}

// composeInput merges query, path, and body values in ascending priority
// (later overrides earlier): query, then path params, then body
// (spec.md §4.3 Stage E).
func composeInput(query map[string][]string, pathParams map[string]string, bodyValue any, bodyPresent bool) any {
	merged := make(map[string]any)

	for k, vs := range query {
		if len(vs) == 1 {
			merged[k] = vs[0]
		} else {
			merged[k] = append([]string(nil), vs...)
		}
	}

	for k, v := range pathParams {
		merged[k] = v
	}

	if !bodyPresent {
		return merged
	}

	bodyMap, ok := bodyValue.(map[string]any)
	if !ok {
		// A scalar/array JSON body has no keys to merge; it replaces the
		// candidate outright.
		return bodyValue
	}
	for k, v := range bodyMap {
		merged[k] = v
	}
	return merged
}
