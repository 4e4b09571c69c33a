// Package respond writes RFC 9457 problem responses for requests that never
// reach a route handler: unknown routes and recovered panics.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/negotiation"
	"github.com/fxamacker/cbor/v2"
	"go.uber.org/zap"

	applog "github.com/janisto/devops-greeter/internal/platform/logging"
)

const (
	contentTypeJSON        = "application/json"
	contentTypeCBOR        = "application/cbor"
	contentTypeProblemJSON = "application/problem+json"
	contentTypeProblemCBOR = "application/problem+cbor"

	detailNotFound = "resource not found"
	detailInternal = "internal server error"
)

// NotFoundHandler answers unknown paths with 404.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteProblem(w, r, http.StatusNotFound, detailNotFound)
	}
}

// MethodNotAllowedHandler answers a known path requested with an unrouted
// method. Only GET (and HEAD) are served, so this is reported as 404 too.
func MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteProblem(w, r, http.StatusNotFound, detailNotFound)
	}
}

// WriteProblem encodes a huma.ErrorModel as problem+cbor when the client
// prefers CBOR and problem+json otherwise.
func WriteProblem(w http.ResponseWriter, r *http.Request, status int, detail string) {
	problem := &huma.ErrorModel{
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	}

	contentType := contentTypeProblemJSON
	var (
		body []byte
		err  error
	)
	if prefersCBOR(r) {
		contentType = contentTypeProblemCBOR
		body, err = cbor.Marshal(problem)
	} else {
		body, err = json.Marshal(problem)
	}
	if err != nil {
		applog.LogError(r.Context(), "problem encode failed", err, zap.Int("status", status))
		http.Error(w, http.StatusText(status), status)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		applog.LogWarn(r.Context(), "problem write failed", zap.Error(err))
	}
}

func prefersCBOR(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	if accept == "" {
		return false
	}
	return negotiation.SelectQValueFast(accept, []string{contentTypeJSON, contentTypeCBOR}) == contentTypeCBOR
}
