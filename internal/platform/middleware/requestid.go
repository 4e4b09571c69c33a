package middleware

import (
	"context"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/janisto/devops-greeter/internal/platform/traceparent"
)

// maxRequestIDLength bounds inbound IDs; a UUID is 36 and a trace ID 32.
const maxRequestIDLength = 64

// RequestID assigns every request an ID, stores it under chi's RequestIDKey
// and echoes it in X-Request-Id. Sources in order: a well-formed inbound
// X-Request-Id, the traceparent trace ID, a new UUIDv4.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := requestIDFor(r)
			w.Header().Set(chimiddleware.RequestIDHeader, id)
			ctx := context.WithValue(r.Context(), chimiddleware.RequestIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func requestIDFor(r *http.Request) string {
	if id := r.Header.Get(chimiddleware.RequestIDHeader); isRequestIDToken(id) {
		return id
	}
	if p, ok := traceparent.FromRequest(r); ok {
		return p.TraceID
	}
	return uuid.NewString()
}

// isRequestIDToken accepts letters, digits and . _ : - only, so the value is
// safe to log and to echo in a response header.
func isRequestIDToken(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := range len(id) {
		switch c := id[i]; {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '.', c == '_', c == ':', c == '-':
		default:
			return false
		}
	}
	return true
}
