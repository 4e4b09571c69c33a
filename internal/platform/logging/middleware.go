package logging

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/janisto/devops-greeter/internal/platform/traceparent"
)

// RequestLogger stores a logger in the request context tagged with the
// request ID and, when a project is known, the Cloud Trace span.
func RequestLogger() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := Logger()
			if fields := requestFields(r); len(fields) > 0 {
				logger = logger.With(fields...)
			}
			next.ServeHTTP(w, r.WithContext(withLogger(r.Context(), logger)))
		})
	}
}

func requestFields(r *http.Request) []zap.Field {
	var fields []zap.Field
	if p, ok := traceparent.FromRequest(r); ok {
		fields = append(fields, traceFields(p, resolveProjectID())...)
	}
	if id := chimiddleware.GetReqID(r.Context()); id != "" {
		fields = append(fields, zap.String("requestId", id))
	}
	return fields
}

// AccessLogger writes one line per request once the handler returns.
func AccessLogger() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			LoggerFromContext(r.Context()).Info("request completed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
