package respond

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"

	applog "github.com/janisto/devops-greeter/internal/platform/logging"
)

// Recoverer converts handler panics into a 500 problem response.
// With verbose set the panic value is returned as the problem detail,
// otherwise clients only see a generic message. The stack is always logged.
// http.ErrAbortHandler is re-panicked so net/http can abort the connection.
func Recoverer(verbose bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &responseWriter{ResponseWriter: w}
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				applog.LogError(r.Context(), "panic recovered", nil,
					zap.Any("panic", rec),
					zap.ByteString("stack", debug.Stack()),
				)
				if rw.wroteHeader {
					return
				}
				detail := detailInternal
				if verbose {
					detail = fmt.Sprintf("panic: %v", rec)
				}
				WriteProblem(rw, r, http.StatusInternalServerError, detail)
			}()
			next.ServeHTTP(rw, r)
		})
	}
}

// responseWriter records whether the status line has gone out, so a panic
// after the handler started writing does not produce a second header.
type responseWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(status int) {
	rw.wroteHeader = true
	rw.ResponseWriter.WriteHeader(status)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
