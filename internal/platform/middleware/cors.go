package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/cors"
)

var corsMethods = []string{http.MethodGet, http.MethodHead}

// CORS allows any origin to read the greeting and health endpoints.
// Preflights for GET and HEAD are answered here with 200. Preflights for any
// other method are passed on, so the router reports them as 404 like every
// other unrouted method.
func CORS() func(http.Handler) http.Handler {
	handler := cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: corsMethods,
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"X-Request-ID",
			"traceparent",
		},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	})
	return func(next http.Handler) http.Handler {
		withCORS := handler(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPreflight(r) && !slices.Contains(corsMethods, strings.ToUpper(r.Header.Get("Access-Control-Request-Method"))) {
				next.ServeHTTP(w, r)
				return
			}
			withCORS.ServeHTTP(w, r)
		})
	}
}

func isPreflight(r *http.Request) bool {
	return r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""
}
