package routes

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	"github.com/janisto/devops-greeter/internal/http/greeting"
	"github.com/janisto/devops-greeter/internal/http/health"
)

// Register wires the greeting operation into api and the health probe directly
// into router. The probe bypasses huma so its body stays exactly {"status":"healthy"}.
func Register(router chi.Router, api huma.API) {
	greeting.Register(api)
	router.Get(health.Path, health.Handler)
}
