package health

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	applog "github.com/janisto/devops-greeter/internal/platform/logging"
)

// Path is where liveness and readiness probes are served.
const Path = "/health"

// StatusHealthy is reported for as long as the process is serving.
const StatusHealthy = "healthy"

// Response is the payload for the health endpoint.
type Response struct {
	Status string `json:"status"`
}

// Handler is a plain HTTP handler for the health check endpoint. It reads
// nothing from the request and always answers 200.
func Handler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(Response{Status: StatusHealthy}); err != nil {
		applog.LogWarn(r.Context(), "health response write failed", zap.Error(err))
	}
}
