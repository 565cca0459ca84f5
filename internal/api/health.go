package api

import (
	"net/http"
	"time"

	respond "github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/api/respond"
)

// HealthHandler serves the liveness endpoint.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

// serviceIsHealthy reports aggregate service health. Startup rebinds it to
// the aggregate checker; until then the endpoint reports unhealthy.
var serviceIsHealthy = func() bool { return false }

// BindServiceHealth injects the aggregate health probe.
func BindServiceHealth(f func() bool) { serviceIsHealthy = f }

// CheckHealth GET /health. The status code is always 200 so callers can tell
// dependency failure (body says unhealthy) from handler failure (5xx).
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	status := "unhealthy"
	if serviceIsHealthy() {
		status = "healthy"
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
