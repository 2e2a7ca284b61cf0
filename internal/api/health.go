package api

import (
	"net/http"
	"time"

	"github.com/moodgarden/moodgarden/internal/api/respond"
)

// HealthHandler reports service health.
type HealthHandler struct {
	isHealthy func() bool
}

// NewHealthHandler binds the handler to a health probe function.
func NewHealthHandler(isHealthy func() bool) *HealthHandler {
	return &HealthHandler{isHealthy: isHealthy}
}

// CheckHealth handles GET /health. Always 200; the body reports the state.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	status := "unhealthy"
	if h.isHealthy == nil || h.isHealthy() {
		status = "healthy"
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
