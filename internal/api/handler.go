// Package api serves the local scan API: scans are queued as background jobs
// and polled by ID.
package api

import (
	"net/http"
	"time"

	"github.com/theopenlane/rapidrecon/internal/jobs"
	"github.com/theopenlane/rapidrecon/internal/recon"
)

const serviceName = "rapidrecon"

// JobManager runs scans in the background
type JobManager interface {
	Create(req recon.Request) (jobs.Job, error)
	Get(id string) (jobs.Job, error)
	Cancel(id string) (jobs.Job, error)
}

// Handler manages API endpoints
type Handler struct {
	jobs        JobManager
	apiKey      string
	maxBodySize int64
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

// handleHealth returns service health status
func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Service:   serviceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
