package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/theopenlane/rapidrecon/internal/jobs"
	"github.com/theopenlane/rapidrecon/internal/recon"
)

// headerAPIKey lets callers supply their own RapidAPI key per request
const headerAPIKey = "X-RapidAPI-Key"

// ScanRequest is the body of a scan submission
type ScanRequest struct {
	// Domain is forwarded to the scanner as-is
	Domain string `json:"domain"`
}

// JobResponse is the API response envelope for scan jobs
type JobResponse struct {
	// Success indicates whether the request was handled
	Success bool `json:"success"`
	// Data holds the job snapshot
	Data *jobs.Job `json:"data,omitempty"`
	// Error is the normalized error payload when the request fails
	Error *Error `json:"error,omitempty"`
}

// handleCreateScan queues a scan and returns the new job
func (h *Handler) handleCreateScan(w http.ResponseWriter, r *http.Request) {
	if h.jobs == nil {
		respondJobError(w, http.StatusServiceUnavailable, errCodeUnavailable, ErrJobsNotConfigured.Error())
		return
	}

	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}

	var req ScanRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondJobError(w, http.StatusBadRequest, errCodeInvalidRequest, ErrInvalidRequestBody.Error())
		return
	}

	apiKey := strings.TrimSpace(r.Header.Get(headerAPIKey))
	if apiKey == "" {
		apiKey = h.apiKey
	}

	job, err := h.jobs.Create(recon.NewRequest(apiKey, req.Domain))

	switch {
	case errors.Is(err, recon.ErrMissingInput):
		respondJobError(w, http.StatusBadRequest, errCodeValidation, recon.Message(err))
		return
	case err != nil:
		log.Error().Err(err).Str("domain", req.Domain).Msg("failed to queue scan")
		respondJobError(w, http.StatusInternalServerError, errCodeInternal, ErrJobCreateFailed.Error())

		return
	}

	writeJSON(w, http.StatusAccepted, JobResponse{Success: true, Data: &job})
}

// handleGetScan returns the current state of a job
func (h *Handler) handleGetScan(w http.ResponseWriter, r *http.Request) {
	if h.jobs == nil {
		respondJobError(w, http.StatusServiceUnavailable, errCodeUnavailable, ErrJobsNotConfigured.Error())
		return
	}

	job, err := h.jobs.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondLookupError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, JobResponse{Success: true, Data: &job})
}

// handleCancelScan stops a queued or running job
func (h *Handler) handleCancelScan(w http.ResponseWriter, r *http.Request) {
	if h.jobs == nil {
		respondJobError(w, http.StatusServiceUnavailable, errCodeUnavailable, ErrJobsNotConfigured.Error())
		return
	}

	job, err := h.jobs.Cancel(chi.URLParam(r, "id"))
	if err != nil {
		respondLookupError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, JobResponse{Success: true, Data: &job})
}

func respondLookupError(w http.ResponseWriter, err error) {
	var (
		notFound *jobs.NotFoundError
		finished *jobs.FinishedError
	)

	switch {
	case errors.As(err, &notFound):
		respondJobError(w, http.StatusNotFound, errCodeNotFound, err.Error())
	case errors.As(err, &finished):
		respondJobError(w, http.StatusConflict, errCodeConflict, err.Error())
	default:
		respondJobError(w, http.StatusInternalServerError, errCodeInternal, err.Error())
	}
}
