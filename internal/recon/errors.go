package recon

import (
	"errors"
	"fmt"

	"github.com/theopenlane/rapidrecon/internal/rapidapi"
)

var (
	// ErrMissingInput is returned when the API key or the domain is empty
	ErrMissingInput = errors.New("api key and domain are required")
	// ErrInvalidDomain is returned by strict mode when the domain fails local validation
	ErrInvalidDomain = errors.New("invalid domain")
	// ErrPollTimeout is returned when a job does not reach a terminal state in time
	ErrPollTimeout = errors.New("timed out waiting for scan job")
	// ErrCancelled is returned when the caller cancels the scan
	ErrCancelled = errors.New("scan cancelled")
	// ErrNoClient is returned when a Runner is built without a client constructor
	ErrNoClient = errors.New("scanner client constructor is required")
)

// Stage names the orchestrator step an error happened in
type Stage string

const (
	// StageSubmit is the scan submission request
	StageSubmit Stage = "submit"
	// StagePoll is the status polling loop
	StagePoll Stage = "poll"
	// StageFetch is the final result retrieval
	StageFetch Stage = "fetch"
)

// StageError wraps a failure with the step and job it happened in
type StageError struct {
	Stage Stage
	JobID string
	Err   error
}

// Error implements the error interface
func (e *StageError) Error() string {
	if e.JobID == "" {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}

	return fmt.Sprintf("%s job %s: %v", e.Stage, e.JobID, e.Err)
}

// Unwrap exposes the underlying error
func (e *StageError) Unwrap() error {
	return e.Err
}

// JobFailedError is returned when the remote job ends in a non-completed terminal status
type JobFailedError struct {
	JobID  string
	Status rapidapi.JobStatus
}

// Error implements the error interface
func (e *JobFailedError) Error() string {
	return fmt.Sprintf("scan job %s ended with status %q", e.JobID, e.Status)
}
