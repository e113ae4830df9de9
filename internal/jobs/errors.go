package jobs

import (
	"errors"
	"fmt"
)

// ErrNoRunner is returned when the manager is built without an orchestrator
var ErrNoRunner = errors.New("scan runner is required")

// NotFoundError is returned when a job ID doesn't exist
type NotFoundError struct {
	JobID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("job not found: %s", e.JobID)
}

// FinishedError is returned when a job can no longer be cancelled
type FinishedError struct {
	JobID  string
	Status Status
}

func (e *FinishedError) Error() string {
	return fmt.Sprintf("job %s already %s", e.JobID, e.Status)
}
