package jobs

import (
	"time"

	"github.com/theopenlane/rapidrecon/internal/render"
)

// Status represents the current state of a local job
type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Finished reports whether the job reached a final state
func (s Status) Finished() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// Job is one scan run by the local API, with its full lifecycle state
type Job struct {
	ID           string         `json:"id"`
	Domain       string         `json:"domain"`
	Status       Status         `json:"status"`
	RemoteJobID  string         `json:"remoteJobId,omitempty"`
	RemoteStatus string         `json:"remoteStatus,omitempty"`
	Polls        int            `json:"polls,omitempty"`
	Report       *render.Report `json:"report,omitempty"`
	Error        string         `json:"error,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	StartedAt    *time.Time     `json:"startedAt,omitempty"`
	EndedAt      *time.Time     `json:"endedAt,omitempty"`
}
