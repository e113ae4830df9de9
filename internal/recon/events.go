package recon

import (
	"github.com/rs/zerolog"

	"github.com/theopenlane/rapidrecon/internal/rapidapi"
)

// EventStage is a state transition of a scan job
type EventStage string

const (
	// EventSubmitted fires once the remote job is queued
	EventSubmitted EventStage = "submitted"
	// EventPolling fires for every PENDING or RUNNING status
	EventPolling EventStage = "polling"
	// EventRetrying fires when a status poll returned a non-success HTTP status
	EventRetrying EventStage = "retrying"
	// EventCompleted fires when the job reports COMPLETED
	EventCompleted EventStage = "completed"
	// EventFailed fires when the job ends in any other terminal status
	EventFailed EventStage = "failed"
	// EventFetched fires once the results are downloaded
	EventFetched EventStage = "fetched"
)

// Event describes one transition observed by the orchestrator
type Event struct {
	Stage   EventStage
	Domain  string
	JobID   string
	Status  rapidapi.JobStatus
	Attempt int
	Err     error
}

// Observer receives events synchronously from the orchestrator goroutine
type Observer func(Event)

// LogObserver writes every event to the given logger
func LogObserver(logger zerolog.Logger) Observer {
	return func(e Event) {
		var evt *zerolog.Event

		switch e.Stage {
		case EventPolling, EventRetrying:
			evt = logger.Debug()
		case EventFailed:
			evt = logger.Warn()
		default:
			evt = logger.Info()
		}

		evt = evt.Str("stage", string(e.Stage)).Str("domain", e.Domain)

		if e.JobID != "" {
			evt = evt.Str("job_id", e.JobID)
		}

		if e.Status != "" {
			evt = evt.Str("status", string(e.Status))
		}

		if e.Attempt > 0 {
			evt = evt.Int("attempt", e.Attempt)
		}

		if e.Err != nil {
			evt = evt.Err(e.Err)
		}

		evt.Msg("scan job update")
	}
}
