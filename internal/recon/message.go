package recon

import (
	"errors"
	"fmt"

	"github.com/theopenlane/rapidrecon/internal/rapidapi"
)

// Operator facing messages
const (
	MsgMissingInput = "please provide both an API key and a target domain"
	MsgUnauthorized = "invalid API key, verify your RapidAPI subscription"
	MsgCancelled    = "scan cancelled"
)

// Message turns an orchestrator error into the line shown to the operator
func Message(err error) string {
	if err == nil {
		return ""
	}

	var (
		stageErr  *StageError
		failedErr *JobFailedError
		statusErr *rapidapi.StatusError
	)

	switch {
	case errors.Is(err, ErrMissingInput):
		return MsgMissingInput
	case errors.Is(err, ErrInvalidDomain):
		return err.Error()
	case errors.Is(err, rapidapi.ErrUnauthorized):
		return MsgUnauthorized
	case errors.Is(err, ErrCancelled):
		return MsgCancelled
	case errors.As(err, &failedErr):
		return fmt.Sprintf("scan failed or aborted, status: %s", failedErr.Status)
	case !errors.As(err, &stageErr):
		return fmt.Sprintf("error: %v", err)
	}

	switch stageErr.Stage {
	case StageSubmit:
		if errors.As(stageErr.Err, &statusErr) {
			return fmt.Sprintf("server error (%d): %s", statusErr.StatusCode, statusErr.Body)
		}

		return fmt.Sprintf("connection error: %v", stageErr.Err)
	case StagePoll:
		if errors.Is(stageErr.Err, ErrPollTimeout) {
			return fmt.Sprintf("gave up waiting for job %s: %v", stageErr.JobID, stageErr.Err)
		}

		return fmt.Sprintf("polling error: %v", stageErr.Err)
	default:
		if errors.As(stageErr.Err, &statusErr) {
			return fmt.Sprintf("error fetching results: %d", statusErr.StatusCode)
		}

		return fmt.Sprintf("error fetching results: %v", stageErr.Err)
	}
}
