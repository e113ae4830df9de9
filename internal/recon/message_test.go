package recon

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/theopenlane/rapidrecon/internal/rapidapi"
)

func TestMessage(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
		{
			name:     "missing input",
			err:      ErrMissingInput,
			expected: MsgMissingInput,
		},
		{
			name:     "unauthorized at submit",
			err:      &StageError{Stage: StageSubmit, Err: rapidapi.ErrUnauthorized},
			expected: MsgUnauthorized,
		},
		{
			name:     "cancelled",
			err:      &StageError{Stage: StagePoll, JobID: "j", Err: fmt.Errorf("%w: %v", ErrCancelled, context.Canceled)},
			expected: MsgCancelled,
		},
		{
			name:     "job failed",
			err:      &JobFailedError{JobID: "j", Status: rapidapi.StatusFailed},
			expected: "scan failed or aborted, status: FAILED",
		},
		{
			name:     "submit status",
			err:      &StageError{Stage: StageSubmit, Err: &rapidapi.StatusError{StatusCode: 429, Body: "quota exceeded"}},
			expected: "server error (429): quota exceeded",
		},
		{
			name:     "submit decode",
			err:      &StageError{Stage: StageSubmit, Err: rapidapi.ErrDecodeResponse},
			expected: "connection error: unable to decode scanner API response",
		},
		{
			name:     "poll transport",
			err:      &StageError{Stage: StagePoll, JobID: "j", Err: errors.New("reset")},
			expected: "polling error: reset",
		},
		{
			name:     "poll timeout",
			err:      &StageError{Stage: StagePoll, JobID: "j", Err: fmt.Errorf("%w: %v", ErrPollTimeout, context.DeadlineExceeded)},
			expected: "gave up waiting for job j: timed out waiting for scan job: context deadline exceeded",
		},
		{
			name:     "fetch status",
			err:      &StageError{Stage: StageFetch, JobID: "j", Err: &rapidapi.StatusError{StatusCode: 404}},
			expected: "error fetching results: 404",
		},
		{
			name:     "fetch transport",
			err:      &StageError{Stage: StageFetch, JobID: "j", Err: errors.New("eof")},
			expected: "error fetching results: eof",
		},
		{
			name:     "unclassified",
			err:      errors.New("boom"),
			expected: "error: boom",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Message(tc.err))
		})
	}
}

func TestStageErrorString(t *testing.T) {
	err := &StageError{Stage: StageFetch, JobID: "abc", Err: errors.New("eof")}
	assert.Equal(t, "fetch job abc: eof", err.Error())

	err = &StageError{Stage: StageSubmit, Err: errors.New("eof")}
	assert.Equal(t, "submit: eof", err.Error())
}
