package recon

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/theopenlane/rapidrecon/internal/domain"
	"github.com/theopenlane/rapidrecon/internal/rapidapi"
)

const (
	// DefaultPollInterval is the fixed delay between status polls
	DefaultPollInterval = 5 * time.Second
	// DefaultPollTimeout bounds the whole polling phase
	DefaultPollTimeout = 10 * time.Minute
)

// API is the remote scanner surface the orchestrator drives
type API interface {
	Submit(ctx context.Context, domain string) (rapidapi.JobHandle, error)
	Status(ctx context.Context, jobID string) (rapidapi.JobStatus, error)
	Result(ctx context.Context, jobID string) (*rapidapi.ScanResult, error)
}

// ClientFunc builds an API client for the operator supplied key
type ClientFunc func(apiKey string) (API, error)

// Runner executes the submit, poll and fetch sequence for one scan at a time
type Runner struct {
	newClient    ClientFunc
	pollInterval time.Duration
	pollTimeout  time.Duration
	strict       bool
	observers    []Observer
	sleep        func(ctx context.Context, d time.Duration) error
}

// Option configures the Runner
type Option func(*Runner)

// WithPollInterval sets the fixed delay between status polls
func WithPollInterval(interval time.Duration) Option {
	return func(r *Runner) {
		if interval > 0 {
			r.pollInterval = interval
		}
	}
}

// WithPollTimeout bounds the polling phase, zero disables the bound
func WithPollTimeout(timeout time.Duration) Option {
	return func(r *Runner) {
		if timeout >= 0 {
			r.pollTimeout = timeout
		}
	}
}

// WithStrictDomain enables local domain syntax validation before any request
func WithStrictDomain(strict bool) Option {
	return func(r *Runner) {
		r.strict = strict
	}
}

// WithObserver registers an observer that receives every event of every run
func WithObserver(o Observer) Option {
	return func(r *Runner) {
		if o != nil {
			r.observers = append(r.observers, o)
		}
	}
}

// NewRunner creates a Runner that builds clients with newClient
func NewRunner(newClient ClientFunc, opts ...Option) (*Runner, error) {
	if newClient == nil {
		return nil, ErrNoClient
	}

	r := &Runner{
		newClient:    newClient,
		pollInterval: DefaultPollInterval,
		pollTimeout:  DefaultPollTimeout,
		sleep:        sleepContext,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// RapidAPIClients returns a ClientFunc building rapidapi clients with the shared options
func RapidAPIClients(opts ...rapidapi.Option) ClientFunc {
	return func(apiKey string) (API, error) {
		client, err := rapidapi.New(apiKey, opts...)
		if err != nil {
			return nil, err
		}

		return client, nil
	}
}

// Run validates the request, submits the scan, polls until a terminal status and fetches the result
func (r *Runner) Run(ctx context.Context, req Request, observers ...Observer) (*Outcome, error) {
	req = NewRequest(req.APIKey, req.Domain)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if r.strict {
		if _, err := domain.Parse(req.Domain); err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidDomain, req.Domain, err)
		}
	}

	client, err := r.newClient(req.APIKey)
	if err != nil {
		return nil, &StageError{Stage: StageSubmit, Err: err}
	}

	emit := r.emitter(req.Domain, observers)

	handle, err := client.Submit(ctx, req.Domain)
	if err != nil {
		return nil, stageFailure(ctx, ctx, StageSubmit, "", err)
	}

	emit(Event{Stage: EventSubmitted, JobID: handle.JobID})

	status, err := r.poll(ctx, client, handle.JobID, emit)
	if err != nil {
		return nil, err
	}

	result, err := client.Result(ctx, handle.JobID)
	if err != nil {
		return nil, stageFailure(ctx, ctx, StageFetch, handle.JobID, err)
	}

	emit(Event{Stage: EventFetched, JobID: handle.JobID, Status: status})

	return &Outcome{
		Domain: req.Domain,
		JobID:  handle.JobID,
		Status: status,
		Result: result,
	}, nil
}

// poll queries the job status until COMPLETED or another terminal status
func (r *Runner) poll(ctx context.Context, client API, jobID string, emit Observer) (rapidapi.JobStatus, error) {
	pollCtx := ctx

	if r.pollTimeout > 0 {
		var cancel context.CancelFunc

		pollCtx, cancel = context.WithTimeout(ctx, r.pollTimeout)
		defer cancel()
	}

	for attempt := 1; ; attempt++ {
		status, err := client.Status(pollCtx, jobID)

		switch {
		case err != nil && errors.Is(err, rapidapi.ErrUnexpectedStatus):
			// non-success HTTP status is transient
			emit(Event{Stage: EventRetrying, JobID: jobID, Attempt: attempt, Err: err})
		case err != nil:
			return "", stageFailure(ctx, pollCtx, StagePoll, jobID, err)
		case status.Completed():
			emit(Event{Stage: EventCompleted, JobID: jobID, Status: status, Attempt: attempt})

			return status, nil
		case status.InProgress():
			emit(Event{Stage: EventPolling, JobID: jobID, Status: status, Attempt: attempt})
		default:
			emit(Event{Stage: EventFailed, JobID: jobID, Status: status, Attempt: attempt})

			return status, &JobFailedError{JobID: jobID, Status: status}
		}

		if err := r.sleep(pollCtx, r.pollInterval); err != nil {
			return "", stageFailure(ctx, pollCtx, StagePoll, jobID, err)
		}
	}
}

// emitter fans an event out to the runner and per-run observers
func (r *Runner) emitter(domain string, extra []Observer) Observer {
	observers := append(append([]Observer{}, r.observers...), extra...)

	return func(e Event) {
		e.Domain = domain

		for _, o := range observers {
			if o != nil {
				o(e)
			}
		}
	}
}

// stageFailure classifies err, preferring cancellation and timeout over the transport error they caused
func stageFailure(parent, stageCtx context.Context, stage Stage, jobID string, err error) error {
	switch {
	case parent.Err() != nil:
		err = fmt.Errorf("%w: %v", ErrCancelled, parent.Err())
	case errors.Is(stageCtx.Err(), context.DeadlineExceeded):
		err = fmt.Errorf("%w: %v", ErrPollTimeout, stageCtx.Err())
	}

	return &StageError{Stage: stage, JobID: jobID, Err: err}
}

// sleepContext waits for d or until ctx is done
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
