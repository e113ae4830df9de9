package jobs

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/theopenlane/rapidrecon/internal/recon"
	"github.com/theopenlane/rapidrecon/internal/render"
)

const (
	DefaultMaxConcurrent   = 2
	DefaultJobTTL          = time.Hour
	DefaultCleanupInterval = time.Minute
)

// Manager runs scans in the background and keeps their state in memory
type Manager struct {
	runner   *recon.Runner
	notifier recon.Notifier

	mu      sync.RWMutex
	jobs    map[string]*Job
	cancels map[string]context.CancelFunc
	wg      sync.WaitGroup

	sem             chan struct{}
	jobTTL          time.Duration
	cleanupInterval time.Duration
	now             func() time.Time
}

// Option configures the Manager
type Option func(*Manager)

// WithMaxConcurrent bounds how many scans run at once
func WithMaxConcurrent(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.sem = make(chan struct{}, n)
		}
	}
}

// WithJobTTL sets how long finished jobs are kept
func WithJobTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.jobTTL = ttl
		}
	}
}

// WithCleanupInterval sets how often expired jobs are evicted
func WithCleanupInterval(interval time.Duration) Option {
	return func(m *Manager) {
		if interval > 0 {
			m.cleanupInterval = interval
		}
	}
}

// WithNotifier posts a summary of every completed job
func WithNotifier(n recon.Notifier) Option {
	return func(m *Manager) {
		m.notifier = n
	}
}

// NewManager creates a Manager executing scans with runner
func NewManager(runner *recon.Runner, opts ...Option) (*Manager, error) {
	if runner == nil {
		return nil, ErrNoRunner
	}

	m := &Manager{
		runner:          runner,
		jobs:            make(map[string]*Job),
		cancels:         make(map[string]context.CancelFunc),
		sem:             make(chan struct{}, DefaultMaxConcurrent),
		jobTTL:          DefaultJobTTL,
		cleanupInterval: DefaultCleanupInterval,
		now:             time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	log.Debug().Int("max_concurrent", cap(m.sem)).Dur("job_ttl", m.jobTTL).Msg("job manager initialized")

	return m, nil
}

// Create queues a scan; input is validated before anything is queued
func (m *Manager) Create(req recon.Request) (Job, error) {
	req = recon.NewRequest(req.APIKey, req.Domain)
	if err := req.Validate(); err != nil {
		return Job{}, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	job := &Job{
		ID:        uuid.New().String(),
		Domain:    req.Domain,
		Status:    StatusQueued,
		CreatedAt: m.now(),
	}

	m.mu.Lock()
	m.jobs[job.ID] = job
	m.cancels[job.ID] = cancel
	snapshot := *job
	m.mu.Unlock()

	m.wg.Add(1)

	go m.execute(ctx, job.ID, req)

	log.Info().Str("job_id", job.ID).Str("domain", job.Domain).Msg("scan job queued")

	return snapshot, nil
}

// Get returns a snapshot of the job
func (m *Manager) Get(id string) (Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, ok := m.jobs[id]
	if !ok {
		return Job{}, &NotFoundError{JobID: id}
	}

	return *job, nil
}

// Cancel stops a queued or running job
func (m *Manager) Cancel(id string) (Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[id]
	if !ok {
		return Job{}, &NotFoundError{JobID: id}
	}

	if job.Status.Finished() {
		return *job, &FinishedError{JobID: id, Status: job.Status}
	}

	if cancel, ok := m.cancels[id]; ok {
		cancel()
	}

	return *job, nil
}

// Stats returns the number of running and queued jobs
func (m *Manager) Stats() (running, queued int) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, job := range m.jobs {
		switch job.Status {
		case StatusRunning:
			running++
		case StatusQueued:
			queued++
		}
	}

	return running, queued
}

// Run evicts expired jobs until ctx is done
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(m.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.cleanup()
		}
	}
}

// Shutdown cancels every unfinished job and waits for them to stop or ctx to expire
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	for _, cancel := range m.cancels {
		cancel()
	}
	m.mu.Unlock()

	done := make(chan struct{})

	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Manager) execute(ctx context.Context, id string, req recon.Request) {
	defer m.wg.Done()

	select {
	case m.sem <- struct{}{}:
		defer func() { <-m.sem }()
	case <-ctx.Done():
		m.finish(id, nil, recon.ErrCancelled)

		return
	}

	m.update(id, func(job *Job) {
		now := m.now()
		job.Status = StatusRunning
		job.StartedAt = &now
	})

	out, err := m.runner.Run(ctx, req, func(e recon.Event) {
		m.update(id, func(job *Job) {
			if e.JobID != "" {
				job.RemoteJobID = e.JobID
			}

			if e.Status != "" {
				job.RemoteStatus = string(e.Status)
			}

			if e.Attempt > 0 {
				job.Polls = e.Attempt
			}
		})
	})

	m.finish(id, out, err)

	if err == nil {
		recon.Notify(context.Background(), m.notifier, out)
	}
}

func (m *Manager) finish(id string, out *recon.Outcome, err error) {
	var status Status

	m.update(id, func(job *Job) {
		now := m.now()
		job.EndedAt = &now

		switch {
		case err == nil:
			job.Status = StatusCompleted
			report := render.NewReport(out)
			job.Report = &report
		case errors.Is(err, recon.ErrCancelled):
			job.Status = StatusCancelled
			job.Error = recon.Message(err)
		default:
			job.Status = StatusFailed
			job.Error = recon.Message(err)
		}

		status = job.Status
	})

	m.mu.Lock()
	if cancel, ok := m.cancels[id]; ok {
		cancel()
		delete(m.cancels, id)
	}
	m.mu.Unlock()

	log.Info().Str("job_id", id).Str("status", string(status)).Msg("scan job finished")
}

func (m *Manager) update(id string, fn func(*Job)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if job, ok := m.jobs[id]; ok {
		fn(job)
	}
}

func (m *Manager) cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.jobTTL)

	for id, job := range m.jobs {
		if job.Status.Finished() && job.EndedAt != nil && job.EndedAt.Before(cutoff) {
			delete(m.jobs, id)
			log.Debug().Str("job_id", id).Msg("expired scan job evicted")
		}
	}
}
