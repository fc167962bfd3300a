package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gameforge/ui-api/internal/core"
	"github.com/gameforge/ui-api/internal/domain/model"
	"github.com/gameforge/ui-api/internal/domain/tracking"
	"github.com/gameforge/ui-api/internal/observability/metrics"
)

// TrackingConfig bounds the polling parameters a caller may request.
type TrackingConfig struct {
	DefaultCadence time.Duration
	DefaultTimeout time.Duration
	MinCadence     time.Duration
	MaxTimeout     time.Duration
}

// DefaultTrackingConfig returns the tracking defaults used when the caller
// does not override cadence or timeout.
func DefaultTrackingConfig() TrackingConfig {
	return TrackingConfig{
		DefaultCadence: 2 * time.Second,
		DefaultTimeout: 10 * time.Minute,
		MinCadence:     250 * time.Millisecond,
		MaxTimeout:     time.Hour,
	}
}

func (c *TrackingConfig) sanitize() {
	def := DefaultTrackingConfig()
	if c.DefaultCadence <= 0 {
		c.DefaultCadence = def.DefaultCadence
	}
	if c.DefaultTimeout <= 0 {
		c.DefaultTimeout = def.DefaultTimeout
	}
	if c.MinCadence <= 0 {
		c.MinCadence = def.MinCadence
	}
	if c.MaxTimeout <= 0 {
		c.MaxTimeout = def.MaxTimeout
	}
}

// TrackingServiceOptions groups dependencies for TrackingService.
type TrackingServiceOptions struct {
	API    core.GenerationAPI
	Config TrackingConfig
	Logger *slog.Logger
}

// TrackingService owns the lifecycle of generation jobs submitted through
// this service: it requests generation on the platform API, follows each job
// with a tracker goroutine, fans progress snapshots out to subscribers, and
// exposes cancellation handles.
type TrackingService struct {
	api     core.GenerationAPI
	tracker *tracking.Tracker
	cfg     TrackingConfig
	logger  *slog.Logger

	mu      sync.RWMutex
	tracked map[string]*trackedJob
}

// trackedJob is the in-memory state for one actively tracked job. Job
// identity is not persisted across restarts; a restart simply forgets the
// handle while the remote job continues.
type trackedJob struct {
	cancel context.CancelFunc
	done   chan struct{}

	mu       sync.Mutex
	snapshot *model.GenerationJob
	subs     map[int]chan *model.GenerationJob
	nextSub  int

	// Written once before done is closed.
	result *model.GenerationJob
	err    error
}

// ErrNotTracked is returned when an operation references a job this instance
// is not currently tracking.
var ErrNotTracked = errors.New("job is not tracked by this instance")

// NewTrackingService constructs a new TrackingService.
func NewTrackingService(opts TrackingServiceOptions) (*TrackingService, error) {
	if opts.API == nil {
		return nil, errors.New("GenerationAPI is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	opts.Config.sanitize()

	tracker, err := tracking.NewTracker(tracking.TrackerOptions{
		Lookup: opts.API,
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build tracker: %w", err)
	}

	return &TrackingService{
		api:     opts.API,
		tracker: tracker,
		cfg:     opts.Config,
		logger:  logger,
		tracked: make(map[string]*trackedJob),
	}, nil
}

// SubmitInput carries a generation request plus optional polling overrides.
type SubmitInput struct {
	Request *model.GenerationRequest
	Cadence time.Duration
	Timeout time.Duration
}

// Submit requests a new generation job on the platform and starts tracking
// it. The returned snapshot is the job as accepted by the platform; progress
// arrives through Subscribe and the final outcome through Await.
func (s *TrackingService) Submit(ctx context.Context, in SubmitInput) (*model.GenerationJob, error) {
	if in.Request == nil {
		return nil, errors.New("generation request is required")
	}
	if err := in.Request.Validate(); err != nil {
		return nil, fmt.Errorf("validate request: %w", err)
	}

	job, err := s.api.RequestGeneration(ctx, in.Request)
	if err != nil {
		return nil, fmt.Errorf("request generation: %w", err)
	}

	if startErr := s.startTracking(job, in.Cadence, in.Timeout); startErr != nil {
		return nil, startErr
	}

	s.logger.InfoContext(ctx, "generation job submitted",
		"job_id", job.ID,
		"asset_type", in.Request.AssetType)

	return job, nil
}

// Follow starts tracking a job that was submitted elsewhere. It fetches an
// initial snapshot so the caller learns immediately whether the job exists.
func (s *TrackingService) Follow(ctx context.Context, jobID string, cadence, timeout time.Duration) (*model.GenerationJob, error) {
	if jobID == "" {
		return nil, errors.New("job id is required")
	}

	job, err := s.api.JobStatus(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("job status: %w", err)
	}
	if job.Terminal() {
		return job, nil
	}

	if startErr := s.startTracking(job, cadence, timeout); startErr != nil {
		return nil, startErr
	}
	return job, nil
}

func (s *TrackingService) startTracking(job *model.GenerationJob, cadence, timeout time.Duration) error {
	params := s.clampParams(job.ID, cadence, timeout)

	tj := &trackedJob{
		cancel:   nil,
		done:     make(chan struct{}),
		snapshot: job,
		subs:     make(map[int]chan *model.GenerationJob),
	}

	s.mu.Lock()
	if _, exists := s.tracked[job.ID]; exists {
		s.mu.Unlock()
		return fmt.Errorf("job %s is already tracked", job.ID)
	}
	trackCtx, cancel := context.WithCancel(context.Background())
	tj.cancel = cancel
	s.tracked[job.ID] = tj
	s.mu.Unlock()

	metrics.TrackingStarted()
	go s.runTrack(trackCtx, params, tj)

	return nil
}

func (s *TrackingService) clampParams(jobID string, cadence, timeout time.Duration) tracking.TrackParams {
	if cadence <= 0 {
		cadence = s.cfg.DefaultCadence
	}
	if cadence < s.cfg.MinCadence {
		cadence = s.cfg.MinCadence
	}
	if timeout <= 0 {
		timeout = s.cfg.DefaultTimeout
	}
	if timeout > s.cfg.MaxTimeout {
		timeout = s.cfg.MaxTimeout
	}
	return tracking.TrackParams{JobID: jobID, Cadence: cadence, Timeout: timeout}
}

func (s *TrackingService) runTrack(ctx context.Context, params tracking.TrackParams, tj *trackedJob) {
	start := time.Now()
	final, err := s.tracker.Track(ctx, params, tj)

	tj.mu.Lock()
	tj.result = final
	tj.err = err
	for _, ch := range tj.subs {
		close(ch)
	}
	tj.subs = nil
	tj.mu.Unlock()
	close(tj.done)

	outcome := trackOutcome(err)
	metrics.TrackingFinished(outcome, err, time.Since(start))

	s.mu.Lock()
	delete(s.tracked, params.JobID)
	s.mu.Unlock()

	if err != nil && outcome == metrics.OutcomeError {
		s.logger.ErrorContext(ctx, "job tracking aborted",
			"job_id", params.JobID,
			"error", err)
		return
	}
	s.logger.InfoContext(ctx, "job tracking finished",
		"job_id", params.JobID,
		"outcome", outcome,
		"duration", time.Since(start))
}

func trackOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case tracking.IsTimeout(err):
		return metrics.OutcomeTimeout
	case errors.Is(err, context.Canceled):
		return metrics.OutcomeCancelled
	default:
		var failed *tracking.JobFailedError
		if errors.As(err, &failed) {
			return metrics.OutcomeFailed
		}
		var cancelled *tracking.JobCancelledError
		if errors.As(err, &cancelled) {
			return metrics.OutcomeCancelled
		}
		return metrics.OutcomeError
	}
}

// Observe implements tracking.ProgressSink for the tracked job: it updates
// the latest snapshot and fans it out to subscribers. Slow subscribers drop
// intermediate snapshots rather than stalling the polling loop.
func (tj *trackedJob) Observe(job *model.GenerationJob) {
	tj.mu.Lock()
	defer tj.mu.Unlock()
	tj.snapshot = job
	for _, ch := range tj.subs {
		select {
		case ch <- job:
		default:
		}
	}
}

// Snapshot returns the latest known state of a job. Tracked jobs answer from
// memory; anything else falls through to the platform API.
func (s *TrackingService) Snapshot(ctx context.Context, jobID string) (*model.GenerationJob, error) {
	if jobID == "" {
		return nil, errors.New("job id is required")
	}

	s.mu.RLock()
	tj, ok := s.tracked[jobID]
	s.mu.RUnlock()
	if ok {
		tj.mu.Lock()
		snap := tj.snapshot
		tj.mu.Unlock()
		return snap, nil
	}

	job, err := s.api.JobStatus(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("job status: %w", err)
	}
	return job, nil
}

// Subscribe registers for progress snapshots of a tracked job. The returned
// channel closes when tracking ends; the cancel function must be called to
// release the subscription.
func (s *TrackingService) Subscribe(jobID string) (<-chan *model.GenerationJob, func(), error) {
	s.mu.RLock()
	tj, ok := s.tracked[jobID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil, ErrNotTracked
	}

	tj.mu.Lock()
	if tj.subs == nil {
		// Tracking already finished between lookup and registration.
		tj.mu.Unlock()
		closed := make(chan *model.GenerationJob)
		close(closed)
		return closed, func() {}, nil
	}
	id := tj.nextSub
	tj.nextSub++
	ch := make(chan *model.GenerationJob, 8)
	tj.subs[id] = ch
	tj.mu.Unlock()

	unsubscribe := func() {
		tj.mu.Lock()
		if tj.subs != nil {
			if sub, live := tj.subs[id]; live {
				delete(tj.subs, id)
				close(sub)
			}
		}
		tj.mu.Unlock()
	}
	return ch, unsubscribe, nil
}

// Await blocks until tracking of the job finishes or ctx is done, returning
// the terminal snapshot or the tracking error. A job that already finished
// tracking is looked up remotely once; a terminal snapshot there is returned
// as the outcome.
func (s *TrackingService) Await(ctx context.Context, jobID string) (*model.GenerationJob, error) {
	s.mu.RLock()
	tj, ok := s.tracked[jobID]
	s.mu.RUnlock()
	if !ok {
		job, err := s.api.JobStatus(ctx, jobID)
		if err != nil || !job.Terminal() {
			return nil, ErrNotTracked
		}
		switch job.Status {
		case model.JobStatusFailed:
			return nil, &tracking.JobFailedError{Job: job}
		case model.JobStatusCancelled:
			return nil, &tracking.JobCancelledError{Job: job}
		default:
			return job, nil
		}
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-tj.done:
		return tj.result, tj.err
	}
}

// Cancel asks the platform to cancel the job and stops the local tracking
// goroutine. The platform cancellation is best-effort; the local track stops
// regardless.
func (s *TrackingService) Cancel(ctx context.Context, jobID string) error {
	if jobID == "" {
		return errors.New("job id is required")
	}

	apiErr := s.api.CancelGeneration(ctx, jobID)

	s.mu.RLock()
	tj, ok := s.tracked[jobID]
	s.mu.RUnlock()
	if ok {
		tj.cancel()
	}

	if apiErr != nil {
		return fmt.Errorf("cancel generation: %w", apiErr)
	}
	if !ok {
		s.logger.InfoContext(ctx, "cancelled job was not tracked locally", "job_id", jobID)
	}
	return nil
}

// TrackedCount reports how many jobs this instance is currently tracking.
func (s *TrackingService) TrackedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tracked)
}

// Shutdown cancels all active tracks and waits for their goroutines to
// finish or ctx to expire.
func (s *TrackingService) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	jobs := make([]*trackedJob, 0, len(s.tracked))
	for _, tj := range s.tracked {
		tj.cancel()
		jobs = append(jobs, tj)
	}
	s.mu.Unlock()

	for _, tj := range jobs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tj.done:
		}
	}
	return nil
}
