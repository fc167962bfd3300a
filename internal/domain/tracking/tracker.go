// Package tracking implements the asynchronous job lifecycle tracker: a
// polling loop that follows one remote generation job until it reaches a
// terminal state, the wall-clock budget runs out, the caller cancels, or a
// lookup fails.
package tracking

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gameforge/ui-api/internal/domain/model"
)

// StatusLookup fetches the current snapshot of a remote generation job.
// Implementations must be safe to call repeatedly; the tracker performs no
// coalescing or caching of this call.
type StatusLookup interface {
	JobStatus(ctx context.Context, id string) (*model.GenerationJob, error)
}

// ProgressSink receives each job snapshot as it is observed, exactly once per
// poll tick — including ticks where the status is unchanged, since progress
// doubles as a liveness signal. For a single tracked job, invocations are
// strictly sequential.
type ProgressSink interface {
	Observe(job *model.GenerationJob)
}

// NopSink is a ProgressSink that discards all snapshots. Use it when only the
// final outcome of Track matters and intermediate ticks are of no interest.
type NopSink struct{}

// Observe implements ProgressSink.
func (NopSink) Observe(*model.GenerationJob) {}

// TrackParams describes one tracking operation.
type TrackParams struct {
	// JobID is the opaque, externally issued identifier of the job to follow.
	JobID string
	// Cadence is the interval between consecutive lookups, measured
	// back-to-back from receipt of each result. At most one lookup is ever
	// in flight per tracked job.
	Cadence time.Duration
	// Timeout is the wall-clock tracking budget, measured from loop start
	// and independent of cadence.
	Timeout time.Duration
}

func (p TrackParams) validate() error {
	if p.JobID == "" {
		return errors.New("job id is required")
	}
	if p.Cadence <= 0 {
		return errors.New("cadence must be positive")
	}
	if p.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	return nil
}

// TrackerOptions configures a Tracker.
type TrackerOptions struct {
	// Lookup is the injected status collaborator. Required. Injecting it here
	// keeps concurrently tracked jobs from sharing any implicit client state.
	Lookup StatusLookup
	// Logger receives transition warnings. Optional; defaults to slog.Default.
	Logger *slog.Logger
}

// Tracker polls a remote job on a fixed cadence. A single Tracker may be
// shared by any number of concurrent Track calls; it holds no per-job state.
type Tracker struct {
	lookup    StatusLookup
	validator *Validator
	logger    *slog.Logger
}

// NewTracker creates a Tracker with the given options.
func NewTracker(opts TrackerOptions) (*Tracker, error) {
	if opts.Lookup == nil {
		return nil, errors.New("StatusLookup is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		lookup:    opts.Lookup,
		validator: NewValidator(logger),
		logger:    logger,
	}, nil
}

// MustNewTracker creates a Tracker and panics on invalid options.
func MustNewTracker(opts TrackerOptions) *Tracker {
	t, err := NewTracker(opts)
	if err != nil {
		panic(err)
	}
	return t
}

// Track follows the job until it resolves. It returns the final snapshot on
// completion, or one of *TransportError, *TimeoutError, *JobFailedError,
// *JobCancelledError, or the context's error when the caller cancels.
//
// The first lookup is issued immediately. Each snapshot is forwarded to sink
// before its status is evaluated; terminal evaluation happens before the
// timeout check, so a terminal result delivered in the same tick as timeout
// expiry wins. Cancellation is cooperative: it is checked at the top of each
// iteration and again before scheduling the next wait, and a result from an
// already in-flight lookup is discarded without touching the sink. A single
// lookup failure aborts the operation; any retry policy belongs to the
// caller, composed around the whole Track call.
func (t *Tracker) Track(ctx context.Context, params TrackParams, sink ProgressSink) (*model.GenerationJob, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		sink = NopSink{}
	}

	deadline := time.NewTimer(params.Timeout)
	defer deadline.Stop()

	var prev model.JobStatus

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		job, err := t.lookup.JobStatus(ctx, params.JobID)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, &TransportError{JobID: params.JobID, Err: err}
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			// Cancelled while the lookup was in flight; discard the result.
			return nil, ctxErr
		}

		sink.Observe(job)
		terminal := t.validator.Check(ctx, params.JobID, prev, job.Status)
		prev = job.Status

		if terminal {
			return t.resolveTerminal(ctx, job)
		}

		// Terminal has been ruled out for this tick; now the timeout may fire.
		select {
		case <-deadline.C:
			return nil, &TimeoutError{JobID: params.JobID, Timeout: params.Timeout}
		default:
		}

		wait := time.NewTimer(params.Cadence)
		select {
		case <-ctx.Done():
			wait.Stop()
			return nil, ctx.Err()
		case <-deadline.C:
			wait.Stop()
			return nil, &TimeoutError{JobID: params.JobID, Timeout: params.Timeout}
		case <-wait.C:
		}
	}
}

// resolveTerminal maps a terminal snapshot to the Track return values.
func (t *Tracker) resolveTerminal(ctx context.Context, job *model.GenerationJob) (*model.GenerationJob, error) {
	switch job.Status {
	case model.JobStatusCompleted:
		return job, nil
	case model.JobStatusFailed:
		return nil, &JobFailedError{Job: job}
	case model.JobStatusCancelled:
		return nil, &JobCancelledError{Job: job}
	default:
		// Unreachable while Terminal() and this switch agree.
		t.logger.ErrorContext(ctx, "unhandled terminal status",
			slog.String("job_id", job.ID),
			slog.String("status", string(job.Status)),
		)
		return job, nil
	}
}
