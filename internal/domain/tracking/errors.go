package tracking

import (
	"errors"
	"fmt"
	"time"

	"github.com/gameforge/ui-api/internal/domain/model"
)

// TransportError indicates a status lookup itself failed (network or server
// fault). It aborts tracking immediately; no retry happens inside the loop.
type TransportError struct {
	JobID string
	Err   error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("status lookup for job %s failed: %v", e.JobID, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// TimeoutError indicates the wall-clock tracking budget was exceeded while
// the job remained non-terminal.
type TimeoutError struct {
	JobID   string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("tracking job %s exceeded timeout of %s", e.JobID, e.Timeout)
}

// JobFailedError is the terminal outcome for a job the remote system reports
// as failed. It carries the final snapshot including the remote error message.
type JobFailedError struct {
	Job *model.GenerationJob
}

func (e *JobFailedError) Error() string {
	if msg := e.Job.Error(); msg != "" {
		return fmt.Sprintf("job %s failed: %s", e.Job.ID, msg)
	}
	return fmt.Sprintf("job %s failed", e.Job.ID)
}

// JobCancelledError is the terminal outcome for a job the remote system
// reports as cancelled.
type JobCancelledError struct {
	Job *model.GenerationJob
}

func (e *JobCancelledError) Error() string {
	return fmt.Sprintf("job %s was cancelled", e.Job.ID)
}

// IsTransport checks if an error is a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsTimeout checks if an error is a TimeoutError.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}
