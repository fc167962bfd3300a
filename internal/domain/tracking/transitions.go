package tracking

import (
	"context"
	"log/slog"

	"github.com/gameforge/ui-api/internal/domain/model"
)

// Validator classifies observed status transitions as continue-vs-stop and
// flags anomalous transitions. The remote system is the source of truth for
// job state, so an anomalous transition is logged as a warning rather than
// treated as fatal; the validator cannot correct what the remote reported.
type Validator struct {
	logger *slog.Logger
}

// NewValidator creates a Validator. A nil logger falls back to slog.Default.
func NewValidator(logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{logger: logger}
}

// Check records a newly observed status against the previously observed one
// (empty for the first observation) and returns true when polling must stop
// because the status is terminal.
func (v *Validator) Check(ctx context.Context, jobID string, prev, next model.JobStatus) bool {
	if anomalous(prev, next) {
		v.logger.WarnContext(ctx, "anomalous job status transition",
			slog.String("job_id", jobID),
			slog.String("from", string(prev)),
			slog.String("to", string(next)),
		)
	}
	return next.Terminal()
}

// anomalous reports whether the transition violates the expected lifecycle:
// pending -> processing -> {completed, failed}, with cancelled reachable from
// pending or processing. Skipping forward over intermediate states is normal
// under polling (status delivery is not exactly-once); leaving a terminal
// state or regressing to pending is not.
func anomalous(prev, next model.JobStatus) bool {
	if prev == "" || prev == next {
		return false
	}
	if prev.Terminal() {
		return true
	}
	if prev == model.JobStatusProcessing && next == model.JobStatusPending {
		return true
	}
	return false
}
