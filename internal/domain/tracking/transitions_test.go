package tracking

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gameforge/ui-api/internal/domain/model"
)

func TestAnomalous(t *testing.T) {
	tests := []struct {
		name string
		prev model.JobStatus
		next model.JobStatus
		want bool
	}{
		{"first observation", "", model.JobStatusProcessing, false},
		{"normal progression", model.JobStatusPending, model.JobStatusProcessing, false},
		{"skipped intermediate", model.JobStatusPending, model.JobStatusCompleted, false},
		{"unchanged", model.JobStatusProcessing, model.JobStatusProcessing, false},
		{"cancel from pending", model.JobStatusPending, model.JobStatusCancelled, false},
		{"regression to pending", model.JobStatusProcessing, model.JobStatusPending, true},
		{"leaving completed", model.JobStatusCompleted, model.JobStatusProcessing, true},
		{"leaving failed", model.JobStatusFailed, model.JobStatusPending, true},
		{"leaving cancelled", model.JobStatusCancelled, model.JobStatusProcessing, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, anomalous(tt.prev, tt.next))
		})
	}
}

func TestValidator_Check_Stop(t *testing.T) {
	v := NewValidator(nil)
	ctx := context.Background()

	assert.False(t, v.Check(ctx, "job-1", "", model.JobStatusPending))
	assert.False(t, v.Check(ctx, "job-1", model.JobStatusPending, model.JobStatusProcessing))
	assert.True(t, v.Check(ctx, "job-1", model.JobStatusProcessing, model.JobStatusCompleted))
	assert.True(t, v.Check(ctx, "job-1", model.JobStatusProcessing, model.JobStatusFailed))
	assert.True(t, v.Check(ctx, "job-1", model.JobStatusPending, model.JobStatusCancelled))
}

func TestValidator_Check_LogsAnomaly(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	v := NewValidator(logger)

	// Anomalies are warnings, never fatal: the remote system remains the
	// source of truth, so the observed status still classifies normally.
	stop := v.Check(context.Background(), "job-1", model.JobStatusCompleted, model.JobStatusProcessing)
	assert.False(t, stop)
	assert.Contains(t, buf.String(), "anomalous job status transition")
	assert.Contains(t, buf.String(), "job-1")

	buf.Reset()
	v.Check(context.Background(), "job-1", model.JobStatusPending, model.JobStatusProcessing)
	assert.Empty(t, buf.String())
}
