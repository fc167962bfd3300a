package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/gameforge/ui-api/internal/domain/model"
)

// GenerationJobBuilder provides a fluent interface for building GenerationJob objects for testing.
type GenerationJobBuilder struct {
	job *model.GenerationJob
}

// NewGenerationJob creates a new GenerationJobBuilder with sensible defaults.
func NewGenerationJob() *GenerationJobBuilder {
	now := TestTime()
	return &GenerationJobBuilder{
		job: &model.GenerationJob{
			ID:        uuid.NewString(),
			Status:    model.JobStatusPending,
			Progress:  0,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// WithID sets the job ID.
func (b *GenerationJobBuilder) WithID(id string) *GenerationJobBuilder {
	b.job.ID = id
	return b
}

// WithStatus sets the job status.
func (b *GenerationJobBuilder) WithStatus(status model.JobStatus) *GenerationJobBuilder {
	b.job.Status = status
	return b
}

// WithProgress sets the job progress percentage.
func (b *GenerationJobBuilder) WithProgress(progress int) *GenerationJobBuilder {
	b.job.Progress = progress
	return b
}

// WithError sets the failure message.
func (b *GenerationJobBuilder) WithError(msg string) *GenerationJobBuilder {
	b.job.ErrorMessage = &msg
	return b
}

// WithMetadata sets a single metadata entry.
func (b *GenerationJobBuilder) WithMetadata(key, value string) *GenerationJobBuilder {
	if b.job.Metadata == nil {
		b.job.Metadata = make(map[string]string)
	}
	b.job.Metadata[key] = value
	return b
}

// WithEstimatedCompletion sets the estimated completion time.
func (b *GenerationJobBuilder) WithEstimatedCompletion(t time.Time) *GenerationJobBuilder {
	b.job.EstimatedCompletion = &t
	return b
}

// Build returns the constructed GenerationJob.
func (b *GenerationJobBuilder) Build() *model.GenerationJob {
	jobCopy := *b.job
	return &jobCopy
}

// GenerationRequestBuilder provides a fluent interface for building GenerationRequest objects for testing.
type GenerationRequestBuilder struct {
	req *model.GenerationRequest
}

// NewGenerationRequest creates a new GenerationRequestBuilder with sensible defaults.
func NewGenerationRequest() *GenerationRequestBuilder {
	return &GenerationRequestBuilder{
		req: &model.GenerationRequest{
			Prompt:    "low poly crystal sword",
			AssetType: "model3d",
			Style:     "fantasy",
		},
	}
}

// WithPrompt sets the generation prompt.
func (b *GenerationRequestBuilder) WithPrompt(prompt string) *GenerationRequestBuilder {
	b.req.Prompt = prompt
	return b
}

// WithAssetType sets the requested asset type.
func (b *GenerationRequestBuilder) WithAssetType(assetType string) *GenerationRequestBuilder {
	b.req.AssetType = assetType
	return b
}

// WithStyle sets the requested style.
func (b *GenerationRequestBuilder) WithStyle(style string) *GenerationRequestBuilder {
	b.req.Style = style
	return b
}

// Build returns the constructed GenerationRequest.
func (b *GenerationRequestBuilder) Build() *model.GenerationRequest {
	reqCopy := *b.req
	return &reqCopy
}

// ConsentRecordBuilder provides a fluent interface for building ConsentRecord objects for testing.
type ConsentRecordBuilder struct {
	rec *model.ConsentRecord
}

// NewConsentRecord creates a new ConsentRecordBuilder with sensible defaults.
func NewConsentRecord() *ConsentRecordBuilder {
	return &ConsentRecordBuilder{
		rec: &model.ConsentRecord{
			ID:         uuid.NewString(),
			UserID:     "user-" + uuid.NewString()[:8],
			Scope:      model.ConsentScopeTraining,
			Granted:    true,
			Source:     "settings",
			RecordedAt: TestTime(),
		},
	}
}

// WithUserID sets the user ID.
func (b *ConsentRecordBuilder) WithUserID(userID string) *ConsentRecordBuilder {
	b.rec.UserID = userID
	return b
}

// WithScope sets the consent scope.
func (b *ConsentRecordBuilder) WithScope(scope model.ConsentScope) *ConsentRecordBuilder {
	b.rec.Scope = scope
	return b
}

// WithGranted sets the decision value.
func (b *ConsentRecordBuilder) WithGranted(granted bool) *ConsentRecordBuilder {
	b.rec.Granted = granted
	return b
}

// WithRecordedAt sets the decision timestamp.
func (b *ConsentRecordBuilder) WithRecordedAt(t time.Time) *ConsentRecordBuilder {
	b.rec.RecordedAt = t
	return b
}

// Build returns the constructed ConsentRecord.
func (b *ConsentRecordBuilder) Build() *model.ConsentRecord {
	recCopy := *b.rec
	return &recCopy
}
