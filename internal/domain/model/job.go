// Package model defines the core data types used throughout the gameforge ui-api.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// JobStatus represents the current status of a generation job as reported by
// the platform API.
//
//nolint:recvcheck // UnmarshalText needs pointer receiver, Valid needs value receiver
type JobStatus string

const (
	// JobStatusPending indicates a job is queued and has not started processing.
	JobStatusPending JobStatus = "pending"
	// JobStatusProcessing indicates a job is currently being executed.
	JobStatusProcessing JobStatus = "processing"
	// JobStatusCompleted indicates a job finished successfully.
	JobStatusCompleted JobStatus = "completed"
	// JobStatusFailed indicates a job finished with an error.
	JobStatusFailed JobStatus = "failed"
	// JobStatusCancelled indicates a job was cancelled before completion.
	JobStatusCancelled JobStatus = "cancelled"
)

// UnmarshalText implements encoding.TextUnmarshaler for JobStatus.
func (s *JobStatus) UnmarshalText(text []byte) error {
	v := JobStatus(strings.ToLower(strings.TrimSpace(string(text))))
	if !v.Valid() {
		return fmt.Errorf("invalid JobStatus: %q", v)
	}
	*s = v
	return nil
}

// Valid returns true if the JobStatus is one of the known lifecycle states.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusPending, JobStatusProcessing, JobStatusCompleted, JobStatusFailed, JobStatusCancelled:
		return true
	default:
		return false
	}
}

// Terminal returns true if no further transition is expected after this status.
func (s JobStatus) Terminal() bool {
	switch s {
	case JobStatusCompleted, JobStatusFailed, JobStatusCancelled:
		return true
	default:
		return false
	}
}

// GenerationJob is a snapshot of one observed state of a remote generation job.
// The remote platform owns the job; the local copy is read-only and is always
// replaced wholesale by the next poll, never mutated in place.
type GenerationJob struct {
	ID                  string            `json:"id"`
	Status              JobStatus         `json:"status"`
	Progress            int               `json:"progress"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
	EstimatedCompletion *time.Time        `json:"estimated_completion,omitempty"`
	ErrorMessage        *string           `json:"error_message,omitempty"`
	Metadata            map[string]string `json:"metadata,omitempty"`
}

// Terminal reports whether the snapshot carries a terminal status.
func (j *GenerationJob) Terminal() bool {
	return j.Status.Terminal()
}

// Error returns the failure message for a failed job, or empty string.
func (j *GenerationJob) Error() string {
	if j.ErrorMessage == nil {
		return ""
	}
	return *j.ErrorMessage
}

// Stage returns the current processing stage from job metadata, if the remote
// system published one.
func (j *GenerationJob) Stage() string {
	return j.Metadata["stage"]
}

// GenerationRequest represents a request to start a new asset generation job
// on the platform API.
type GenerationRequest struct {
	Prompt    string            `json:"prompt"`
	AssetType string            `json:"asset_type"`
	Style     string            `json:"style,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Validate validates the GenerationRequest fields.
func (r *GenerationRequest) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return errors.New("prompt is required")
	}
	if strings.TrimSpace(r.AssetType) == "" {
		return errors.New("asset type is required")
	}
	return nil
}
