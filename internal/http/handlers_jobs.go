package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gameforge/ui-api/internal/domain/model"
	"github.com/gameforge/ui-api/internal/domain/tracking"
	"github.com/gameforge/ui-api/internal/service"
)

// TrackingServiceInterface defines the tracking service operations the job
// handlers depend on.
type TrackingServiceInterface interface {
	Submit(ctx context.Context, in service.SubmitInput) (*model.GenerationJob, error)
	Follow(ctx context.Context, jobID string, cadence, timeout time.Duration) (*model.GenerationJob, error)
	Snapshot(ctx context.Context, jobID string) (*model.GenerationJob, error)
	Subscribe(jobID string) (<-chan *model.GenerationJob, func(), error)
	Await(ctx context.Context, jobID string) (*model.GenerationJob, error)
	Cancel(ctx context.Context, jobID string) error
}

// Long-poll bounds for the progress endpoint.
const (
	defaultProgressWait = 25 * time.Second
	maxProgressWait     = 55 * time.Second
)

// JobHandlers provides HTTP handlers for generation job operations.
type JobHandlers struct {
	Svc    TrackingServiceInterface
	Logger *slog.Logger
}

func (h *JobHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

type submitJobRequest struct {
	Prompt    string            `json:"prompt"`
	AssetType string            `json:"asset_type"`
	Style     string            `json:"style,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CadenceMS int               `json:"cadence_ms,omitempty"`
	TimeoutMS int               `json:"timeout_ms,omitempty"`
}

// Submit handles POST /api/generations. It forwards the request to the
// platform and starts tracking the returned job.
func (h *JobHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitJobRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	job, err := h.Svc.Submit(r.Context(), service.SubmitInput{
		Request: &model.GenerationRequest{
			Prompt:    req.Prompt,
			AssetType: req.AssetType,
			Style:     req.Style,
			Metadata:  req.Metadata,
		},
		Cadence: time.Duration(req.CadenceMS) * time.Millisecond,
		Timeout: time.Duration(req.TimeoutMS) * time.Millisecond,
	})
	if err != nil {
		h.writeJobError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusAccepted, job)
}

// Follow handles POST /api/generations/{id}/track. It starts tracking a job
// that was submitted outside this instance.
func (h *JobHandlers) Follow(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")

	job, err := h.Svc.Follow(r.Context(), jobID, 0, 0)
	if err != nil {
		h.writeJobError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, job)
}

// Get handles GET /api/generations/{id}. Tracked jobs answer from the latest
// observed snapshot; everything else is looked up on the platform.
func (h *JobHandlers) Get(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")

	job, err := h.Svc.Snapshot(r.Context(), jobID)
	if err != nil {
		h.writeJobError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, job)
}

// Cancel handles DELETE /api/generations/{id}.
func (h *JobHandlers) Cancel(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")

	if err := h.Svc.Cancel(r.Context(), jobID); err != nil {
		h.writeJobError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusAccepted, map[string]string{
		"id":     jobID,
		"status": "cancelling",
	})
}

// Progress handles GET /api/generations/{id}/progress. It long-polls for the
// next observed snapshot, falling back to the current one when nothing new
// arrives within the wait window.
func (h *JobHandlers) Progress(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")

	wait := defaultProgressWait
	if raw := r.URL.Query().Get("wait"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed < 0 {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "invalid_wait",
				Err:     errors.New("wait must be a non-negative duration"),
			})
			return
		}
		wait = min(parsed, maxProgressWait)
	}

	ch, unsubscribe, err := h.Svc.Subscribe(jobID)
	if err != nil {
		// Untracked jobs still have a current state worth reporting.
		if errors.Is(err, service.ErrNotTracked) {
			h.Get(w, r)
			return
		}
		h.writeJobError(w, r, err)
		return
	}
	defer unsubscribe()

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case job, ok := <-ch:
		if !ok {
			// Tracking finished between subscribe and receive.
			h.Get(w, r)
			return
		}
		WriteJSON(w, http.StatusOK, job)
	case <-timer.C:
		h.Get(w, r)
	case <-r.Context().Done():
	}
}

// Result handles GET /api/generations/{id}/result. It blocks until tracking
// finishes and returns the terminal snapshot. Failed and cancelled jobs are
// reported as snapshots too; their status and error message tell the story.
func (h *JobHandlers) Result(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")

	job, err := h.Svc.Await(r.Context(), jobID)
	if err != nil {
		var failed *tracking.JobFailedError
		if errors.As(err, &failed) {
			WriteJSON(w, http.StatusOK, failed.Job)
			return
		}
		var cancelled *tracking.JobCancelledError
		if errors.As(err, &cancelled) {
			WriteJSON(w, http.StatusOK, cancelled.Job)
			return
		}
		h.writeJobError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, job)
}

// writeJobError maps tracking outcomes to HTTP responses. Platform API errors
// arrive as app errors and keep their own mapping.
func (h *JobHandlers) writeJobError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrNotTracked):
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: "job_not_tracked",
			Err:     err,
		})
	case tracking.IsTimeout(err):
		WriteError(w, ErrorParams{
			Code:    http.StatusGatewayTimeout,
			ErrCode: "tracking_timeout",
			Err:     err,
		})
	case tracking.IsTransport(err):
		h.logger().ErrorContext(r.Context(), "platform lookup failed", "error", err)
		WriteError(w, ErrorParams{
			Code:    http.StatusBadGateway,
			ErrCode: "platform_unavailable",
			Err:     err,
		})
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful to write.
	default:
		WriteAppError(w, err)
	}
}
