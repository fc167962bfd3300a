package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/gameforge/ui-api/internal/domain/model"
	"github.com/gameforge/ui-api/internal/domain/tracking"
	"github.com/gameforge/ui-api/internal/mocks"
	"github.com/gameforge/ui-api/internal/testutil"
)

func fastTrackingConfig() TrackingConfig {
	return TrackingConfig{
		DefaultCadence: 5 * time.Millisecond,
		DefaultTimeout: time.Second,
		MinCadence:     time.Millisecond,
		MaxTimeout:     5 * time.Second,
	}
}

// sequenceAPI serves scripted JobStatus snapshots, repeating the last one.
type sequenceAPI struct {
	mu    sync.Mutex
	steps []*model.GenerationJob
	calls int

	submitted *model.GenerationJob
	cancelErr error
	cancelled []string
}

func (a *sequenceAPI) RequestGeneration(_ context.Context, _ *model.GenerationRequest) (*model.GenerationJob, error) {
	if a.submitted == nil {
		return nil, errors.New("no scripted submission")
	}
	return a.submitted, nil
}

func (a *sequenceAPI) JobStatus(_ context.Context, _ string) (*model.GenerationJob, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	idx := a.calls
	a.calls++
	if idx >= len(a.steps) {
		idx = len(a.steps) - 1
	}
	return a.steps[idx], nil
}

func (a *sequenceAPI) CancelGeneration(_ context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cancelled = append(a.cancelled, id)
	return a.cancelErr
}

func newTestTrackingService(t *testing.T, api *sequenceAPI) *TrackingService {
	t.Helper()
	svc, err := NewTrackingService(TrackingServiceOptions{
		API:    api,
		Config: fastTrackingConfig(),
	})
	require.NoError(t, err)
	return svc
}

func TestNewTrackingService_RequiresAPI(t *testing.T) {
	_, err := NewTrackingService(TrackingServiceOptions{})
	require.Error(t, err)
}

func TestTrackingService_Submit_CompletesAndAwaits(t *testing.T) {
	pending := testutil.NewGenerationJob().WithID("job-1").Build()
	api := &sequenceAPI{
		submitted: pending,
		steps: []*model.GenerationJob{
			testutil.NewGenerationJob().WithID("job-1").WithStatus(model.JobStatusProcessing).WithProgress(50).Build(),
			testutil.NewGenerationJob().WithID("job-1").WithStatus(model.JobStatusCompleted).WithProgress(100).Build(),
		},
	}
	svc := newTestTrackingService(t, api)

	job, err := svc.Submit(context.Background(), SubmitInput{
		Request: testutil.NewGenerationRequest().Build(),
	})
	require.NoError(t, err)
	assert.Equal(t, "job-1", job.ID)
	assert.Equal(t, 1, svc.TrackedCount())

	final, err := svc.Await(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusCompleted, final.Status)
	assert.Equal(t, 0, svc.TrackedCount())
}

func TestTrackingService_Submit_InvalidRequest(t *testing.T) {
	svc := newTestTrackingService(t, &sequenceAPI{})

	_, err := svc.Submit(context.Background(), SubmitInput{
		Request: &model.GenerationRequest{},
	})
	require.Error(t, err)
	assert.Equal(t, 0, svc.TrackedCount())
}

func TestTrackingService_Follow_TerminalJobNotTracked(t *testing.T) {
	done := testutil.NewGenerationJob().WithID("job-done").
		WithStatus(model.JobStatusCompleted).WithProgress(100).Build()
	api := &sequenceAPI{steps: []*model.GenerationJob{done}}
	svc := newTestTrackingService(t, api)

	job, err := svc.Follow(context.Background(), "job-done", 0, 0)
	require.NoError(t, err)
	assert.True(t, job.Terminal())
	assert.Equal(t, 0, svc.TrackedCount())
}

func TestTrackingService_Subscribe_ReceivesProgress(t *testing.T) {
	api := &sequenceAPI{
		steps: []*model.GenerationJob{
			testutil.NewGenerationJob().WithID("job-2").WithStatus(model.JobStatusProcessing).WithProgress(10).Build(),
			testutil.NewGenerationJob().WithID("job-2").WithStatus(model.JobStatusProcessing).WithProgress(60).Build(),
			testutil.NewGenerationJob().WithID("job-2").WithStatus(model.JobStatusCompleted).WithProgress(100).Build(),
		},
	}
	svc := newTestTrackingService(t, api)

	// Cadence long enough to subscribe before the second lookup.
	_, err := svc.Follow(context.Background(), "job-2", 50*time.Millisecond, time.Second)
	require.NoError(t, err)

	ch, unsubscribe, err := svc.Subscribe("job-2")
	require.NoError(t, err)
	defer unsubscribe()

	var progress []int
	for snap := range ch {
		progress = append(progress, snap.Progress)
	}
	require.NotEmpty(t, progress)
	assert.Equal(t, 100, progress[len(progress)-1])
}

func TestTrackingService_Subscribe_NotTracked(t *testing.T) {
	svc := newTestTrackingService(t, &sequenceAPI{})

	_, _, err := svc.Subscribe("missing")
	assert.ErrorIs(t, err, ErrNotTracked)
}

func TestTrackingService_Snapshot_FallsBackToAPI(t *testing.T) {
	snap := testutil.NewGenerationJob().WithID("job-3").
		WithStatus(model.JobStatusProcessing).WithProgress(30).Build()
	api := &sequenceAPI{steps: []*model.GenerationJob{snap}}
	svc := newTestTrackingService(t, api)

	got, err := svc.Snapshot(context.Background(), "job-3")
	require.NoError(t, err)
	assert.Equal(t, 30, got.Progress)
}

func TestTrackingService_Cancel_StopsTracking(t *testing.T) {
	stuck := testutil.NewGenerationJob().WithID("job-4").
		WithStatus(model.JobStatusProcessing).WithProgress(5).Build()
	api := &sequenceAPI{steps: []*model.GenerationJob{stuck}}
	svc := newTestTrackingService(t, api)

	_, err := svc.Follow(context.Background(), "job-4", 5*time.Millisecond, time.Minute)
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(context.Background(), "job-4"))
	assert.Equal(t, []string{"job-4"}, api.cancelled)

	_, err = svc.Await(context.Background(), "job-4")
	if !errors.Is(err, ErrNotTracked) {
		// Await registered before the goroutine exited; the track must
		// report cancellation.
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestTrackingService_Cancel_APIFailureStillStopsLocalTrack(t *testing.T) {
	stuck := testutil.NewGenerationJob().WithID("job-5").
		WithStatus(model.JobStatusProcessing).Build()
	api := &sequenceAPI{
		steps:     []*model.GenerationJob{stuck},
		cancelErr: errors.New("upstream down"),
	}
	svc := newTestTrackingService(t, api)

	_, err := svc.Follow(context.Background(), "job-5", 5*time.Millisecond, time.Minute)
	require.NoError(t, err)

	err = svc.Cancel(context.Background(), "job-5")
	require.Error(t, err)

	deadline := time.After(time.Second)
	for svc.TrackedCount() != 0 {
		select {
		case <-deadline:
			t.Fatal("local track did not stop after cancel")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestTrackingService_FailedJobOutcome(t *testing.T) {
	api := &sequenceAPI{
		steps: []*model.GenerationJob{
			testutil.NewGenerationJob().WithID("job-6").WithStatus(model.JobStatusFailed).
				WithError("safety rejection").Build(),
		},
	}
	svc := newTestTrackingService(t, api)

	// Terminal on first lookup: Follow returns the failed snapshot without tracking.
	job, err := svc.Follow(context.Background(), "job-6", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusFailed, job.Status)
}

func TestTrackingService_FailedMidTrack(t *testing.T) {
	api := &sequenceAPI{
		steps: []*model.GenerationJob{
			testutil.NewGenerationJob().WithID("job-7").WithStatus(model.JobStatusProcessing).Build(),
			testutil.NewGenerationJob().WithID("job-7").WithStatus(model.JobStatusFailed).
				WithError("render crashed").Build(),
		},
	}
	svc := newTestTrackingService(t, api)

	_, err := svc.Follow(context.Background(), "job-7", 5*time.Millisecond, time.Second)
	require.NoError(t, err)

	_, err = svc.Await(context.Background(), "job-7")
	var failed *tracking.JobFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, "render crashed", failed.Job.Error())
}

func TestTrackingService_Shutdown(t *testing.T) {
	stuck := testutil.NewGenerationJob().WithID("job-8").
		WithStatus(model.JobStatusProcessing).Build()
	api := &sequenceAPI{steps: []*model.GenerationJob{stuck}}
	svc := newTestTrackingService(t, api)

	_, err := svc.Follow(context.Background(), "job-8", 5*time.Millisecond, time.Minute)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, svc.Shutdown(ctx))
	assert.Equal(t, 0, svc.TrackedCount())
}

func TestTrackingService_Submit_WithGomock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	apiMock := mocks.NewMockGenerationAPI(ctrl)
	pending := testutil.NewGenerationJob().WithID("job-9").Build()
	completed := testutil.NewGenerationJob().WithID("job-9").
		WithStatus(model.JobStatusCompleted).WithProgress(100).Build()

	apiMock.EXPECT().
		RequestGeneration(gomock.Any(), gomock.Any()).
		Return(pending, nil)
	apiMock.EXPECT().
		JobStatus(gomock.Any(), "job-9").
		Return(completed, nil).
		AnyTimes()

	svc, err := NewTrackingService(TrackingServiceOptions{
		API:    apiMock,
		Config: fastTrackingConfig(),
	})
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), SubmitInput{
		Request: testutil.NewGenerationRequest().Build(),
	})
	require.NoError(t, err)

	final, err := svc.Await(context.Background(), "job-9")
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusCompleted, final.Status)
}
