package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestInit(t *testing.T) {
	// Call Init multiple times to test idempotency.
	Init()
	Init()

	if httpRequestsTotal == nil || authAttemptsTotal == nil ||
		generationJobsTotal == nil || activeTrackedJobs == nil ||
		trackDurationSeconds == nil {
		t.Fatal("Init() did not initialize metrics collectors")
	}
}

func TestTrackingLifecycle(t *testing.T) {
	Init()

	before := testutil.ToFloat64(activeTrackedJobs)
	TrackingStarted()
	if got := testutil.ToFloat64(activeTrackedJobs); got != before+1 {
		t.Errorf("expected active tracked jobs %f, got %f", before+1, got)
	}

	TrackingFinished(OutcomeSuccess, nil, 2*time.Second)
	if got := testutil.ToFloat64(activeTrackedJobs); got != before {
		t.Errorf("expected active tracked jobs %f after finish, got %f", before, got)
	}

	success := testutil.ToFloat64(generationJobsTotal.WithLabelValues(OutcomeSuccess, ""))
	if success < 1 {
		t.Errorf("expected at least one success outcome, got %f", success)
	}
}

func TestTrackingFinished_ErrorClass(t *testing.T) {
	Init()

	TrackingStarted()
	TrackingFinished(OutcomeError, errors.New("boom"), time.Second)

	count := testutil.ToFloat64(generationJobsTotal.WithLabelValues(OutcomeError, "errors_errorstring"))
	if count < 1 {
		t.Errorf("expected error outcome labeled with error class, got %f", count)
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	Init()

	RecordHTTPRequest("GET", "/api/jobs", 200, 15*time.Millisecond)

	count := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/jobs", "200"))
	if count < 1 {
		t.Errorf("expected http request counter >= 1, got %f", count)
	}
}
