// Package metrics exposes Prometheus collectors for the GameForge UI API.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	obserrors "github.com/gameforge/ui-api/internal/observability/errors"
)

// Outcome constants for metric labeling.
const (
	OutcomeSuccess   = "success"
	OutcomeFailed    = "failed"
	OutcomeCancelled = "cancelled"
	OutcomeTimeout   = "timeout"
	OutcomeError     = "error"
)

var (
	httpRequestsTotal          *prometheus.CounterVec
	httpRequestDurationSeconds *prometheus.HistogramVec
	authAttemptsTotal          *prometheus.CounterVec
	generationJobsTotal        *prometheus.CounterVec
	activeTrackedJobs          prometheus.Gauge
	trackDurationSeconds       *prometheus.HistogramVec
	catalogCacheHitsTotal      prometheus.Counter
	catalogCacheMissesTotal    prometheus.Counter

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		httpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gameforge_http_requests_total",
				Help: "Total HTTP requests, labeled by method, endpoint and status.",
			},
			[]string{"method", "endpoint", "status"},
		)

		httpRequestDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gameforge_http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies, labeled by method and endpoint.",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "endpoint"},
		)

		authAttemptsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gameforge_auth_attempts_total",
				Help: "Authentication attempts, labeled by status and method.",
			},
			[]string{"status", "method"},
		)

		generationJobsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gameforge_generation_jobs_total",
				Help: "Tracked generation jobs by final outcome.",
			},
			[]string{"outcome", "error_class"},
		)

		activeTrackedJobs = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "gameforge_active_tracked_jobs",
				Help: "Number of generation jobs currently being tracked.",
			},
		)

		trackDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gameforge_track_duration_seconds",
				Help:    "Time from tracking start to terminal state or abort.",
				Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
			},
			[]string{"outcome"},
		)

		catalogCacheHitsTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "gameforge_catalog_cache_hits_total",
				Help: "Marketplace catalog cache hits.",
			},
		)

		catalogCacheMissesTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "gameforge_catalog_cache_misses_total",
				Help: "Marketplace catalog cache misses.",
			},
		)
	})
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	Init()
	return promhttp.Handler()
}

// RecordHTTPRequest records one served HTTP request.
func RecordHTTPRequest(method, endpoint string, status int, duration time.Duration) {
	Init()
	httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordAuthAttempt records an authentication attempt.
func RecordAuthAttempt(status, method string) {
	Init()
	authAttemptsTotal.WithLabelValues(status, method).Inc()
}

// TrackingStarted marks a generation job as actively tracked.
func TrackingStarted() {
	Init()
	activeTrackedJobs.Inc()
}

// TrackingFinished records the outcome of a tracked generation job.
// The error class label stays empty for clean outcomes.
func TrackingFinished(outcome string, err error, duration time.Duration) {
	Init()
	activeTrackedJobs.Dec()

	var class string
	if err != nil && (outcome == OutcomeError || outcome == OutcomeFailed) {
		class = obserrors.Classify(err)
	}
	generationJobsTotal.WithLabelValues(outcome, class).Inc()
	trackDurationSeconds.WithLabelValues(outcome).Observe(duration.Seconds())
}

// RecordCatalogCacheHit records a marketplace catalog cache hit.
func RecordCatalogCacheHit() {
	Init()
	catalogCacheHitsTotal.Inc()
}

// RecordCatalogCacheMiss records a marketplace catalog cache miss.
func RecordCatalogCacheMiss() {
	Init()
	catalogCacheMissesTotal.Inc()
}
