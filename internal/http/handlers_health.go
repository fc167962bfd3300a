package httpx

import (
	"context"
	"database/sql"
	"net/http"
	"time"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// healthCheckTimeout bounds each dependency probe.
const healthCheckTimeout = 2 * time.Second

// HealthHandlers provides liveness and readiness endpoints.
type HealthHandlers struct {
	DB    *sql.DB
	Cache HealthChecker
}

// Health handles GET /healthz. It probes each wired dependency and reports
// per-dependency status; any failure yields 503.
func (h *HealthHandlers) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	if h.DB != nil {
		checks["database"] = checkStatus(h.DB.PingContext(ctx), &healthy)
	}
	if h.Cache != nil {
		checks["cache"] = checkStatus(h.Cache.Health(ctx), &healthy)
	}

	status := http.StatusOK
	overall := "ok"
	if !healthy {
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}

	if r.Method == http.MethodHead {
		w.WriteHeader(status)
		return
	}

	WriteJSON(w, status, map[string]any{
		"status": overall,
		"checks": checks,
	})
}

func checkStatus(err error, healthy *bool) string {
	if err != nil {
		*healthy = false
		return "unavailable"
	}
	return "ok"
}
