package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubHealthChecker struct {
	err error
}

func (s stubHealthChecker) Health(context.Context) error { return s.err }

func TestHealthHandlers_AllHealthy(t *testing.T) {
	handlers := &HealthHandlers{Cache: stubHealthChecker{}}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	handlers.Health(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.Contains(t, w.Body.String(), `"cache":"ok"`)
}

func TestHealthHandlers_DegradedCache(t *testing.T) {
	handlers := &HealthHandlers{Cache: stubHealthChecker{err: errors.New("connection refused")}}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	handlers.Health(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"degraded"`)
}

func TestHealthHandlers_HeadHasNoBody(t *testing.T) {
	handlers := &HealthHandlers{Cache: stubHealthChecker{}}

	req := httptest.NewRequest(http.MethodHead, "/healthz", nil)
	w := httptest.NewRecorder()

	handlers.Health(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestHealthHandlers_NoDependenciesWired(t *testing.T) {
	handlers := &HealthHandlers{}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	handlers.Health(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
