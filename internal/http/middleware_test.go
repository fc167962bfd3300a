package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/gameforge/ui-api/internal/domain/auth"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func sessionEcho(t *testing.T, want bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := GetUserSessionFromContext(r.Context())
		assert.Equal(t, want, ok)
		w.WriteHeader(http.StatusOK)
	})
}

func authServiceWithRole(role domainauth.Role) *mockAuthService {
	return &mockAuthService{
		getSessionFunc: func(_ context.Context, sessionID string) (*domainauth.Session, error) {
			return &domainauth.Session{
				ID:        sessionID,
				UserID:    "user-1",
				Role:      role,
				ExpiresAt: time.Now().Add(time.Hour),
			}, nil
		},
	}
}

func TestRequireAuth_NoCookie(t *testing.T) {
	handler := RequireAuth(&mockAuthService{})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_ValidSession(t *testing.T) {
	handler := RequireAuth(authServiceWithRole(domainauth.RoleMember))(sessionEcho(t, true))

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "session-1"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuth_InvalidSession(t *testing.T) {
	svc := &mockAuthService{
		getSessionFunc: func(context.Context, string) (*domainauth.Session, error) {
			return nil, errors.New("not found")
		},
	}
	handler := RequireAuth(svc)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "stale"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name     string
		has      domainauth.Role
		required domainauth.Role
		want     int
	}{
		{"admin passes creator gate", domainauth.RoleAdmin, domainauth.RoleCreator, http.StatusOK},
		{"creator passes creator gate", domainauth.RoleCreator, domainauth.RoleCreator, http.StatusOK},
		{"member blocked from creator gate", domainauth.RoleMember, domainauth.RoleCreator, http.StatusForbidden},
		{"guest blocked from member gate", domainauth.RoleGuest, domainauth.RoleMember, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequireRole(authServiceWithRole(tt.has), tt.required)(okHandler())

			req := httptest.NewRequest(http.MethodGet, "/api/generations", nil)
			req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "session-1"})
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestOptionalAuth_WithoutCookie(t *testing.T) {
	handler := OptionalAuth(&mockAuthService{})(sessionEcho(t, false))

	req := httptest.NewRequest(http.MethodGet, "/api/assets", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuth_WithCookie(t *testing.T) {
	handler := OptionalAuth(authServiceWithRole(domainauth.RoleMember))(sessionEcho(t, true))

	req := httptest.NewRequest(http.MethodGet, "/api/assets", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "session-1"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecover(t *testing.T) {
	handler := Recover(testLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/assets", nil)
	w := httptest.NewRecorder()

	require.NotPanics(t, func() { handler.ServeHTTP(w, req) })
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestLogging_PreservesStatus(t *testing.T) {
	handler := Logging(testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/assets", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTeapot, w.Code)
}
