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
	"github.com/gameforge/ui-api/internal/service"
)

// mockAuthService is a test double for service.AuthService.
type mockAuthService struct {
	beginLoginFunc    func(ctx context.Context, redirectURL string) (*service.BeginLoginResult, error)
	completeLoginFunc func(ctx context.Context, input service.CompleteLoginInput) (*service.CompleteLoginResult, error)
	getSessionFunc    func(ctx context.Context, sessionID string) (*domainauth.Session, error)
	logoutFunc        func(ctx context.Context, sessionID string) error
}

func (m *mockAuthService) BeginLogin(
	ctx context.Context,
	redirectURL string,
) (*service.BeginLoginResult, error) {
	if m.beginLoginFunc != nil {
		return m.beginLoginFunc(ctx, redirectURL)
	}
	return &service.BeginLoginResult{
		AuthURL: "https://id.example.com/auth?state=test-state&nonce=test-nonce",
		State:   "test-state",
		Nonce:   "test-nonce",
	}, nil
}

func (m *mockAuthService) CompleteLogin(
	ctx context.Context,
	input service.CompleteLoginInput,
) (*service.CompleteLoginResult, error) {
	if m.completeLoginFunc != nil {
		return m.completeLoginFunc(ctx, input)
	}
	return &service.CompleteLoginResult{
		Session: domainauth.Session{
			ID:        "test-session-id",
			UserID:    "test-user",
			Email:     "test@example.com",
			Role:      domainauth.RoleCreator,
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}, nil
}

func (m *mockAuthService) GetSession(
	ctx context.Context,
	sessionID string,
) (*domainauth.Session, error) {
	if m.getSessionFunc != nil {
		return m.getSessionFunc(ctx, sessionID)
	}
	return &domainauth.Session{
		ID:        sessionID,
		UserID:    "test-user",
		Email:     "test@example.com",
		Role:      domainauth.RoleCreator,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func (m *mockAuthService) Logout(ctx context.Context, sessionID string) error {
	if m.logoutFunc != nil {
		return m.logoutFunc(ctx, sessionID)
	}
	return nil
}

func TestAuthHandlers_Login_Success(t *testing.T) {
	handlers := &AuthHandlers{Svc: &mockAuthService{}}

	req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	w := httptest.NewRecorder()

	handlers.Login(w, req)

	assert.Equal(t, http.StatusFound, w.Code)

	resp := w.Result()
	defer resp.Body.Close()
	assert.Len(t, resp.Cookies(), 3) // oauth_state, oauth_nonce, oauth_redirect

	assert.Contains(t, w.Header().Get("Location"), "https://id.example.com/auth")
}

func TestAuthHandlers_Login_RejectsAbsoluteRedirect(t *testing.T) {
	var gotRedirect string
	handlers := &AuthHandlers{Svc: &mockAuthService{
		beginLoginFunc: func(_ context.Context, redirectURL string) (*service.BeginLoginResult, error) {
			gotRedirect = redirectURL
			return &service.BeginLoginResult{AuthURL: "https://id.example.com/auth", State: "s", Nonce: "n"}, nil
		},
	}}

	req := httptest.NewRequest(http.MethodGet, "/auth/login?redirect_uri=https://evil.example.com/", nil)
	w := httptest.NewRecorder()

	handlers.Login(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", gotRedirect)
}

func TestAuthHandlers_Login_ServiceError(t *testing.T) {
	handlers := &AuthHandlers{Svc: &mockAuthService{
		beginLoginFunc: func(context.Context, string) (*service.BeginLoginResult, error) {
			return nil, errors.New("provider unreachable")
		},
	}}

	req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	w := httptest.NewRecorder()

	handlers.Login(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func callbackRequest(state, nonce string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=test-code&state="+state, nil)
	req.AddCookie(&http.Cookie{Name: stateCookieName, Value: state})
	req.AddCookie(&http.Cookie{Name: nonceCookieName, Value: nonce})
	return req
}

func TestAuthHandlers_Callback_Success(t *testing.T) {
	var gotInput service.CompleteLoginInput
	handlers := &AuthHandlers{Svc: &mockAuthService{
		completeLoginFunc: func(_ context.Context, input service.CompleteLoginInput) (*service.CompleteLoginResult, error) {
			gotInput = input
			return &service.CompleteLoginResult{Session: domainauth.Session{
				ID:        "session-1",
				ExpiresAt: time.Now().Add(time.Hour),
			}}, nil
		},
	}}

	w := httptest.NewRecorder()
	handlers.Callback(w, callbackRequest("test-state", "test-nonce"))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "test-code", gotInput.Code)
	assert.Equal(t, "test-nonce", gotInput.Nonce)

	resp := w.Result()
	defer resp.Body.Close()
	var sessionCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookieName {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)
	assert.Equal(t, "session-1", sessionCookie.Value)
	assert.True(t, sessionCookie.HttpOnly)
}

func TestAuthHandlers_Callback_StateMismatch(t *testing.T) {
	handlers := &AuthHandlers{Svc: &mockAuthService{}}

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=test-code&state=forged", nil)
	req.AddCookie(&http.Cookie{Name: stateCookieName, Value: "test-state"})
	req.AddCookie(&http.Cookie{Name: nonceCookieName, Value: "test-nonce"})
	w := httptest.NewRecorder()

	handlers.Callback(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_state")
}

func TestAuthHandlers_Callback_MissingCode(t *testing.T) {
	handlers := &AuthHandlers{Svc: &mockAuthService{}}

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?state=test-state", nil)
	w := httptest.NewRecorder()

	handlers.Callback(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "missing_code")
}

func TestAuthHandlers_Callback_RedirectsToStoredPath(t *testing.T) {
	handlers := &AuthHandlers{Svc: &mockAuthService{}}

	req := callbackRequest("test-state", "test-nonce")
	req.AddCookie(&http.Cookie{Name: redirCookieName, Value: "/marketplace"})
	w := httptest.NewRecorder()

	handlers.Callback(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/marketplace", w.Header().Get("Location"))
}

func TestAuthHandlers_Logout(t *testing.T) {
	var loggedOut string
	handlers := &AuthHandlers{Svc: &mockAuthService{
		logoutFunc: func(_ context.Context, sessionID string) error {
			loggedOut = sessionID
			return nil
		},
	}}

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "session-1"})
	w := httptest.NewRecorder()

	handlers.Logout(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "session-1", loggedOut)

	resp := w.Result()
	defer resp.Body.Close()
	require.Len(t, resp.Cookies(), 1)
	assert.Negative(t, resp.Cookies()[0].MaxAge)
}

func TestAuthHandlers_Status_Authenticated(t *testing.T) {
	handlers := &AuthHandlers{Svc: &mockAuthService{}}

	req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "session-1"})
	w := httptest.NewRecorder()

	handlers.Status(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":true`)
	assert.Contains(t, w.Body.String(), `"test-user"`)
}

func TestAuthHandlers_Status_InvalidSession(t *testing.T) {
	handlers := &AuthHandlers{Svc: &mockAuthService{
		getSessionFunc: func(context.Context, string) (*domainauth.Session, error) {
			return nil, errors.New("session expired")
		},
	}}

	req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "stale"})
	w := httptest.NewRecorder()

	handlers.Status(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)
}

func TestSafeRedirectPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "/"},
		{"/marketplace", "/marketplace"},
		{"/jobs?tab=active", "/jobs?tab=active"},
		{"https://evil.example.com/", "/"},
		{"//evil.example.com", "/"},
		{"relative/path", "/"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, safeRedirectPath(tt.in), "input %q", tt.in)
	}
}
