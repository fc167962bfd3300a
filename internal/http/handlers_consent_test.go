package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gameforge/ui-api/internal/domain/model"
	apperrors "github.com/gameforge/ui-api/internal/errors"
)

// mockConsentService is a test double for service.ConsentService.
type mockConsentService struct {
	decideFunc  func(ctx context.Context, userID string, req *model.ConsentDecisionRequest) (*model.ConsentRecord, error)
	historyFunc func(ctx context.Context, userID string) ([]model.ConsentRecord, error)
	currentFunc func(ctx context.Context, userID string) (map[model.ConsentScope]model.ConsentRecord, error)
}

func (m *mockConsentService) Decide(
	ctx context.Context,
	userID string,
	req *model.ConsentDecisionRequest,
) (*model.ConsentRecord, error) {
	return m.decideFunc(ctx, userID, req)
}

func (m *mockConsentService) History(ctx context.Context, userID string) ([]model.ConsentRecord, error) {
	return m.historyFunc(ctx, userID)
}

func (m *mockConsentService) Current(
	ctx context.Context,
	userID string,
) (map[model.ConsentScope]model.ConsentRecord, error) {
	return m.currentFunc(ctx, userID)
}

func TestConsentHandlers_Decide(t *testing.T) {
	var gotReq *model.ConsentDecisionRequest
	handlers := &ConsentHandlers{Svc: &mockConsentService{
		decideFunc: func(_ context.Context, userID string, req *model.ConsentDecisionRequest) (*model.ConsentRecord, error) {
			gotReq = req
			return &model.ConsentRecord{
				ID:      "rec-1",
				UserID:  userID,
				Scope:   req.Scope,
				Granted: req.Granted,
				Source:  req.Source,
			}, nil
		},
	}}

	body := `{"scope":"training","granted":true}`
	req := withSession(
		httptest.NewRequest(http.MethodPost, "/api/consent", strings.NewReader(body)),
		memberSession(),
	)
	w := httptest.NewRecorder()

	handlers.Decide(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, model.ConsentScopeTraining, gotReq.Scope)
	assert.True(t, gotReq.Granted)
	// Source defaults when the client omits it.
	assert.Equal(t, "settings", gotReq.Source)
}

func TestConsentHandlers_Decide_InvalidScope(t *testing.T) {
	handlers := &ConsentHandlers{Svc: &mockConsentService{
		decideFunc: func(context.Context, string, *model.ConsentDecisionRequest) (*model.ConsentRecord, error) {
			return nil, apperrors.Validation("invalid consent scope")
		},
	}}

	body := `{"scope":"everything","granted":true}`
	req := withSession(
		httptest.NewRequest(http.MethodPost, "/api/consent", strings.NewReader(body)),
		memberSession(),
	)
	w := httptest.NewRecorder()

	handlers.Decide(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConsentHandlers_Decide_NoSession(t *testing.T) {
	handlers := &ConsentHandlers{Svc: &mockConsentService{}}

	req := httptest.NewRequest(http.MethodPost, "/api/consent", strings.NewReader(`{}`))
	w := httptest.NewRecorder()

	handlers.Decide(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestConsentHandlers_History_EmptyIsList(t *testing.T) {
	handlers := &ConsentHandlers{Svc: &mockConsentService{
		historyFunc: func(context.Context, string) ([]model.ConsentRecord, error) {
			return nil, nil
		},
	}}

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/consent", nil), memberSession())
	w := httptest.NewRecorder()

	handlers.History(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestConsentHandlers_Current(t *testing.T) {
	handlers := &ConsentHandlers{Svc: &mockConsentService{
		currentFunc: func(_ context.Context, userID string) (map[model.ConsentScope]model.ConsentRecord, error) {
			return map[model.ConsentScope]model.ConsentRecord{
				model.ConsentScopeTraining: {ID: "rec-1", UserID: userID, Scope: model.ConsentScopeTraining, Granted: true},
			}, nil
		},
	}}

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/consent/current", nil), memberSession())
	w := httptest.NewRecorder()

	handlers.Current(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"training"`)
}
