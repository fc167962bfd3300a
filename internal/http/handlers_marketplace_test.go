package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/gameforge/ui-api/internal/domain/auth"
	"github.com/gameforge/ui-api/internal/domain/model"
	apperrors "github.com/gameforge/ui-api/internal/errors"
)

// mockMarketplaceService is a test double for service.MarketplaceService.
type mockMarketplaceService struct {
	browseFunc   func(ctx context.Context, query model.AssetQuery) (*model.AssetPage, error)
	getAssetFunc func(ctx context.Context, id string) (*model.Asset, error)
}

func (m *mockMarketplaceService) Browse(ctx context.Context, query model.AssetQuery) (*model.AssetPage, error) {
	return m.browseFunc(ctx, query)
}

func (m *mockMarketplaceService) GetAsset(ctx context.Context, id string) (*model.Asset, error) {
	return m.getAssetFunc(ctx, id)
}

func memberSession() *domainauth.Session {
	return &domainauth.Session{
		ID:        "session-1",
		UserID:    "user-1",
		Role:      domainauth.RoleMember,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func withSession(req *http.Request, session *domainauth.Session) *http.Request {
	return req.WithContext(SetSessionInContext(req.Context(), session))
}

func TestMarketplaceHandlers_List(t *testing.T) {
	var gotQuery model.AssetQuery
	handlers := &MarketplaceHandlers{Svc: &mockMarketplaceService{
		browseFunc: func(_ context.Context, query model.AssetQuery) (*model.AssetPage, error) {
			gotQuery = query
			return &model.AssetPage{
				Assets: []model.Asset{{ID: "asset-1", Name: "Crystal Sword"}},
				Total:  1,
				Offset: query.Offset,
				Limit:  query.Limit,
			}, nil
		},
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/assets?search=sword&type=model3d&limit=10&offset=20", nil)
	w := httptest.NewRecorder()

	handlers.List(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sword", gotQuery.Search)
	assert.Equal(t, "model3d", gotQuery.AssetType)
	assert.Equal(t, 10, gotQuery.Limit)
	assert.Equal(t, 20, gotQuery.Offset)
	assert.Contains(t, w.Body.String(), "Crystal Sword")
}

func TestMarketplaceHandlers_List_FilterRequiresAuth(t *testing.T) {
	handlers := &MarketplaceHandlers{Svc: &mockMarketplaceService{}}

	req := httptest.NewRequest(http.MethodGet, "/api/assets?filter=rigged", nil)
	w := httptest.NewRecorder()

	handlers.List(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "authentication_required")
}

func TestMarketplaceHandlers_List_FilterWithSession(t *testing.T) {
	var gotQuery model.AssetQuery
	handlers := &MarketplaceHandlers{Svc: &mockMarketplaceService{
		browseFunc: func(_ context.Context, query model.AssetQuery) (*model.AssetPage, error) {
			gotQuery = query
			return &model.AssetPage{}, nil
		},
	}}

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/assets?filter=rigged", nil), memberSession())
	w := httptest.NewRecorder()

	handlers.List(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "rigged", gotQuery.Filter)
}

func TestMarketplaceHandlers_List_InvalidPagination(t *testing.T) {
	handlers := &MarketplaceHandlers{Svc: &mockMarketplaceService{}}

	req := httptest.NewRequest(http.MethodGet, "/api/assets?limit=lots", nil)
	w := httptest.NewRecorder()

	handlers.List(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_limit")
}

func TestMarketplaceHandlers_Get_NotFound(t *testing.T) {
	handlers := &MarketplaceHandlers{Svc: &mockMarketplaceService{
		getAssetFunc: func(context.Context, string) (*model.Asset, error) {
			return nil, apperrors.NotFound("asset not found")
		},
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/assets/missing", nil)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()

	handlers.Get(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
