package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gameforge/ui-api/internal/domain/model"
)

// MarketplaceServiceInterface defines the marketplace operations the
// marketplace handlers depend on.
type MarketplaceServiceInterface interface {
	Browse(ctx context.Context, query model.AssetQuery) (*model.AssetPage, error)
	GetAsset(ctx context.Context, id string) (*model.Asset, error)
}

// MarketplaceHandlers provides HTTP handlers for marketplace browsing.
type MarketplaceHandlers struct {
	Svc    MarketplaceServiceInterface
	Logger *slog.Logger
}

// List handles GET /api/assets. The metadata filter expression is reserved
// for authenticated users; guests browse and search without it.
func (h *MarketplaceHandlers) List(w http.ResponseWriter, r *http.Request) {
	query, ok := parseAssetQuery(w, r)
	if !ok {
		return
	}

	if query.Filter != "" && IsGuestUser(r.Context()) {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("metadata filters require authentication"),
		})
		return
	}

	page, err := h.Svc.Browse(r.Context(), query)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, page)
}

// Get handles GET /api/assets/{id}.
func (h *MarketplaceHandlers) Get(w http.ResponseWriter, r *http.Request) {
	asset, err := h.Svc.GetAsset(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, asset)
}

func parseAssetQuery(w http.ResponseWriter, r *http.Request) (model.AssetQuery, bool) {
	q := r.URL.Query()
	query := model.AssetQuery{
		Search:    q.Get("search"),
		AssetType: q.Get("type"),
		Filter:    q.Get("filter"),
	}

	for name, dst := range map[string]*int{
		"offset": &query.Offset,
		"limit":  &query.Limit,
	} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "invalid_" + name,
				Err:     errors.New(name + " must be a non-negative integer"),
			})
			return model.AssetQuery{}, false
		}
		*dst = v
	}

	return query, true
}
