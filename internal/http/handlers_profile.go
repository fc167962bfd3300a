package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/gameforge/ui-api/internal/domain/model"
)

// AccountServiceInterface defines the account operations the profile
// handlers depend on.
type AccountServiceInterface interface {
	GetProfile(ctx context.Context, userID string) (*model.Profile, error)
	UpdateProfile(ctx context.Context, userID string, req *model.UpdateProfileRequest) (*model.Profile, error)
}

// ProfileHandlers provides HTTP handlers for the signed-in user's profile.
type ProfileHandlers struct {
	Svc AccountServiceInterface
}

// Get handles GET /api/profile.
func (h *ProfileHandlers) Get(w http.ResponseWriter, r *http.Request) {
	session, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		writeNoSession(w)
		return
	}

	profile, err := h.Svc.GetProfile(r.Context(), session.UserID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, profile)
}

// Update handles PUT /api/profile.
func (h *ProfileHandlers) Update(w http.ResponseWriter, r *http.Request) {
	session, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		writeNoSession(w)
		return
	}

	var req model.UpdateProfileRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	profile, err := h.Svc.UpdateProfile(r.Context(), session.UserID, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, profile)
}

func writeNoSession(w http.ResponseWriter) {
	WriteError(w, ErrorParams{
		Code:    http.StatusUnauthorized,
		ErrCode: "authentication_required",
		Err:     errors.New("authentication required"),
	})
}
