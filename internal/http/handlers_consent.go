package httpx

import (
	"context"
	"net/http"

	"github.com/gameforge/ui-api/internal/domain/model"
)

// ConsentServiceInterface defines the consent operations the consent
// handlers depend on.
type ConsentServiceInterface interface {
	Decide(ctx context.Context, userID string, req *model.ConsentDecisionRequest) (*model.ConsentRecord, error)
	History(ctx context.Context, userID string) ([]model.ConsentRecord, error)
	Current(ctx context.Context, userID string) (map[model.ConsentScope]model.ConsentRecord, error)
}

// ConsentHandlers provides HTTP handlers for consent bookkeeping.
type ConsentHandlers struct {
	Svc ConsentServiceInterface
}

// Decide handles POST /api/consent. Each decision is appended to the audit
// history; nothing is overwritten.
func (h *ConsentHandlers) Decide(w http.ResponseWriter, r *http.Request) {
	session, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		writeNoSession(w)
		return
	}

	var req model.ConsentDecisionRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Source == "" {
		req.Source = "settings"
	}

	rec, err := h.Svc.Decide(r.Context(), session.UserID, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, rec)
}

// History handles GET /api/consent. It returns the full decision history,
// newest first.
func (h *ConsentHandlers) History(w http.ResponseWriter, r *http.Request) {
	session, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		writeNoSession(w)
		return
	}

	records, err := h.Svc.History(r.Context(), session.UserID)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if records == nil {
		records = []model.ConsentRecord{}
	}

	WriteJSON(w, http.StatusOK, records)
}

// Current handles GET /api/consent/current. It returns the latest decision
// per scope.
func (h *ConsentHandlers) Current(w http.ResponseWriter, r *http.Request) {
	session, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		writeNoSession(w)
		return
	}

	current, err := h.Svc.Current(r.Context(), session.UserID)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if current == nil {
		current = map[model.ConsentScope]model.ConsentRecord{}
	}

	WriteJSON(w, http.StatusOK, current)
}
