package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gameforge/ui-api/internal/core"
	"github.com/gameforge/ui-api/internal/domain/model"
	apperrors "github.com/gameforge/ui-api/internal/errors"
)

// ConsentServiceOptions groups dependencies for ConsentService.
type ConsentServiceOptions struct {
	Repo   core.ConsentRepository
	Logger *slog.Logger
}

// ConsentService records and reports user consent decisions. The log is
// append-only; a changed decision appends a new record and the latest record
// per scope is authoritative.
type ConsentService struct {
	repo   core.ConsentRepository
	logger *slog.Logger
}

// NewConsentService constructs a new ConsentService.
func NewConsentService(opts ConsentServiceOptions) (*ConsentService, error) {
	if opts.Repo == nil {
		return nil, errors.New("ConsentRepository is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ConsentService{repo: opts.Repo, logger: logger}, nil
}

// Decide records one consent decision for a user.
func (s *ConsentService) Decide(ctx context.Context, userID string, req *model.ConsentDecisionRequest) (*model.ConsentRecord, error) {
	if userID == "" {
		return nil, apperrors.ValidationField("user_id", "user id is required")
	}
	if req == nil {
		return nil, apperrors.Validation("consent decision is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid consent decision")
	}

	rec := &model.ConsentRecord{
		UserID:  userID,
		Scope:   req.Scope,
		Granted: req.Granted,
		Source:  req.Source,
	}
	if err := s.repo.Record(ctx, rec); err != nil {
		return nil, fmt.Errorf("record consent: %w", err)
	}
	return rec, nil
}

// History returns a user's full consent audit trail, newest first.
func (s *ConsentService) History(ctx context.Context, userID string) ([]model.ConsentRecord, error) {
	if userID == "" {
		return nil, apperrors.ValidationField("user_id", "user id is required")
	}
	records, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list consent records: %w", err)
	}
	return records, nil
}

// Current returns the authoritative decision per scope. Scopes the user never
// decided on report granted=false with no record.
func (s *ConsentService) Current(ctx context.Context, userID string) (map[model.ConsentScope]model.ConsentRecord, error) {
	if userID == "" {
		return nil, apperrors.ValidationField("user_id", "user id is required")
	}
	latest, err := s.repo.LatestByScope(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("latest consent by scope: %w", err)
	}
	return latest, nil
}

// HasGranted reports whether the user's latest decision for the scope grants it.
func (s *ConsentService) HasGranted(ctx context.Context, userID string, scope model.ConsentScope) (bool, error) {
	latest, err := s.Current(ctx, userID)
	if err != nil {
		return false, err
	}
	rec, ok := latest[scope]
	return ok && rec.Granted, nil
}
