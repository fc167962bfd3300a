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

// AccountServiceOptions groups dependencies for AccountService.
type AccountServiceOptions struct {
	Profiles core.ProfileAPI
	Logger   *slog.Logger
}

// AccountService provides profile operations, a thin validated passthrough
// to the platform API.
type AccountService struct {
	profiles core.ProfileAPI
	logger   *slog.Logger
}

// NewAccountService constructs a new AccountService.
func NewAccountService(opts AccountServiceOptions) (*AccountService, error) {
	if opts.Profiles == nil {
		return nil, errors.New("ProfileAPI is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountService{profiles: opts.Profiles, logger: logger}, nil
}

// GetProfile returns the profile for a user.
func (s *AccountService) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	if userID == "" {
		return nil, apperrors.ValidationField("user_id", "user id is required")
	}
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

// UpdateProfile validates and applies a partial profile update.
func (s *AccountService) UpdateProfile(ctx context.Context, userID string, req *model.UpdateProfileRequest) (*model.Profile, error) {
	if userID == "" {
		return nil, apperrors.ValidationField("user_id", "user id is required")
	}
	if req == nil {
		return nil, apperrors.Validation("update request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid profile update")
	}

	profile, err := s.profiles.UpdateProfile(ctx, userID, req)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.logger.InfoContext(ctx, "profile updated", "user_id", userID)
	return profile, nil
}
