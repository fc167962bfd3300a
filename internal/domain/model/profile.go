package model

import (
	"errors"
	"strings"
	"time"
)

// Profile represents a user account profile held by the platform API.
type Profile struct {
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	Bio         string    `json:"bio,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const maxBioLength = 2000

// UpdateProfileRequest represents a request to update mutable profile fields.
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

// Validate validates the UpdateProfileRequest fields.
func (r *UpdateProfileRequest) Validate() error {
	if r.DisplayName == nil && r.Bio == nil && r.AvatarURL == nil {
		return errors.New("no fields to update")
	}
	if r.DisplayName != nil && strings.TrimSpace(*r.DisplayName) == "" {
		return errors.New("display name cannot be empty")
	}
	if r.Bio != nil && len(*r.Bio) > maxBioLength {
		return errors.New("bio exceeds maximum length")
	}
	return nil
}
