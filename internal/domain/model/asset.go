package model

import (
	"errors"
	"time"
)

// Asset represents a marketplace listing returned by the platform API.
type Asset struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	AssetType   string         `json:"asset_type"`
	CreatorID   string         `json:"creator_id"`
	PriceCents  int64          `json:"price_cents"`
	Currency    string         `json:"currency"`
	Tags        []string       `json:"tags,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	PublishedAt time.Time      `json:"published_at"`
}

// AssetPage is one page of marketplace results.
type AssetPage struct {
	Assets []Asset `json:"assets"`
	Total  int     `json:"total"`
	Offset int     `json:"offset"`
	Limit  int     `json:"limit"`
}

// Marketplace query limits.
const (
	DefaultAssetPageLimit = 25
	MaxAssetPageLimit     = 100
)

// AssetQuery describes a marketplace browse/search request.
type AssetQuery struct {
	// Search is a free-text query forwarded to the platform API.
	Search string
	// AssetType narrows results to one asset type (model3d, texture, audio, ...).
	AssetType string
	// Filter is an optional JMESPath expression evaluated against each asset's
	// metadata document. Only available to authenticated users.
	Filter string
	Offset int
	Limit  int
}

// Normalize clamps pagination values into the allowed range.
func (q *AssetQuery) Normalize() {
	if q.Limit <= 0 {
		q.Limit = DefaultAssetPageLimit
	}
	if q.Limit > MaxAssetPageLimit {
		q.Limit = MaxAssetPageLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
}

// Validate validates the AssetQuery fields.
func (q *AssetQuery) Validate() error {
	if q.Limit < 0 {
		return errors.New("limit must be >= 0")
	}
	if q.Offset < 0 {
		return errors.New("offset must be >= 0")
	}
	return nil
}
