package core

import (
	"context"
	"time"

	"github.com/gameforge/ui-api/internal/domain/model"
)

// This file contains collaborator interface definitions (ports in hexagonal
// architecture). Service implementations depend on these interfaces, not on
// the platform API client or repositories directly.

// GenerationAPI defines the platform API operations for generation jobs.
// Job state is owned by the remote platform; this side only requests work
// and reads snapshots.
type GenerationAPI interface {
	RequestGeneration(ctx context.Context, req *model.GenerationRequest) (*model.GenerationJob, error)
	JobStatus(ctx context.Context, id string) (*model.GenerationJob, error)
	CancelGeneration(ctx context.Context, id string) error
}

// AssetCatalog defines read access to the marketplace catalog on the
// platform API.
type AssetCatalog interface {
	ListAssets(ctx context.Context, query model.AssetQuery) (*model.AssetPage, error)
	GetAsset(ctx context.Context, id string) (*model.Asset, error)
}

// ProfileAPI defines account profile operations on the platform API.
type ProfileAPI interface {
	GetProfile(ctx context.Context, userID string) (*model.Profile, error)
	UpdateProfile(ctx context.Context, userID string, req *model.UpdateProfileRequest) (*model.Profile, error)
}

// ConsentRepository defines the interface for the local consent audit store.
// Records are append-only; a changed decision appends a new record.
type ConsentRepository interface {
	Record(ctx context.Context, rec *model.ConsentRecord) error
	ListByUser(ctx context.Context, userID string) ([]model.ConsentRecord, error)
	LatestByScope(ctx context.Context, userID string) (map[model.ConsentScope]model.ConsentRecord, error)
}

// CacheRepository defines the interface for byte-oriented cache operations.
type CacheRepository interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) (bool, error)
}
