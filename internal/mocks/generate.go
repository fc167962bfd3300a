// Package mocks provides mock implementations for testing the GameForge UI API.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockAPI := mocks.NewMockGenerationAPI(ctrl)
//	mockAPI.EXPECT().JobStatus(gomock.Any(), gomock.Any()).Return(job, nil)
package mocks

// Generate mock for GenerationAPI interface from internal/core package.
// This creates MockGenerationAPI with methods:
// RequestGeneration, JobStatus, CancelGeneration
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=generation_api_mock.go github.com/gameforge/ui-api/internal/core GenerationAPI

// Generate mock for AssetCatalog interface from internal/core package.
// This creates MockAssetCatalog with methods:
// ListAssets, GetAsset
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=asset_catalog_mock.go github.com/gameforge/ui-api/internal/core AssetCatalog

// Generate mock for ProfileAPI interface from internal/core package.
// This creates MockProfileAPI with methods:
// GetProfile, UpdateProfile
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=profile_api_mock.go github.com/gameforge/ui-api/internal/core ProfileAPI

// Generate mock for ConsentRepository interface from internal/core package.
// This creates MockConsentRepository with methods:
// Record, ListByUser, LatestByScope
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=consent_repository_mock.go github.com/gameforge/ui-api/internal/core ConsentRepository

// Generate mock for CacheRepository interface from internal/core package.
// This creates MockCacheRepository with methods:
// Set, Get, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=cache_repository_mock.go github.com/gameforge/ui-api/internal/core CacheRepository
