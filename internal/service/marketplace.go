package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"
	"golang.org/x/sync/singleflight"

	"github.com/gameforge/ui-api/internal/core"
	"github.com/gameforge/ui-api/internal/domain/model"
	apperrors "github.com/gameforge/ui-api/internal/errors"
	"github.com/gameforge/ui-api/internal/observability/metrics"
)

// JMESPathEvaluator abstracts JMESPath operations for testability.
type JMESPathEvaluator interface {
	Validate(expr string) error
	Evaluate(expr string, data any) (any, error)
}

// jmespathLibEvaluator implements JMESPathEvaluator using go-jmespath.
type jmespathLibEvaluator struct{}

func (j jmespathLibEvaluator) Validate(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	_, err := jmespath.Compile(expr)
	return err
}

func (j jmespathLibEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

// defaultCatalogCacheTTL bounds staleness of cached marketplace pages.
const defaultCatalogCacheTTL = 30 * time.Second

// MarketplaceServiceOptions groups dependencies for MarketplaceService.
type MarketplaceServiceOptions struct {
	Catalog   core.AssetCatalog
	Cache     core.CacheRepository // optional
	CacheTTL  time.Duration        // optional, defaults to 30s
	Evaluator JMESPathEvaluator    // optional, defaults to go-jmespath
	Logger    *slog.Logger
}

// MarketplaceService provides marketplace browsing over the platform API with
// a short-lived Redis list cache and optional JMESPath metadata filtering.
type MarketplaceService struct {
	catalog  core.AssetCatalog
	cache    core.CacheRepository
	cacheTTL time.Duration
	flight   singleflight.Group
	jems     JMESPathEvaluator
	logger   *slog.Logger
}

// NewMarketplaceService constructs a new MarketplaceService.
func NewMarketplaceService(opts MarketplaceServiceOptions) (*MarketplaceService, error) {
	if opts.Catalog == nil {
		return nil, errors.New("AssetCatalog is required")
	}
	jems := opts.Evaluator
	if jems == nil {
		jems = jmespathLibEvaluator{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = defaultCatalogCacheTTL
	}
	return &MarketplaceService{
		catalog:  opts.Catalog,
		cache:    opts.Cache,
		cacheTTL: ttl,
		jems:     jems,
		logger:   logger,
	}, nil
}

// Browse returns one page of marketplace assets. Unfiltered pages are served
// from cache when fresh; filtered queries always hit the platform because the
// filter runs locally over the fetched page.
func (s *MarketplaceService) Browse(ctx context.Context, query model.AssetQuery) (*model.AssetPage, error) {
	query.Normalize()
	if err := query.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid asset query")
	}
	if query.Filter != "" {
		if err := s.jems.Validate(query.Filter); err != nil {
			return nil, apperrors.ValidationField("filter", fmt.Sprintf("invalid filter expression: %v", err))
		}
	}

	if query.Filter == "" && s.cache != nil {
		if page, ok := s.cachedPage(ctx, query); ok {
			metrics.RecordCatalogCacheHit()
			return page, nil
		}
		metrics.RecordCatalogCacheMiss()

		// Collapse concurrent misses for the same page into one upstream fetch.
		v, err, _ := s.flight.Do(s.cacheKey(query), func() (any, error) {
			page, err := s.catalog.ListAssets(ctx, query)
			if err != nil {
				return nil, err
			}
			s.storePage(ctx, query, page)
			return page, nil
		})
		if err != nil {
			return nil, fmt.Errorf("list assets: %w", err)
		}
		return v.(*model.AssetPage), nil
	}

	page, err := s.catalog.ListAssets(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}

	if query.Filter != "" {
		page = s.applyFilter(ctx, page, query.Filter)
	}

	return page, nil
}

// GetAsset returns a single marketplace listing by ID.
func (s *MarketplaceService) GetAsset(ctx context.Context, id string) (*model.Asset, error) {
	if id == "" {
		return nil, apperrors.ValidationField("id", "asset id is required")
	}
	asset, err := s.catalog.GetAsset(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get asset: %w", err)
	}
	return asset, nil
}

// applyFilter keeps only assets whose metadata satisfies the JMESPath
// expression (truthy result). Evaluation errors drop the asset and are
// logged rather than failing the whole page.
func (s *MarketplaceService) applyFilter(ctx context.Context, page *model.AssetPage, expr string) *model.AssetPage {
	filtered := make([]model.Asset, 0, len(page.Assets))
	for _, asset := range page.Assets {
		doc := asset.Metadata
		if doc == nil {
			doc = map[string]any{}
		}
		result, err := s.jems.Evaluate(expr, doc)
		if err != nil {
			s.logger.WarnContext(ctx, "metadata filter evaluation failed",
				"asset_id", asset.ID,
				"error", err)
			continue
		}
		if truthy(result) {
			filtered = append(filtered, asset)
		}
	}
	out := *page
	out.Assets = filtered
	out.Total = len(filtered)
	return &out
}

// truthy follows JMESPath semantics: false, null, empty string, empty
// collection are false.
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	default:
		return true
	}
}

func (s *MarketplaceService) cacheKey(query model.AssetQuery) string {
	return fmt.Sprintf("marketplace:assets:%s:%s:%d:%d",
		query.Search, query.AssetType, query.Offset, query.Limit)
}

func (s *MarketplaceService) cachedPage(ctx context.Context, query model.AssetQuery) (*model.AssetPage, bool) {
	raw, err := s.cache.Get(ctx, s.cacheKey(query))
	if err != nil {
		s.logger.WarnContext(ctx, "catalog cache read failed", "error", err)
		return nil, false
	}
	if raw == nil {
		return nil, false
	}
	var page model.AssetPage
	if err := json.Unmarshal(raw, &page); err != nil {
		s.logger.WarnContext(ctx, "catalog cache entry corrupt", "error", err)
		return nil, false
	}
	return &page, true
}

func (s *MarketplaceService) storePage(ctx context.Context, query model.AssetQuery, page *model.AssetPage) {
	raw, err := json.Marshal(page)
	if err != nil {
		return
	}
	// Best-effort; a cache write failure never fails the request.
	if err := s.cache.Set(ctx, s.cacheKey(query), raw, s.cacheTTL); err != nil {
		s.logger.WarnContext(ctx, "catalog cache write failed", "error", err)
	}
}
