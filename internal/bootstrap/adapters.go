package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/gameforge/ui-api/config"
	"github.com/gameforge/ui-api/internal/adapters/gameforge"
	"github.com/gameforge/ui-api/internal/data"
)

// BuildPlatformClient constructs the GameForge platform API client.
func BuildPlatformClient(cfg config.PlatformConfig, logger *slog.Logger) (*gameforge.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("platform config: %w", err)
	}

	client, err := gameforge.NewClient(gameforge.Config{
		BaseURL:  cfg.BaseURL,
		APIToken: cfg.APIToken,
		Timeout:  cfg.Timeout,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build platform client: %w", err)
	}

	return client, nil
}

// BuildCacheRepo constructs the Redis-backed cache repository, or nil when
// caching is disabled or Redis is unavailable.
func BuildCacheRepo(cfg config.CacheConfig, client redis.UniversalClient, logger *slog.Logger) *data.RedisCacheRepo {
	if !cfg.Enabled || client == nil {
		if logger != nil {
			logger.Info("catalog cache disabled")
		}
		return nil
	}
	return data.NewRedisCacheRepo(client)
}
