package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/gameforge/ui-api/config"
	"github.com/gameforge/ui-api/internal/core"
	"github.com/gameforge/ui-api/internal/data"
	"github.com/gameforge/ui-api/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Tracking    *service.TrackingService
	Marketplace *service.MarketplaceService
	Account     *service.AccountService
	Consent     *service.ConsentService
	Auth        *service.AuthService
	CacheRepo   *data.RedisCacheRepo
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices builds the full service container from shared infrastructure.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps with config are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	platform, err := BuildPlatformClient(deps.Config.Platform, logger)
	if err != nil {
		return ServiceContainer{}, err
	}

	cacheRepo := BuildCacheRepo(deps.Config.Cache, deps.RedisClient, logger)

	trackingSvc, err := service.NewTrackingService(service.TrackingServiceOptions{
		API: platform,
		Config: service.TrackingConfig{
			DefaultCadence: deps.Config.Tracking.DefaultCadence,
			DefaultTimeout: deps.Config.Tracking.DefaultTimeout,
			MinCadence:     deps.Config.Tracking.MinCadence,
			MaxTimeout:     deps.Config.Tracking.MaxTimeout,
		},
		Logger: logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build tracking service: %w", err)
	}

	// The cache repo is optional; a nil interface keeps the service cacheless.
	var cache core.CacheRepository
	if cacheRepo != nil {
		cache = cacheRepo
	}
	marketplaceSvc, err := service.NewMarketplaceService(service.MarketplaceServiceOptions{
		Catalog:  platform,
		Cache:    cache,
		CacheTTL: deps.Config.Cache.CatalogTTL,
		Logger:   logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build marketplace service: %w", err)
	}

	accountSvc, err := service.NewAccountService(service.AccountServiceOptions{
		Profiles: platform,
		Logger:   logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build account service: %w", err)
	}

	consentSvc, err := service.NewConsentService(service.ConsentServiceOptions{
		Repo:   data.NewConsentRepo(deps.DB, logger),
		Logger: logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build consent service: %w", err)
	}

	authSvc := BuildAuthService(AuthConfig{
		Auth:        deps.Config.Auth,
		RedisClient: deps.RedisClient,
		Logger:      logger,
	})

	return ServiceContainer{
		Tracking:    trackingSvc,
		Marketplace: marketplaceSvc,
		Account:     accountSvc,
		Consent:     consentSvc,
		Auth:        authSvc,
		CacheRepo:   cacheRepo,
	}, nil
}

// ServiceOrchestrationConfig groups everything needed to run the service.
type ServiceOrchestrationConfig struct {
	Config      *config.AppConfig
	Services    ServiceContainer
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// RunServicesWithShutdown starts the HTTP server and blocks until a shutdown
// signal arrives or the server fails, then stops everything in order: HTTP
// first so no new tracks start, then the in-flight tracking goroutines.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("service orchestration config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	errCh := make(chan error, 1)
	server := StartHTTPServer(&HTTPServerConfig{
		Config:   cfg.Config,
		Services: cfg.Services,
		DB:       cfg.DB,
		Logger:   logger,
		ErrCh:    errCh,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var runErr error
	select {
	case <-quit:
		logger.Info("shutting down services...")
	case err := <-errCh:
		logger.Error("http server error", "error", err)
		runErr = err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWaitTimeout)
	defer cancel()

	if err := ShutdownHTTPServer(ShutdownConfig{
		Context: shutdownCtx,
		Server:  server,
		Logger:  logger,
	}); err != nil {
		logger.Error("http shutdown failed", "error", err)
		if runErr == nil {
			runErr = err
		}
	}

	if cfg.Services.Tracking != nil {
		graceCtx, graceCancel := context.WithTimeout(context.Background(), cfg.Config.Tracking.ShutdownGrace)
		defer graceCancel()
		if err := cfg.Services.Tracking.Shutdown(graceCtx); err != nil {
			logger.Warn("tracking shutdown incomplete", "error", err)
		}
	}

	return runErr
}

// serverError wraps http.ErrServerClosed filtering for the error channel.
func serverError(err error) error {
	if err == nil || errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
