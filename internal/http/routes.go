package httpx

import (
	"database/sql"
	"log/slog"
	"net/http"

	domainauth "github.com/gameforge/ui-api/internal/domain/auth"
	"github.com/gameforge/ui-api/internal/observability/metrics"
	"github.com/gameforge/ui-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Tracking    *service.TrackingService
	Marketplace *service.MarketplaceService
	Account     *service.AccountService
	Consent     *service.ConsentService
	Auth        *service.AuthService

	CookieDomain string
	// Optional health probes
	DB    *sql.DB
	Cache HealthChecker

	Logger *slog.Logger
}

// NewRouter creates and configures the HTTP router with the standard
// middleware chain.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	var authSvc AuthServiceInterface
	if services.Auth != nil {
		authSvc = services.Auth
	}

	registerJobRoutes(mux, &JobHandlers{Svc: services.Tracking, Logger: logger}, authSvc)
	registerMarketplaceRoutes(mux, &MarketplaceHandlers{Svc: services.Marketplace, Logger: logger}, authSvc)
	registerProfileRoutes(mux, &ProfileHandlers{Svc: services.Account}, authSvc)
	registerConsentRoutes(mux, &ConsentHandlers{Svc: services.Consent}, authSvc)

	if authSvc != nil {
		registerAuthRoutes(mux, &AuthHandlers{
			Svc:          authSvc,
			CookieDomain: services.CookieDomain,
			Logger:       logger,
		})
	}

	healthHandlers := &HealthHandlers{DB: services.DB, Cache: services.Cache}
	mux.HandleFunc("GET /healthz", healthHandlers.Health)
	mux.HandleFunc("HEAD /healthz", healthHandlers.Health)
	mux.Handle("GET /metrics", metrics.Handler())

	return Recover(logger)(Logging(logger)(RequestMetrics()(mux)))
}

// requireRoleOrPass builds a nil-safe middleware: with auth wired the route
// demands at least the given role, without it the route stays open (dev mode).
func requireRoleOrPass(auth AuthServiceInterface, role domainauth.Role) func(http.Handler) http.Handler {
	if auth == nil {
		return func(h http.Handler) http.Handler { return h }
	}
	return RequireRole(auth, role)
}

func optionalAuthOrPass(auth AuthServiceInterface) func(http.Handler) http.Handler {
	if auth == nil {
		return func(h http.Handler) http.Handler { return h }
	}
	return OptionalAuth(auth)
}

func registerJobRoutes(mux *http.ServeMux, h *JobHandlers, auth AuthServiceInterface) {
	creator := requireRoleOrPass(auth, domainauth.RoleCreator)
	member := requireRoleOrPass(auth, domainauth.RoleMember)

	mux.Handle("POST /api/generations", creator(http.HandlerFunc(h.Submit)))
	mux.Handle("POST /api/generations/{id}/track", creator(http.HandlerFunc(h.Follow)))
	mux.Handle("GET /api/generations/{id}", member(http.HandlerFunc(h.Get)))
	mux.Handle("GET /api/generations/{id}/progress", member(http.HandlerFunc(h.Progress)))
	mux.Handle("GET /api/generations/{id}/result", member(http.HandlerFunc(h.Result)))
	mux.Handle("DELETE /api/generations/{id}", creator(http.HandlerFunc(h.Cancel)))
}

func registerMarketplaceRoutes(mux *http.ServeMux, h *MarketplaceHandlers, auth AuthServiceInterface) {
	// Browsing is public; OptionalAuth lets signed-in users unlock filters.
	wrap := optionalAuthOrPass(auth)
	mux.Handle("GET /api/assets", wrap(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/assets/{id}", wrap(http.HandlerFunc(h.Get)))
}

func registerProfileRoutes(mux *http.ServeMux, h *ProfileHandlers, auth AuthServiceInterface) {
	member := requireRoleOrPass(auth, domainauth.RoleMember)
	mux.Handle("GET /api/profile", member(http.HandlerFunc(h.Get)))
	mux.Handle("PUT /api/profile", member(http.HandlerFunc(h.Update)))
}

func registerConsentRoutes(mux *http.ServeMux, h *ConsentHandlers, auth AuthServiceInterface) {
	member := requireRoleOrPass(auth, domainauth.RoleMember)
	mux.Handle("POST /api/consent", member(http.HandlerFunc(h.Decide)))
	mux.Handle("GET /api/consent", member(http.HandlerFunc(h.History)))
	mux.Handle("GET /api/consent/current", member(http.HandlerFunc(h.Current)))
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("GET /auth/login", h.Login)
	mux.HandleFunc("GET /auth/callback", h.Callback)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("GET /auth/status", h.Status)
}
