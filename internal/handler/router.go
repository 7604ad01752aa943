package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/prn-tf/wilayah/internal/auth"
	"github.com/prn-tf/wilayah/internal/metrics"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Router assembles the full HTTP surface.
type Router struct {
	authHandler     *AuthHandler
	provinceHandler *ProvinceHandler
	districtHandler *DistrictHandler
	photoHandler    *PhotoHandler
	authMiddleware  *auth.Middleware
	db              HealthChecker
	logger          zerolog.Logger
}

// RouterConfig contains configuration for the router.
type RouterConfig struct {
	AuthHandler     *AuthHandler
	ProvinceHandler *ProvinceHandler
	DistrictHandler *DistrictHandler
	PhotoHandler    *PhotoHandler
	AuthMiddleware  *auth.Middleware
	DB              HealthChecker
	Logger          zerolog.Logger
}

// NewRouter creates a new Router.
func NewRouter(cfg RouterConfig) *Router {
	return &Router{
		authHandler:     cfg.AuthHandler,
		provinceHandler: cfg.ProvinceHandler,
		districtHandler: cfg.DistrictHandler,
		photoHandler:    cfg.PhotoHandler,
		authMiddleware:  cfg.AuthMiddleware,
		db:              cfg.DB,
		logger:          cfg.Logger.With().Str("component", "router").Logger(),
	}
}

// Handler returns the main HTTP handler.
func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(rt.logger))
	r.Use(metrics.Middleware)

	// Health check (no auth)
	r.Get("/healthz", rt.handleHealth)

	// Public pages
	rt.authHandler.RegisterPublicRoutes(r)

	// Login and register bounce users that already hold a session
	r.Group(func(r chi.Router) {
		r.Use(rt.authMiddleware.RedirectIfAuthenticated)
		rt.authHandler.RegisterCredentialRoutes(r)
	})

	// Authenticated pages
	r.Group(func(r chi.Router) {
		r.Use(rt.authMiddleware.RequireSession)
		rt.provinceHandler.RegisterRoutes(r)
		rt.districtHandler.RegisterRoutes(r)
		rt.photoHandler.RegisterRoutes(r)
	})

	return r
}

// handleHealth reports service and database health.
func (rt *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if rt.db != nil {
		if err := rt.db.Health(r.Context()); err != nil {
			rt.logger.Error().Err(err).Msg("health check failed")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unhealthy"}`))
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}
