package api

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/charlesng35/kurukshetra/internal/app"
	iauth "github.com/charlesng35/kurukshetra/internal/auth"
	"github.com/charlesng35/kurukshetra/internal/handlers"
	"github.com/charlesng35/kurukshetra/internal/middleware"
	"github.com/charlesng35/kurukshetra/internal/monitoring"
	"github.com/charlesng35/kurukshetra/internal/permissions"
	"github.com/charlesng35/kurukshetra/internal/realtime"
)

// Dependencies bundles what the router needs from the runtime.
type Dependencies struct {
	Config   *app.Config
	Services *Services
	Tokens   *iauth.JWTService
	// RateStore backs the login rate limiter. Nil selects an in-memory store.
	RateStore middleware.RateStore
	// Health serves /health. Nil registers a database probe only.
	Health *monitoring.HealthManager
	// Live fans match changes out to /api/live viewers. Nil creates a hub.
	Live *realtime.Hub
	// Notifier is told about contact form submissions. Optional.
	Notifier handlers.ContactNotifier
}

// NewRouter builds the Gin engine, wires middleware and registers every route.
func NewRouter(deps Dependencies) (*gin.Engine, error) {
	if deps.Config == nil {
		return nil, errors.New("config must be provided")
	}
	if deps.Services == nil {
		return nil, errors.New("services must be provided")
	}
	if deps.Tokens == nil {
		return nil, errors.New("jwt service must be provided")
	}
	cfg := deps.Config
	svc := deps.Services

	r := gin.New()
	r.HandleMethodNotAllowed = true

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowedOrigins...))

	health := deps.Health
	if health == nil {
		health = svc.DefaultHealth(cfg.Monitoring.Health.Timeout)
	}
	registerHealthRoutes(r, cfg, health)

	if cfg.Monitoring.Prometheus.Enabled {
		endpoint := strings.TrimSpace(cfg.Monitoring.Prometheus.Endpoint)
		if endpoint == "" {
			endpoint = "/metrics"
		}
		r.GET(endpoint, gin.WrapH(promhttp.Handler()))
	}

	checker := permissions.NewChecker(svc.Sports)
	requireAuth := middleware.Authenticate(deps.Tokens, svc.Users)

	loginLimiter := func(c *gin.Context) { c.Next() }
	if limit := cfg.Server.RateLimit; limit.Enabled {
		loginLimiter = middleware.RateLimit(deps.RateStore, limit.Requests, limit.Window)
	}

	live := deps.Live
	if live == nil {
		live = realtime.NewHub(cfg.Server.CORS.AllowedOrigins...)
	}

	api := r.Group("/api")
	api.GET("/live", handlers.NewLiveHandler(live).Stream)

	registerAuthRoutes(api, authRouteDeps{
		AuthHandler:  handlers.NewAuthHandler(svc.Users, deps.Tokens),
		UserHandler:  handlers.NewUserHandler(svc.Users),
		Checker:      checker,
		RequireAuth:  requireAuth,
		LoginLimiter: loginLimiter,
	})
	registerSportRoutes(api, handlers.NewSportHandler(svc.Sports), checker, requireAuth)
	registerMatchRoutes(api, handlers.NewMatchHandler(svc.Matches, checker, live), checker, requireAuth)
	registerEventRoutes(api, handlers.NewEventHandler(svc.Events), checker, requireAuth)
	registerGalleryRoutes(api, handlers.NewGalleryHandler(svc.Gallery), checker, requireAuth)
	registerContactRoutes(api, handlers.NewContactHandler(svc.Contact, deps.Notifier), checker, requireAuth)

	r.NoRoute(middleware.NotFoundHandler)
	r.NoMethod(middleware.MethodNotAllowedHandler)

	return r, nil
}
