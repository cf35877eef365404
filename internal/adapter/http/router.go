package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/otsbank/bankcore/internal/adapter/http/handler"
	"github.com/otsbank/bankcore/internal/adapter/http/middleware"
	"github.com/otsbank/bankcore/internal/infrastructure/auth"
	"github.com/otsbank/bankcore/internal/infrastructure/metrics"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler *handler.AccountHandler
	LedgerHandler  *handler.LedgerHandler
	CountryHandler *handler.CountryHandler
	AuditHandler   *handler.AuditHandler
	HealthHandler  *handler.HealthHandler
	JWTManager     *auth.JWTManager
	Metrics        *metrics.Metrics
	Logger         zerolog.Logger
	RateLimit      float64
	RateBurst      int
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.NewRecoveryMiddleware(cfg.Logger).Wrap)

	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}

	if cfg.RateLimit > 0 {
		r.Use(middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst).Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Identity is optional; unauthenticated mutations are audited
		// under the anonymous user.
		if cfg.JWTManager != nil {
			r.Use(middleware.OptionalAuth(cfg.JWTManager))
		}

		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Get("/{id}/transactions", cfg.LedgerHandler.ListByAccount)
			r.Post("/{id}/transactions/incoming", cfg.LedgerHandler.PostIncoming)
			r.Post("/{id}/transactions/outgoing", cfg.LedgerHandler.PostOutgoing)
		})

		// Countries
		r.Route("/countries", func(r chi.Router) {
			r.Get("/", cfg.CountryHandler.List)
			r.Post("/", cfg.CountryHandler.Create)
			r.Get("/{id}", cfg.CountryHandler.Get)
			r.Put("/{id}", cfg.CountryHandler.Update)
			r.Delete("/{id}", cfg.CountryHandler.Delete)
		})

		// Audit trail
		r.Get("/audit-logs", cfg.AuditHandler.List)
	})

	return r
}
