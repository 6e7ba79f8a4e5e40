// Package api provides the HTTP API for CityPulse.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/citypulse/citypulse/internal/analysis"
	"github.com/citypulse/citypulse/internal/api/handler"
	"github.com/citypulse/citypulse/internal/api/middleware"
	"github.com/citypulse/citypulse/internal/catalog"
	"github.com/citypulse/citypulse/internal/provider/resilience"
	"github.com/citypulse/citypulse/internal/simulation"
	"github.com/citypulse/citypulse/internal/traffic"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version          string
	BuildTime        string
	Logger           zerolog.Logger
	ServiceName      string
	Metrics          *middleware.Metrics
	Catalog          catalog.Repository
	TrafficService   *traffic.Service
	SimulationEngine *simulation.Engine
	AnalysisService  *analysis.Service
	Registry         *resilience.Registry
	ReadyChecks      map[string]handler.ReadyCheck
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "citypulse-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Registry, cfg.ReadyChecks)
	metadataHandler := handler.NewMetadataHandler(cfg.Catalog)
	trafficHandler := handler.NewTrafficHandler(cfg.TrafficService)
	simulationHandler := handler.NewSimulationHandler(cfg.SimulationEngine, cfg.TrafficService, cfg.AnalysisService, cfg.Logger)
	analysisHandler := handler.NewAnalysisHandler(cfg.AnalysisService)
	cityProfileHandler := handler.NewCityProfileHandler()

	// Create rate limit middleware for different endpoint categories
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/status", opsHandler.SystemStatus)
		})

		// Metadata endpoints - standard rate limiting
		r.Route("/metadata", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/areas", metadataHandler.ListAreas)
			r.Get("/enums", metadataHandler.GetEnums)
		})

		// City profiles - derived on demand, standard rate limiting
		r.With(standardRateLimit).Get("/cities/{cityName}/profile", cityProfileHandler.GetProfile)

		// Traffic aggregation fans out to external feeds per area
		r.With(expensiveRateLimit).Post("/traffic:aggregate", trafficHandler.AggregateTraffic)

		// Simulation runs may pull live traffic and call the analysis backend
		r.With(expensiveRateLimit).Post("/simulations:run", simulationHandler.RunSimulation)

		// Standalone analysis of arbitrary payloads
		r.With(expensiveRateLimit).Post("/analysis", analysisHandler.Analyze)
	})

	return r
}
