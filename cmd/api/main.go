// Package main provides the entrypoint for the CityPulse API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/citypulse/citypulse/internal/analysis"
	"github.com/citypulse/citypulse/internal/analysis/openai"
	"github.com/citypulse/citypulse/internal/api"
	"github.com/citypulse/citypulse/internal/api/handler"
	"github.com/citypulse/citypulse/internal/api/middleware"
	"github.com/citypulse/citypulse/internal/catalog"
	"github.com/citypulse/citypulse/internal/database"
	"github.com/citypulse/citypulse/internal/provider/resilience"
	"github.com/citypulse/citypulse/internal/simulation"
	"github.com/citypulse/citypulse/internal/telemetry"
	"github.com/citypulse/citypulse/internal/traffic"
	"github.com/citypulse/citypulse/internal/traffic/tomtom"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "citypulse-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting CityPulse API")

	// Get configuration from environment
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryEnabled {
		log.Info().
			Str("otlp_endpoint", otlpEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	providerMetrics, err := middleware.NewProviderMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize provider metrics")
		os.Exit(1)
	}

	registry := resilience.NewRegistry()
	readyChecks := map[string]handler.ReadyCheck{}

	// Area catalog: Postgres when configured, otherwise the seeded
	// in-memory district set.
	var areaCatalog catalog.Repository
	if os.Getenv("DB_HOST") != "" {
		dbConfig := database.ConfigFromEnv()
		pool, err := database.Connect(ctx, dbConfig)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		log.Info().
			Str("host", dbConfig.Host).
			Int("port", dbConfig.Port).
			Str("database", dbConfig.Database).
			Msg("database connected")

		areaCatalog = catalog.NewPostgresRepository(pool)
		readyChecks["database"] = pool.Ping
	} else {
		areaCatalog = catalog.NewInMemoryRepository()
		log.Info().Msg("using in-memory area catalog")
	}

	// Traffic feed adapters (may be nil if not configured). The pipeline
	// degrades per area when a feed is absent or failing.
	var flowProvider traffic.FlowProvider
	var incidentProvider traffic.IncidentProvider
	if apiKey := os.Getenv("TOMTOM_API_KEY"); apiKey != "" {
		flowCfg := resilience.AdapterClientConfig(tomtom.FlowProviderName, tomtom.DefaultAdapterTimeout)
		flowCfg.Metrics = providerMetrics
		incidentCfg := resilience.AdapterClientConfig(tomtom.IncidentProviderName, tomtom.DefaultAdapterTimeout)
		incidentCfg.Metrics = providerMetrics
		flowClient := resilience.NewClient(flowCfg)
		incidentClient := resilience.NewClient(incidentCfg)
		registry.Register(tomtom.FlowProviderName, flowClient)
		registry.Register(tomtom.IncidentProviderName, incidentClient)

		flowProvider = tomtom.NewFlowClient(tomtom.FlowClientConfig{
			APIKey:     apiKey,
			BaseURL:    os.Getenv("TOMTOM_BASE_URL"),
			HTTPClient: flowClient,
			Logger:     log,
		})
		incidentProvider = tomtom.NewIncidentClient(tomtom.IncidentClientConfig{
			APIKey:     apiKey,
			BaseURL:    os.Getenv("TOMTOM_BASE_URL"),
			HTTPClient: incidentClient,
			Logger:     log,
		})
		log.Info().Msg("TomTom traffic adapters initialized")
	} else {
		log.Warn().Msg("TOMTOM_API_KEY not set - aggregating with default congestion")
	}

	trafficService := traffic.NewService(traffic.ServiceConfig{
		Catalog:   areaCatalog,
		Flow:      flowProvider,
		Incidents: incidentProvider,
		Logger:    log,
	})
	log.Info().Msg("traffic service initialized")

	// Analysis backend (may be nil if not configured). The service
	// answers with canned output when no backend is available.
	var analysisProvider analysis.Provider
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		analysisCfg := resilience.AdapterClientConfig(openai.ProviderName, 10*time.Second)
		analysisCfg.Metrics = providerMetrics
		analysisClient := resilience.NewClient(analysisCfg)
		registry.Register(openai.ProviderName, analysisClient)

		analysisProvider = openai.NewClient(openai.ClientConfig{
			APIKey:     apiKey,
			BaseURL:    os.Getenv("OPENAI_BASE_URL"),
			Model:      os.Getenv("OPENAI_MODEL"),
			HTTPClient: analysisClient,
			Logger:     log,
		})
		log.Info().Msg("analysis backend initialized")
	} else {
		log.Warn().Msg("OPENAI_API_KEY not set - analysis runs on canned fallbacks")
	}

	analysisService := analysis.NewService(analysis.ServiceConfig{
		Provider: analysisProvider,
		Logger:   log,
	})
	log.Info().Msg("analysis service initialized")

	engine := simulation.NewEngine(simulation.EngineConfig{Logger: log})
	log.Info().Msg("simulation engine initialized")

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:          Version,
		BuildTime:        BuildTime,
		Logger:           log,
		ServiceName:      serviceName,
		Metrics:          metrics,
		Catalog:          areaCatalog,
		TrafficService:   trafficService,
		SimulationEngine: engine,
		AnalysisService:  analysisService,
		Registry:         registry,
		ReadyChecks:      readyChecks,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
