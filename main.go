package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dalfonso89/multitool-api/internal/api"
	"github.com/dalfonso89/multitool-api/internal/config"
	"github.com/dalfonso89/multitool-api/internal/llm"
	"github.com/dalfonso89/multitool-api/internal/logger"
	"github.com/dalfonso89/multitool-api/internal/metrics"
	"github.com/dalfonso89/multitool-api/internal/platform"
	"github.com/dalfonso89/multitool-api/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel)
	gin.SetMode(gin.ReleaseMode)

	manager := metrics.NewManager(metrics.WithMetricsEnabled(cfg.MetricsEnabled))

	// Create a shutdown context that works across platforms
	shutdownCtx, stop := platform.NewShutdownContext(context.Background())
	defer stop()

	// Initialize the model client and services
	client, err := llm.NewClient(shutdownCtx, cfg, logger, manager)
	if err != nil {
		logger.Fatalf("Failed to create model client: %v", err)
	}
	triviaService := service.NewTriviaService(cfg, client, logger, manager)
	diagnosticService := service.NewDiagnosticService(cfg, client, logger)

	// Initialize HTTP handlers
	handlers := api.NewHandlers(api.HandlerConfig{
		Logger:      logger,
		Trivia:      triviaService,
		Diagnostics: diagnosticService,
		Metrics:     manager,
	})

	// Setup HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handlers.SetupRoutes(),
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
	}

	if err := platform.Serve(shutdownCtx, server, cfg.ShutdownTimeout(), logger); err != nil {
		logger.Fatalf("Server stopped with error: %v", err)
	}
}
