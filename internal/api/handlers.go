package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dalfonso89/multitool-api/internal/converter"
	"github.com/dalfonso89/multitool-api/internal/logger"
	"github.com/dalfonso89/multitool-api/internal/metrics"
	"github.com/dalfonso89/multitool-api/internal/middleware"
	"github.com/dalfonso89/multitool-api/internal/models"
	"github.com/dalfonso89/multitool-api/internal/service"
)

// Client-facing messages
const (
	triviaFailureMessage = "Falha ao obter dados da IA."
	missingModelMessage  = "Forneça um nome de modelo na query string, ex: ?modelo=gemini-pro"
)

// Version is reported by the health check
const Version = "1.0.0"

// CelebrityFetcher produces the trivia celebrity list
type CelebrityFetcher interface {
	FetchCelebrities(ctx context.Context) ([]models.CelebrityResult, error)
}

// ModelProber checks whether a model identifier is callable
type ModelProber interface {
	ProbeModel(ctx context.Context, modelName string) models.ModelProbeResult
}

// HandlerConfig holds the dependencies of Handlers
type HandlerConfig struct {
	Logger      *logger.Logger
	Trivia      CelebrityFetcher
	Diagnostics ModelProber
	Metrics     *metrics.Manager
}

// Handlers contains all HTTP handlers
type Handlers struct {
	logger      *logger.Logger
	trivia      CelebrityFetcher
	diagnostics ModelProber
	metrics     *metrics.Manager
	startTime   time.Time
}

// NewHandlers creates a new handlers instance
func NewHandlers(handlerConfig HandlerConfig) *Handlers {
	return &Handlers{
		logger:      handlerConfig.Logger,
		trivia:      handlerConfig.Trivia,
		diagnostics: handlerConfig.Diagnostics,
		metrics:     handlerConfig.Metrics,
		startTime:   time.Now(),
	}
}

// SetupRoutes configures all the routes using Gin
func (handlers *Handlers) SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestLogger(handlers.logger))
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	if handlers.metrics.Enabled() {
		router.Use(middleware.Metrics(handlers.metrics))
	}

	router.GET("/", handlers.Discovery)
	router.GET("/health", handlers.HealthCheck)
	router.GET("/convert", handlers.Convert)
	router.GET("/jogo/famosos-da-ia", handlers.FamousPeople)
	router.GET("/diagnostico/verificar-modelo", handlers.VerifyModel)

	if handlers.metrics.Enabled() {
		router.GET("/metrics", gin.WrapH(handlers.metrics.Handler()))
	}

	return router
}

// Discovery lists the available endpoints
func (handlers *Handlers) Discovery(context *gin.Context) {
	context.JSON(http.StatusOK, models.DiscoveryDocument{
		Message: "API multifuncional está rodando!",
		Endpoints: map[string]string{
			"conversao":   "/convert?from=cm&to=inch&value=10",
			"jogo_ia":     "/jogo/famosos-da-ia",
			"diagnostico": "/diagnostico/verificar-modelo?modelo=gemini-2.5-flash",
		},
		Conversions: converter.SupportedPairs(),
	})
}

// HealthCheck handles health check requests
func (handlers *Handlers) HealthCheck(context *gin.Context) {
	context.JSON(http.StatusOK, models.HealthCheck{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   Version,
		Uptime:    time.Since(handlers.startTime).String(),
	})
}

// Convert handles unit conversion requests
func (handlers *Handlers) Convert(context *gin.Context) {
	conversionResult, conversionError := converter.Convert(
		context.Query("from"),
		context.Query("to"),
		context.Query("value"),
	)
	if conversionError != nil {
		handlers.writeErrorResponse(context, http.StatusBadRequest, conversionError.Error())
		return
	}

	context.JSON(http.StatusOK, conversionResult)
}

// FamousPeople asks the model for two celebrities and returns their names and ages
func (handlers *Handlers) FamousPeople(context *gin.Context) {
	handlers.logger.Info("Received request for /jogo/famosos-da-ia, querying the model")

	celebrities, fetchError := handlers.trivia.FetchCelebrities(context.Request.Context())
	if fetchError != nil {
		handlers.logger.WithError(fetchError).
			WithField("error_type", service.ClassifyError(fetchError).String()).
			Error("Failed to fetch celebrities from the model")
		handlers.writeErrorResponse(context, http.StatusInternalServerError, triviaFailureMessage)
		return
	}

	context.JSON(http.StatusOK, celebrities)
}

// VerifyModel probes the model named by the "modelo" query parameter
func (handlers *Handlers) VerifyModel(context *gin.Context) {
	modelName := context.Query("modelo")
	if modelName == "" {
		handlers.writeErrorResponse(context, http.StatusBadRequest, missingModelMessage)
		return
	}

	probe := handlers.diagnostics.ProbeModel(context.Request.Context(), modelName)
	if !probe.Available() {
		context.JSON(http.StatusInternalServerError, probe)
		return
	}

	context.JSON(http.StatusOK, probe)
}

// writeErrorResponse writes an error response using Gin context
func (handlers *Handlers) writeErrorResponse(context *gin.Context, statusCode int, errorMessage string) {
	context.JSON(statusCode, models.ErrorResponse{Error: errorMessage})
}
