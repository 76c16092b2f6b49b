package service

import (
	"context"
	"errors"

	"github.com/dalfonso89/multitool-api/internal/config"
	"github.com/dalfonso89/multitool-api/internal/llm"
	"github.com/dalfonso89/multitool-api/internal/logger"
	"github.com/dalfonso89/multitool-api/internal/models"
)

// DiagnosticService probes whether a model identifier can be called
type DiagnosticService struct {
	probePrompt string
	client      llm.Client
	logger      *logger.Logger
}

// NewDiagnosticService creates a diagnostic service
func NewDiagnosticService(configuration *config.Config, client llm.Client, log *logger.Logger) *DiagnosticService {
	return &DiagnosticService{
		probePrompt: configuration.ProbePrompt,
		client:      client,
		logger:      log,
	}
}

// ProbeModel sends the probe prompt to modelName. The result carries the
// backend's own error text when the call fails. A call that succeeds with an
// empty answer (blocked or filtered) still counts as available.
func (diagnosticService *DiagnosticService) ProbeModel(requestContext context.Context, modelName string) models.ModelProbeResult {
	diagnosticService.logger.ForModel(modelName).Info("Probing model")

	_, err := diagnosticService.client.Generate(context.WithoutCancel(requestContext), modelName, diagnosticService.probePrompt)
	if err != nil && !errors.Is(err, llm.ErrEmptyResponse) {
		diagnosticService.logger.ForModel(modelName).WithError(err).Error("Model probe failed")
		return models.ModelProbeResult{
			ModelName:    modelName,
			Status:       models.ProbeStatusError,
			ErrorMessage: originalMessage(err),
		}
	}

	return models.ModelProbeResult{
		ModelName: modelName,
		Status:    models.ProbeStatusAvailable,
	}
}

func originalMessage(err error) string {
	var modelError *llm.ModelError
	if errors.As(err, &modelError) {
		return modelError.Message
	}
	return err.Error()
}
