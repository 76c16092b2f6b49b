package llm

import (
	"context"

	"github.com/dalfonso89/multitool-api/internal/config"
	"github.com/dalfonso89/multitool-api/internal/logger"
	"github.com/dalfonso89/multitool-api/internal/metrics"
)

// NewClient builds the instrumented client for the configured provider.
// "gemini" uses the genai SDK, every other provider name goes through gollm.
// Only the trivia model gets its own metrics label and a long-lived gollm handle.
func NewClient(ctx context.Context, configuration *config.Config, log *logger.Logger, manager *metrics.Manager) (Client, error) {
	var backend Client

	switch configuration.ModelProvider {
	case config.ProviderGemini, "":
		geminiClient, err := NewGeminiClient(ctx, configuration.APIKey, configuration.ModelBaseURL)
		if err != nil {
			return nil, err
		}
		backend = geminiClient
	default:
		backend = NewGollmClient(configuration.ModelProvider, configuration.APIKey, configuration.TriviaModel)
	}

	log.WithField("provider", configuration.ModelProvider).Info("Model client initialized")
	return Instrument(backend, log, manager, configuration.TriviaModel), nil
}
