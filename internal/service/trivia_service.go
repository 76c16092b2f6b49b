package service

import (
	"context"
	"time"

	"github.com/dalfonso89/multitool-api/internal/config"
	"github.com/dalfonso89/multitool-api/internal/extraction"
	"github.com/dalfonso89/multitool-api/internal/llm"
	"github.com/dalfonso89/multitool-api/internal/logger"
	"github.com/dalfonso89/multitool-api/internal/metrics"
	"github.com/dalfonso89/multitool-api/internal/models"
)

// CelebrityPrompt is sent verbatim to the model by the trivia endpoint
const CelebrityPrompt = "\n" +
	"            Me retorne um JSON válido, e nada mais, contendo um array com dois objetos.\n" +
	"            Cada objeto deve representar uma pessoa viva de fama internacional e ter as chaves \"nome\", \"anoNascimento\" e \"principaisConquistas\".\n" +
	"            As conquistas devem ser um array de strings não maior que 3.\n" +
	"            Não inclua explicações ou texto antes ou depois, apenas o JSON puro.\n" +
	"        "

// TriviaService asks the model for celebrities and turns the answer into results
type TriviaService struct {
	modelName string
	client    llm.Client
	logger    *logger.Logger
	metrics   *metrics.Manager
	now       func() time.Time
}

// NewTriviaService creates a trivia service using the configured trivia model
func NewTriviaService(configuration *config.Config, client llm.Client, log *logger.Logger, manager *metrics.Manager) *TriviaService {
	return &TriviaService{
		modelName: configuration.TriviaModel,
		client:    client,
		logger:    log,
		metrics:   manager,
		now:       time.Now,
	}
}

// WithClock replaces the clock used to compute ages
func (triviaService *TriviaService) WithClock(now func() time.Time) *TriviaService {
	triviaService.now = now
	return triviaService
}

// FetchCelebrities calls the model once and extracts the celebrity list.
// The model call is not cancelled when requestContext is.
func (triviaService *TriviaService) FetchCelebrities(requestContext context.Context) ([]models.CelebrityResult, error) {
	log := triviaService.logger.ForModel(triviaService.modelName)
	log.Info("Requesting celebrities from the model")

	rawText, err := triviaService.client.Generate(context.WithoutCancel(requestContext), triviaService.modelName, CelebrityPrompt)
	if err != nil {
		return nil, &ServiceError{
			Type:    ErrorTypeModelFailure,
			Message: "model request failed",
			Cause:   err,
		}
	}

	log.WithField("response", rawText).Info("Model response received")

	celebrities, err := extraction.ExtractCelebrities(rawText, triviaService.now())
	if err != nil {
		errorType := classifyError(err)
		triviaService.metrics.IncExtractionFailure(errorType.String())
		return nil, &ServiceError{
			Type:    errorType,
			Message: "could not extract celebrities from model response",
			Cause:   err,
		}
	}

	return celebrities, nil
}
