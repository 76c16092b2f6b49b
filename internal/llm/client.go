// Package llm adapts generative-model backends to a single text-completion call.
package llm

import (
	"context"
	"time"

	"github.com/dalfonso89/multitool-api/internal/logger"
	"github.com/dalfonso89/multitool-api/internal/metrics"
)

// Client sends one prompt to one model and returns the generated text.
// Implementations make exactly one backend call per invocation and never retry.
type Client interface {
	Generate(ctx context.Context, modelName, prompt string) (string, error)
}

// ModelError is returned when the backend call fails.
// Message is the backend's error text, unmodified.
type ModelError struct {
	ModelName string
	Message   string
	Cause     error
}

func (e *ModelError) Error() string {
	return e.Message
}

func (e *ModelError) Unwrap() error {
	return e.Cause
}

func newModelError(modelName string, cause error) *ModelError {
	return &ModelError{ModelName: modelName, Message: cause.Error(), Cause: cause}
}

// OtherModelLabel is the metrics label for models outside the configured set
const OtherModelLabel = "other"

// instrumentedClient logs and measures every call of the wrapped client
type instrumentedClient struct {
	next        Client
	logger      *logger.Logger
	metrics     *metrics.Manager
	knownModels map[string]struct{}
}

// Instrument wraps a client with call logging and model metrics.
// Only knownModels keep their own metrics label; any other name, such as a
// diagnostic probe of an arbitrary model, is recorded as OtherModelLabel.
// A nil metrics manager disables the metrics part.
func Instrument(next Client, log *logger.Logger, manager *metrics.Manager, knownModels ...string) Client {
	known := make(map[string]struct{}, len(knownModels))
	for _, modelName := range knownModels {
		known[modelName] = struct{}{}
	}
	return &instrumentedClient{next: next, logger: log, metrics: manager, knownModels: known}
}

func (client *instrumentedClient) Generate(ctx context.Context, modelName, prompt string) (string, error) {
	startTime := time.Now()
	text, err := client.next.Generate(ctx, modelName, prompt)
	elapsed := time.Since(startTime)

	client.metrics.ObserveModelCall(client.metricLabel(modelName), err, elapsed)

	entry := client.logger.ForModel(modelName).WithField("latency", elapsed.String())
	if err != nil {
		entry.WithError(err).Warn("Model call failed")
		return "", err
	}
	entry.WithField("response_length", len(text)).Debug("Model call succeeded")
	return text, nil
}

func (client *instrumentedClient) metricLabel(modelName string) string {
	if _, known := client.knownModels[modelName]; known {
		return modelName
	}
	return OtherModelLabel
}
