package testutils

import (
	"context"
	"sync"
	"time"

	"github.com/dalfonso89/multitool-api/internal/config"
	"github.com/dalfonso89/multitool-api/internal/logger"
)

// MockLogger creates a logger for tests that only reports errors
func MockLogger() *logger.Logger {
	return logger.New("error")
}

// MockConfig creates a configuration for tests
func MockConfig() *config.Config {
	return &config.Config{
		Port:                   "3000",
		LogLevel:               "error",
		APIKey:                 "test-api-key",
		ModelProvider:          config.ProviderGemini,
		TriviaModel:            "gemini-2.5-flash",
		ProbePrompt:            "Olá",
		MetricsEnabled:         true,
		ReadTimeoutSeconds:     15,
		WriteTimeoutSeconds:    0,
		ShutdownTimeoutSeconds: 5,
	}
}

// MockConfigWithGemini points the model backend at a mock Gemini server
func MockConfigWithGemini(baseURL string) *config.Config {
	cfg := MockConfig()
	cfg.ModelBaseURL = baseURL
	return cfg
}

// FixedClock returns a clock that always reports the given year
func FixedClock(year int) func() time.Time {
	return func() time.Time {
		return time.Date(year, time.June, 15, 12, 0, 0, 0, time.UTC)
	}
}

// ModelCall is one call received by a FakeModelClient
type ModelCall struct {
	ModelName string
	Prompt    string
	Cancelled bool
}

// FakeModelClient is an in-memory model client returning canned text or errors per model
type FakeModelClient struct {
	mutex     sync.Mutex
	responses map[string]string
	failures  map[string]error
	calls     []ModelCall
}

// NewFakeModelClient creates an empty fake; unknown models fail with UnknownModelError
func NewFakeModelClient() *FakeModelClient {
	return &FakeModelClient{
		responses: make(map[string]string),
		failures:  make(map[string]error),
	}
}

// SetResponse sets the text returned for a model
func (f *FakeModelClient) SetResponse(modelName, text string) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.responses[modelName] = text
}

// SetFailure sets the error returned for a model
func (f *FakeModelClient) SetFailure(modelName string, err error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.failures[modelName] = err
}

// Calls returns a copy of the received calls
func (f *FakeModelClient) Calls() []ModelCall {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return append([]ModelCall(nil), f.calls...)
}

// Generate implements the model client contract
func (f *FakeModelClient) Generate(ctx context.Context, modelName, prompt string) (string, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.calls = append(f.calls, ModelCall{ModelName: modelName, Prompt: prompt, Cancelled: ctx.Err() != nil})

	if err, failing := f.failures[modelName]; failing {
		return "", err
	}
	if text, known := f.responses[modelName]; known {
		return text, nil
	}
	return "", &UnknownModelError{ModelName: modelName}
}

// UnknownModelError mimics the backend answer for a model that does not exist
type UnknownModelError struct {
	ModelName string
}

func (e *UnknownModelError) Error() string {
	return NotFoundMessage(e.ModelName)
}
