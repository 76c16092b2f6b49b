package llm

import (
	"context"
	"sync"

	"github.com/teilomillet/gollm"
)

// llmBuilder creates a gollm handle bound to one model
type llmBuilder func(modelName string) (gollm.LLM, error)

// GollmClient calls OpenAI, Anthropic, Ollama and the other providers gollm supports.
// gollm binds a model at construction. Handles are kept only for the cached
// models; any other model gets a handle built for that one call.
type GollmClient struct {
	provider     string
	build        llmBuilder
	cachedModels map[string]struct{}

	handlesMutex sync.Mutex
	handles      map[string]gollm.LLM
}

// NewGollmClient creates a client for the given gollm provider, keeping handles for cachedModels
func NewGollmClient(provider, apiKey string, cachedModels ...string) *GollmClient {
	return newGollmClient(provider, cachedModels, func(modelName string) (gollm.LLM, error) {
		options := []gollm.ConfigOption{
			gollm.SetProvider(provider),
			gollm.SetModel(modelName),
			gollm.SetMaxRetries(0),
			gollm.SetLogLevel(gollm.LogLevelWarn),
		}
		if apiKey != "" {
			options = append(options, gollm.SetAPIKey(apiKey))
		}
		return gollm.NewLLM(options...)
	})
}

func newGollmClient(provider string, cachedModels []string, build llmBuilder) *GollmClient {
	cached := make(map[string]struct{}, len(cachedModels))
	for _, modelName := range cachedModels {
		cached[modelName] = struct{}{}
	}
	return &GollmClient{
		provider:     provider,
		build:        build,
		cachedModels: cached,
		handles:      make(map[string]gollm.LLM),
	}
}

// Provider returns the gollm provider name
func (client *GollmClient) Provider() string {
	return client.provider
}

// Generate sends prompt to modelName
func (client *GollmClient) Generate(ctx context.Context, modelName, prompt string) (string, error) {
	handle, err := client.handle(modelName)
	if err != nil {
		return "", newModelError(modelName, err)
	}

	text, err := handle.Generate(ctx, gollm.NewPrompt(prompt))
	if err != nil {
		return "", newModelError(modelName, err)
	}
	return text, nil
}

func (client *GollmClient) handle(modelName string) (gollm.LLM, error) {
	if _, cached := client.cachedModels[modelName]; !cached {
		return client.build(modelName)
	}

	client.handlesMutex.Lock()
	defer client.handlesMutex.Unlock()

	if handle, exists := client.handles[modelName]; exists {
		return handle, nil
	}

	handle, err := client.build(modelName)
	if err != nil {
		return nil, err
	}
	client.handles[modelName] = handle
	return handle, nil
}
