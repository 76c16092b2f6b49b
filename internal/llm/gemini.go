package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// ErrEmptyResponse is the cause of a ModelError when the backend answered without any candidate
var ErrEmptyResponse = errors.New("model returned an empty response")

// GeminiClient calls the Gemini API through the official genai SDK
type GeminiClient struct {
	client *genai.Client
}

// NewGeminiClient creates a Gemini client. baseURL overrides the API endpoint when not empty.
func NewGeminiClient(ctx context.Context, apiKey, baseURL string) (*GeminiClient, error) {
	clientConfig := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiClient{client: client}, nil
}

// Generate sends prompt to modelName and returns the text of the first candidate
func (gemini *GeminiClient) Generate(ctx context.Context, modelName, prompt string) (string, error) {
	response, err := gemini.client.Models.GenerateContent(ctx, modelName, genai.Text(prompt), nil)
	if err != nil {
		return "", newModelError(modelName, err)
	}

	text, ok := candidateText(response)
	if !ok {
		return "", newModelError(modelName, ErrEmptyResponse)
	}
	return text, nil
}

// candidateText joins the text parts of the first candidate
func candidateText(response *genai.GenerateContentResponse) (string, bool) {
	if response == nil || len(response.Candidates) == 0 {
		return "", false
	}
	candidate := response.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return "", false
	}

	var builder strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			builder.WriteString(part.Text)
		}
	}
	return builder.String(), true
}
