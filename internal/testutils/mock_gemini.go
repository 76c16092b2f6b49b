package testutils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// NotFoundMessage is the text the Gemini API returns for an unknown model
func NotFoundMessage(modelName string) string {
	return fmt.Sprintf("models/%s is not found for API version v1beta, or is not supported for generateContent.", modelName)
}

// MockGeminiRequest is one generateContent call received by the mock
type MockGeminiRequest struct {
	ModelName string
	Prompt    string
	APIKey    string
}

type mockFailure struct {
	status  int
	message string
}

// MockGeminiServer emulates the generateContent endpoint of the Gemini API
type MockGeminiServer struct {
	server *httptest.Server

	mutex     sync.Mutex
	responses map[string]string
	failures  map[string]mockFailure
	requests  []MockGeminiRequest
}

// NewMockGeminiServer creates a mock Gemini server; models without a response answer 404
func NewMockGeminiServer() *MockGeminiServer {
	mock := &MockGeminiServer{
		responses: make(map[string]string),
		failures:  make(map[string]mockFailure),
	}
	mock.server = httptest.NewServer(http.HandlerFunc(mock.handler))
	return mock
}

// URL returns the mock server URL
func (m *MockGeminiServer) URL() string {
	return m.server.URL
}

// Close closes the mock server
func (m *MockGeminiServer) Close() {
	m.server.Close()
}

// SetResponse sets the text the model answers with
func (m *MockGeminiServer) SetResponse(modelName, text string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.responses[modelName] = text
}

// SetFailure makes the model answer with an API error
func (m *MockGeminiServer) SetFailure(modelName string, status int, message string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.failures[modelName] = mockFailure{status: status, message: message}
}

// Requests returns a copy of the received requests
func (m *MockGeminiServer) Requests() []MockGeminiRequest {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return append([]MockGeminiRequest(nil), m.requests...)
}

// handler serves POST .../models/{model}:generateContent
func (m *MockGeminiServer) handler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		writeGeminiError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	modelName, ok := parseModelPath(r.URL.Path)
	if !ok {
		writeGeminiError(w, http.StatusNotFound, "unknown endpoint "+r.URL.Path)
		return
	}

	var body struct {
		Contents []struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"contents"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeGeminiError(w, http.StatusBadRequest, "invalid JSON payload received")
		return
	}

	var prompt strings.Builder
	for _, content := range body.Contents {
		for _, part := range content.Parts {
			prompt.WriteString(part.Text)
		}
	}

	apiKey := r.Header.Get("x-goog-api-key")
	if apiKey == "" {
		apiKey = r.URL.Query().Get("key")
	}

	m.mutex.Lock()
	m.requests = append(m.requests, MockGeminiRequest{ModelName: modelName, Prompt: prompt.String(), APIKey: apiKey})
	failure, failing := m.failures[modelName]
	text, known := m.responses[modelName]
	m.mutex.Unlock()

	switch {
	case failing:
		writeGeminiError(w, failure.status, failure.message)
	case known:
		response := map[string]interface{}{
			"candidates": []map[string]interface{}{
				{
					"content": map[string]interface{}{
						"role":  "model",
						"parts": []map[string]interface{}{{"text": text}},
					},
					"finishReason": "STOP",
				},
			},
		}
		json.NewEncoder(w).Encode(response)
	default:
		writeGeminiError(w, http.StatusNotFound, NotFoundMessage(modelName))
	}
}

// parseModelPath extracts the model from /v1beta/models/{model}:generateContent
func parseModelPath(path string) (string, bool) {
	const marker = "/models/"
	index := strings.LastIndex(path, marker)
	if index < 0 || !strings.HasSuffix(path, ":generateContent") {
		return "", false
	}
	return strings.TrimSuffix(path[index+len(marker):], ":generateContent"), true
}

func writeGeminiError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]interface{}{
			"code":    status,
			"message": message,
			"status":  http.StatusText(status),
		},
	})
}
