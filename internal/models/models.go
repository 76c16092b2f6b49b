package models

import "time"

// Probe statuses reported by the diagnostic endpoint
const (
	ProbeStatusAvailable = "Disponível e funcionando!"
	ProbeStatusError     = "ERRO"
)

// ConversionResult is the payload of a successful unit conversion
type ConversionResult struct {
	FromUnit   string  `json:"unidade_de_origem"`
	ToUnit     string  `json:"unidade_de_destino"`
	InputValue float64 `json:"valor_de_entrada"`
	Result     float64 `json:"resultado"`
}

// CelebrityRecord is one entry of the JSON array produced by the model
type CelebrityRecord struct {
	Name         *string  `json:"nome"`
	BirthYear    *int     `json:"anoNascimento"`
	Achievements []string `json:"principaisConquistas,omitempty"`
}

// CelebrityResult is what the trivia endpoint returns for each celebrity
type CelebrityResult struct {
	Name string `json:"nome"`
	Age  int    `json:"idade"`
}

// ModelProbeResult reports whether a model identifier is callable
type ModelProbeResult struct {
	ModelName    string `json:"modelo"`
	Status       string `json:"status"`
	ErrorMessage string `json:"mensagem_original,omitempty"`
}

// Available reports whether the probe succeeded
func (probe ModelProbeResult) Available() bool {
	return probe.Status == ProbeStatusAvailable
}

// ErrorResponse is the body of every client-facing error
type ErrorResponse struct {
	Error string `json:"erro"`
}

// DiscoveryDocument is served at the root route
type DiscoveryDocument struct {
	Message     string            `json:"message"`
	Endpoints   map[string]string `json:"endpoints"`
	Conversions []string          `json:"conversoes_suportadas,omitempty"`
}

// HealthCheck represents the health check response
type HealthCheck struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
}
