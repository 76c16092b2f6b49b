package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Provider names understood by the model client factory
const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

var (
	// ErrMissingAPIKey is returned when the model backend needs a key and none was configured
	ErrMissingAPIKey = errors.New("GEMINI_API_KEY must be set for the configured model provider")
	// ErrMissingPort is returned when the listening port resolves to an empty value
	ErrMissingPort = errors.New("PORT must not be empty")
)

// knownKeys lists the environment variables read into Config
var knownKeys = map[string]struct{}{
	"PORT":                     {},
	"LOG_LEVEL":                {},
	"GEMINI_API_KEY":           {},
	"MODEL_PROVIDER":           {},
	"MODEL_BASE_URL":           {},
	"TRIVIA_MODEL":             {},
	"PROBE_PROMPT":             {},
	"METRICS_ENABLED":          {},
	"READ_TIMEOUT_SECONDS":     {},
	"WRITE_TIMEOUT_SECONDS":    {},
	"SHUTDOWN_TIMEOUT_SECONDS": {},
}

// Config holds all configuration for the application
type Config struct {
	Port     string `koanf:"port"`
	LogLevel string `koanf:"log_level"`

	// Model backend
	APIKey        string `koanf:"gemini_api_key"`
	ModelProvider string `koanf:"model_provider"`
	ModelBaseURL  string `koanf:"model_base_url"`
	TriviaModel   string `koanf:"trivia_model"`
	ProbePrompt   string `koanf:"probe_prompt"`

	MetricsEnabled bool `koanf:"metrics_enabled"`

	// Server timeouts in seconds, 0 disables the timeout
	ReadTimeoutSeconds     int `koanf:"read_timeout_seconds"`
	WriteTimeoutSeconds    int `koanf:"write_timeout_seconds"`
	ShutdownTimeoutSeconds int `koanf:"shutdown_timeout_seconds"`
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		Port:                   "3000",
		LogLevel:               "info",
		ModelProvider:          ProviderGemini,
		TriviaModel:            "gemini-2.5-flash",
		ProbePrompt:            "Olá",
		MetricsEnabled:         true,
		ReadTimeoutSeconds:     15,
		WriteTimeoutSeconds:    0,
		ShutdownTimeoutSeconds: 30,
	}
}

// Load loads configuration by layering defaults, an optional YAML file and environment variables.
// Order of precedence (low -> high):
//  1. defaults
//  2. YAML file if CONFIG_FILE is set
//  3. environment (a .env file in the working directory is loaded into it first)
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	k := koanf.New(".")

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// PORT -> port, GEMINI_API_KEY -> gemini_api_key; unknown or empty variables are skipped
	envProvider := env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		if _, ok := knownKeys[key]; !ok || value == "" {
			return "", nil
		}
		return strings.ToLower(key), value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	configuration := *Default()
	if err := k.UnmarshalWithConf("", &configuration, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	configuration.ModelProvider = strings.ToLower(strings.TrimSpace(configuration.ModelProvider))

	if err := configuration.Validate(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

// Validate checks the invariants the rest of the service relies on
func (configuration *Config) Validate() error {
	if configuration.Port == "" {
		return ErrMissingPort
	}
	if configuration.APIKey == "" && configuration.ModelProvider != ProviderOllama {
		return ErrMissingAPIKey
	}
	return nil
}

// ReadTimeout returns the HTTP server read timeout
func (configuration *Config) ReadTimeout() time.Duration {
	return seconds(configuration.ReadTimeoutSeconds)
}

// WriteTimeout returns the HTTP server write timeout
func (configuration *Config) WriteTimeout() time.Duration {
	return seconds(configuration.WriteTimeoutSeconds)
}

// ShutdownTimeout returns how long outstanding requests get to finish on shutdown
func (configuration *Config) ShutdownTimeout() time.Duration {
	return seconds(configuration.ShutdownTimeoutSeconds)
}

func seconds(value int) time.Duration {
	if value <= 0 {
		return 0
	}
	return time.Duration(value) * time.Second
}
