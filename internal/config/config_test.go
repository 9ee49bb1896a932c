package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		ServerPort:         "8080",
		LogLevel:           "info",
		LogFormat:          "text",
		LLMProvider:        "ollama",
		GeneratorModelName: "gemma3:latest",
		OllamaHost:         "http://localhost:11434",
		MaxWorkers:         4,
		MaxRetries:         2,
		GenerationTimeout:  120 * time.Second,
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		expectErr string
	}{
		{
			name:   "Valid ollama config",
			mutate: func(*Config) {},
		},
		{
			name: "OpenAI requires api key",
			mutate: func(c *Config) {
				c.LLMProvider = "openai"
				c.OpenAIAPIKey = ""
			},
			expectErr: "OPENAI_API_KEY",
		},
		{
			name: "OpenAI with key is valid",
			mutate: func(c *Config) {
				c.LLMProvider = "openai"
				c.OpenAIAPIKey = "sk-test"
			},
		},
		{
			name: "Gemini requires api key",
			mutate: func(c *Config) {
				c.LLMProvider = "gemini"
				c.GeminiAPIKey = ""
			},
			expectErr: "GEMINI_API_KEY",
		},
		{
			name: "Ollama requires host",
			mutate: func(c *Config) {
				c.OllamaHost = ""
			},
			expectErr: "OLLAMA_HOST",
		},
		{
			name: "Unsupported provider",
			mutate: func(c *Config) {
				c.LLMProvider = "carrier-pigeon"
			},
			expectErr: "unsupported LLM provider",
		},
		{
			name: "Missing model name",
			mutate: func(c *Config) {
				c.GeneratorModelName = ""
			},
			expectErr: "GENERATOR_MODEL_NAME",
		},
		{
			name: "Worker count out of range",
			mutate: func(c *Config) {
				c.MaxWorkers = 0
			},
			expectErr: "MAX_WORKERS",
		},
		{
			name: "Too many workers",
			mutate: func(c *Config) {
				c.MaxWorkers = 100
			},
			expectErr: "MAX_WORKERS",
		},
		{
			name: "Negative retries",
			mutate: func(c *Config) {
				c.MaxRetries = -1
			},
			expectErr: "MAX_RETRIES",
		},
		{
			name: "Zero timeout",
			mutate: func(c *Config) {
				c.GenerationTimeout = 0
			},
			expectErr: "GENERATION_TIMEOUT_SECONDS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.expectErr != "" {
				assert.ErrorContains(t, err, tt.expectErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
