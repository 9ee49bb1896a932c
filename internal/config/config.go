package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application's configuration values.
type Config struct {
	ServerPort string
	LogLevel   string
	LogFormat  string

	LLMProvider        string
	GeneratorModelName string
	OpenAIAPIKey       string
	OpenAIBaseURL      string
	GeminiAPIKey       string
	OllamaHost         string

	MaxWorkers        int
	MaxRetries        int
	GenerationTimeout time.Duration

	TonePolicyPath string
}

// LoadConfig reads configuration from environment variables and a .env file,
// sets sensible defaults, and validates required fields. It uses the Viper
// library to handle configuration loading and precedence.
func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("LLM_PROVIDER", "ollama")
	viper.SetDefault("OLLAMA_HOST", "http://localhost:11434")
	viper.SetDefault("GENERATOR_MODEL_NAME", "gemma3:latest")
	viper.SetDefault("MAX_WORKERS", 4)
	viper.SetDefault("MAX_RETRIES", 2)
	viper.SetDefault("GENERATION_TIMEOUT_SECONDS", 120)
	viper.SetDefault("TONE_POLICY_PATH", "")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Error("failed to read config file", "error", err)
		}
	}

	cfg := &Config{
		ServerPort:         viper.GetString("SERVER_PORT"),
		LogLevel:           viper.GetString("LOG_LEVEL"),
		LogFormat:          viper.GetString("LOG_FORMAT"),
		LLMProvider:        viper.GetString("LLM_PROVIDER"),
		GeneratorModelName: viper.GetString("GENERATOR_MODEL_NAME"),
		OpenAIAPIKey:       viper.GetString("OPENAI_API_KEY"),
		OpenAIBaseURL:      viper.GetString("OPENAI_BASE_URL"),
		GeminiAPIKey:       viper.GetString("GEMINI_API_KEY"),
		OllamaHost:         viper.GetString("OLLAMA_HOST"),
		MaxWorkers:         viper.GetInt("MAX_WORKERS"),
		MaxRetries:         viper.GetInt("MAX_RETRIES"),
		GenerationTimeout:  time.Duration(viper.GetInt("GENERATION_TIMEOUT_SECONDS")) * time.Second,
		TonePolicyPath:     viper.GetString("TONE_POLICY_PATH"),
	}

	// Provider-specific generator model defaults.
	switch cfg.LLMProvider {
	case "gemini":
		if geminiModel := viper.GetString("GEMINI_GENERATOR_MODEL_NAME"); geminiModel != "" {
			cfg.GeneratorModelName = geminiModel
		} else if !viper.IsSet("GENERATOR_MODEL_NAME") {
			cfg.GeneratorModelName = "gemini-2.5-flash"
		}
	case "openai":
		if !viper.IsSet("GENERATOR_MODEL_NAME") {
			cfg.GeneratorModelName = "gpt-4o"
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate enforces required fields and sane bounds. Credential presence for
// the selected provider is checked here so a missing key fails at startup
// instead of surfacing later as a per-comment failure.
func (c *Config) Validate() error {
	switch c.LLMProvider {
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY must be set for the openai provider")
		}
	case "gemini":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY must be set for the gemini provider")
		}
	case "ollama":
		if c.OllamaHost == "" {
			return fmt.Errorf("OLLAMA_HOST must be set for the ollama provider")
		}
	default:
		return fmt.Errorf("unsupported LLM provider: %s", c.LLMProvider)
	}

	if c.GeneratorModelName == "" {
		return fmt.Errorf("GENERATOR_MODEL_NAME must be set")
	}
	if c.MaxWorkers < 1 || c.MaxWorkers > 64 {
		return fmt.Errorf("MAX_WORKERS must be between 1 and 64, got %d", c.MaxWorkers)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("MAX_RETRIES must be between 0 and 10, got %d", c.MaxRetries)
	}
	if c.GenerationTimeout <= 0 {
		return fmt.Errorf("GENERATION_TIMEOUT_SECONDS must be positive")
	}
	return nil
}
