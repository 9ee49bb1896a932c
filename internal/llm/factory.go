package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/sevigo/goframe/llms/gemini"
	"github.com/sevigo/goframe/llms/ollama"

	"github.com/sevigo/code-mentor/internal/config"
	"github.com/sevigo/code-mentor/internal/core"
)

// NewGenerator creates the configured generation backend. The orchestrator
// only ever sees the core.Generator interface; production wiring supplies the
// concrete adapter here.
func NewGenerator(ctx context.Context, cfg *config.Config, logger *slog.Logger) (core.Generator, error) {
	switch cfg.LLMProvider {
	case "openai":
		logger.Info("using OpenAI generation backend", "model", cfg.GeneratorModelName)
		return NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.GeneratorModelName, cfg.GenerationTimeout)

	case "gemini":
		logger.Info("using Gemini generation backend", "model", cfg.GeneratorModelName)
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is not set in environment for gemini provider")
		}
		model, err := gemini.New(ctx,
			gemini.WithModel(cfg.GeneratorModelName),
			gemini.WithAPIKey(cfg.GeminiAPIKey),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		return newGoframeGenerator(model, "gemini"), nil

	case "ollama":
		logger.Info("using Ollama generation backend", "model", cfg.GeneratorModelName, "host", cfg.OllamaHost)
		model, err := ollama.New(
			ollama.WithServerURL(cfg.OllamaHost),
			ollama.WithModel(cfg.GeneratorModelName),
			ollama.WithHTTPClient(newGenerationHTTPClient()),
			ollama.WithLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama client: %w", err)
		}
		return newGoframeGenerator(model, "ollama"), nil

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}
}

// newGenerationHTTPClient creates an HTTP client with longer timeouts for
// local model servers, which can take a while to produce a completion.
func newGenerationHTTPClient() *http.Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxConnsPerHost:     10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DisableKeepAlives:   false,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   5 * time.Minute,
	}
}
