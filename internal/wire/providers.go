// Package wire assembles the application object graph with google/wire.
package wire

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/google/wire"

	"github.com/sevigo/code-mentor/internal/app"
	"github.com/sevigo/code-mentor/internal/config"
	"github.com/sevigo/code-mentor/internal/core"
	"github.com/sevigo/code-mentor/internal/llm"
	"github.com/sevigo/code-mentor/internal/logger"
	"github.com/sevigo/code-mentor/internal/review"
	"github.com/sevigo/code-mentor/internal/server"
)

var AppSet = wire.NewSet(
	app.NewApp,
	server.NewServer,
	logger.NewLogger,
	config.LoadConfig,
	review.NewOrchestrator,
	review.NewClassifier,
	review.NewLinker,
	llm.NewPromptManager,
	provideTonePolicy,
	providePromptBuilder,
	provideGenerator,
	provideLoggerConfig,
	provideLogWriter,
)

func provideGenerator(ctx context.Context, cfg *config.Config, log *slog.Logger) (core.Generator, error) {
	return llm.NewGenerator(ctx, cfg, log)
}

func provideTonePolicy(cfg *config.Config) (*review.TonePolicy, error) {
	return review.LoadTonePolicy(cfg.TonePolicyPath)
}

func providePromptBuilder(pm *llm.PromptManager, cfg *config.Config) *llm.PromptBuilder {
	return llm.NewPromptBuilder(pm, cfg.LLMProvider)
}

func provideLoggerConfig(cfg *config.Config) logger.Config {
	return logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: "stdout",
	}
}

func provideLogWriter() io.Writer {
	return os.Stdout
}
