// Package app initializes and orchestrates the main components of the
// Code Mentor application. It wires together the configuration, the review
// pipeline, and the HTTP server.
package app

import (
	"context"
	"log/slog"

	"github.com/sevigo/code-mentor/internal/config"
	"github.com/sevigo/code-mentor/internal/review"
	"github.com/sevigo/code-mentor/internal/server"
)

// App holds the main application components. Cfg, Logger, and Reviewer are
// exported for the CLI and terminal front-ends, which drive the pipeline
// directly instead of going through the HTTP server.
type App struct {
	ctx      context.Context
	server   *server.Server
	Cfg      *config.Config
	Logger   *slog.Logger
	Reviewer *review.Orchestrator
}

// NewApp assembles the application from its already-constructed parts.
func NewApp(ctx context.Context, cfg *config.Config, srv *server.Server, orchestrator *review.Orchestrator, logger *slog.Logger) *App {
	logger.Info("initializing Code Mentor application",
		"llm_provider", cfg.LLMProvider,
		"generator_model", cfg.GeneratorModelName,
		"max_workers", cfg.MaxWorkers,
	)

	return &App{
		ctx:      ctx,
		server:   srv,
		Cfg:      cfg,
		Logger:   logger,
		Reviewer: orchestrator,
	}
}

// Start runs the HTTP server and blocks until shutdown.
func (a *App) Start() error {
	a.Logger.Info("starting Code Mentor",
		"server_port", a.Cfg.ServerPort,
		"max_workers", a.Cfg.MaxWorkers,
	)

	if err := a.server.Start(); err != nil {
		a.Logger.Error("failed to start HTTP server", "error", err)
		return err
	}
	return nil
}

// Stop shuts down the application cleanly.
func (a *App) Stop() error {
	a.Logger.Info("shutting down Code Mentor services")

	if err := a.server.Stop(); err != nil {
		a.Logger.Error("error during HTTP server shutdown", "error", err)
		return err
	}

	a.Logger.Info("Code Mentor stopped successfully")
	return nil
}
