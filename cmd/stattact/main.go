package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ehudso7/StatTact/internal/config"
	"github.com/ehudso7/StatTact/internal/football"
	"github.com/ehudso7/StatTact/internal/llm"
	"github.com/ehudso7/StatTact/internal/logger"
	"github.com/ehudso7/StatTact/internal/server"
	"github.com/ehudso7/StatTact/internal/tactics"

	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is fine; real deployments use the environment.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.L.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger.SetLevel(cfg.Log.Level)
	if err := cfg.Validate(); err != nil {
		logger.L.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize LLM client
	llmClient := llm.NewClient(cfg.LLM)

	svc := tactics.New(llmClient, cfg.LLM)
	teams := football.NewClient(cfg.Football)
	logger.L.Info("football data lookup", "enabled", teams.Enabled())

	srv := server.New(svc, teams, cfg.Server)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.L.Error("failed to start server", "error", err)
		os.Exit(1)
	}
}
