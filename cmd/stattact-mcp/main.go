package main

import (
	"os"

	"github.com/ehudso7/StatTact/internal/config"
	"github.com/ehudso7/StatTact/internal/logger"
	"github.com/ehudso7/StatTact/internal/mcpserver"
	"github.com/ehudso7/StatTact/pkg/tools"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	// stdout carries the protocol.
	logger.SetOutput(os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		logger.L.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger.SetLevel(cfg.Log.Level)

	logger.L.Info("serving operations over MCP stdio")
	if err := mcpserver.ServeStdio(tools.NewExecutor(nil)); err != nil {
		logger.L.Error("mcp server stopped", "error", err)
		os.Exit(1)
	}
}
