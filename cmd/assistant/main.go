package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/ehudso7/StatTact/internal/assistant"
	"github.com/ehudso7/StatTact/internal/config"
	"github.com/ehudso7/StatTact/internal/history"
	"github.com/ehudso7/StatTact/internal/llm"
	"github.com/ehudso7/StatTact/internal/logger"
	"github.com/ehudso7/StatTact/internal/ui"
	"github.com/ehudso7/StatTact/pkg/tools"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Keep the terminal for the conversation; logs only surface at debug.
	logger.SetOutput(os.Stderr)
	if cfg.Log.Level == "debug" {
		logger.SetLevel("debug")
	} else {
		logger.SetLevel("error")
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	var recorder history.Recorder
	if store := openTranscript(cfg.Assistant.TranscriptPath, os.Stderr); store != nil {
		defer store.Close()
		recorder = store
	}

	in := ui.NewLineReader(os.Stdin, os.Stdout)
	defer in.Close()

	agent := assistant.New(llm.NewClient(cfg.LLM), tools.NewToolManager(tools.NewExecutor(nil)), assistant.Options{
		Model:    cfg.Assistant.Model,
		Recorder: recorder,
		In:       in,
		Out:      os.Stdout,
		Palette:  ui.DetectPalette(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := agent.Run(ctx); err != nil {
		logger.L.Error("assistant session failed", "session", agent.Conversation().SessionID(), "error", err)
		return err
	}
	return nil
}

// openTranscript opens the optional transcript store. A failure is reported
// on w and the session continues without one.
func openTranscript(path string, w io.Writer) *history.Store {
	if path == "" {
		return nil
	}
	store, err := history.Open(path)
	if err != nil {
		fmt.Fprintf(w, "Warning: transcript disabled: %v\n", err)
		return nil
	}
	return store
}
