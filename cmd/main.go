package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/desertthunder/tunes/internal/shared"
	"github.com/urfave/cli/v3"
)

const defaultConfigPath = "config.toml"

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat(defaultConfigPath); err == nil {
		if loaded, err := shared.LoadConfig(defaultConfigPath); err == nil {
			config = loaded
		} else {
			logger.Warn("failed to load config, using defaults", "error", err)
		}
	}

	if lvl, err := shared.ParseLogLevel(config.Log.Level); err == nil {
		shared.SetLogLevel(logger, lvl)
	}

	runner := NewRunner(RunnerOpts{
		Config: config,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "tunes",
		Usage:    "Browse, search and play a simulated music catalog",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		logger.Fatalf("application error: %v", err)
	}
}
