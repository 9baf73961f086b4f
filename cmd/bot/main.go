// Package main contains the entrypoint for the Discord price bot application.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tokenfyi/serumbot/internal/bot"
	"github.com/tokenfyi/serumbot/internal/config"
	"github.com/tokenfyi/serumbot/internal/logger"
	"github.com/tokenfyi/serumbot/internal/serum"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run initializes all application components (config, logger, shared RPC
// connection, sessions) and blocks until shutdown, returning an exit code.
func run(ctx context.Context) int {
	cfg, err := config.Load(slog.Default())
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.LogLevel, cfg.LogJSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.LogLevel, "json", cfg.LogJSON)

	// The one ledger connection shared read-only by every session.
	price := serum.NewClient(cfg.RPCEndpoint, log)
	log.Info("Solana RPC connection ready", "endpoint", cfg.RPCEndpoint)

	app, err := bot.NewBot(log, cfg, price)
	if err != nil {
		log.Error("Failed to start bots", "error", err)
		return 1
	}

	log.Info("Starting bots...")
	runErr := app.Run(ctx)

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bots stopped due to error", "error", runErr)
		return 1
	}

	log.Info("Bots stopped gracefully.")
	return 0
}
