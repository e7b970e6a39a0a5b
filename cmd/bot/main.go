package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/honeycomb-hq/honeycomb-bot-go/internal/app"
	"github.com/honeycomb-hq/honeycomb-bot-go/internal/config"
	"github.com/honeycomb-hq/honeycomb-bot-go/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "bot run failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bot, err := app.NewBot(cfg, log)
	if err != nil {
		logger.ErrorObj("failed to initialize bot", "error", err)
		return err
	}

	if err := bot.Run(ctx); err != nil {
		return fmt.Errorf("bot run: %w", err)
	}

	return nil
}
