package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/wikideck-hq/wikideck-forge/internal/app"
	"github.com/wikideck-hq/wikideck-forge/internal/config"
	"github.com/wikideck-hq/wikideck-forge/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "forge failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if _, err := logger.Init(cfg.LogLevel); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	forge, err := app.NewForge(ctx, cfg, logger.ZapLogger{})
	if err != nil {
		logger.ErrorObj("failed to initialize forge", "error", err.Error())
		return err
	}
	defer forge.Close()

	args := os.Args[1:]
	if len(args) == 0 {
		return forge.Interactive(ctx)
	}

	articleURL := args[0]
	numCards := 0
	if len(args) > 1 {
		numCards, err = strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("card count must be a number, got %q", args[1])
		}
	}

	return forge.RunOnce(ctx, articleURL, numCards)
}
