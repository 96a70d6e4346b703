package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/comicverse/hub/internal/catalog"
	"github.com/comicverse/hub/internal/config"
	"github.com/comicverse/hub/internal/console"
	"github.com/comicverse/hub/internal/service"
	"github.com/comicverse/hub/pkg/debounce"
	"github.com/comicverse/hub/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := logger.NewWithWriter("browse", cfg.LogLevel, os.Stderr)

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Error("failed to load catalog", slog.String("error", err.Error()))
		os.Exit(1)
	}

	debouncer := debounce.New(cfg.SearchDebounce(), nil)
	defer debouncer.Cancel()
	session := service.NewBrowseSession(cat, debouncer)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := console.New(session, os.Stdout).Run(ctx, os.Stdin); err != nil {
		log.Error("console error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
