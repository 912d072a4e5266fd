// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-enml/internal/app"
	"github.com/MKhiriev/go-enml/internal/config"
	"github.com/MKhiriev/go-enml/internal/converter"
	"github.com/MKhiriev/go-enml/internal/logger"
	"github.com/MKhiriev/go-enml/internal/service"
	"github.com/MKhiriev/go-enml/internal/store"
	"github.com/MKhiriev/go-enml/internal/tui"
	"github.com/MKhiriev/go-enml/internal/workers"
	"github.com/MKhiriev/go-enml/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "enmlconv: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	buildInfo := newBuildInfo()
	log := logger.NewLogger("enmlconv")
	if cfg.App.Interactive {
		// the prompt owns the terminal
		log = logger.NewFileLogger("enmlconv")
	}
	log.Debug().
		Str("version", buildInfo.BuildVersion()).
		Str("date", buildInfo.BuildDate()).
		Str("commit", buildInfo.BuildCommit()).
		Str("mode", cfg.Converter.Mode).
		Msg("starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var resolver converter.ResourceResolver
	if cfg.Storage.DB.DSN != "" {
		storages, err := store.NewStorages(ctx, cfg.Storage, log)
		if err != nil {
			return fmt.Errorf("create storages: %w", err)
		}
		defer storages.Close()
		resolver = storages.ResourceRepository
	}

	var prompter service.PassphrasePrompter
	if cfg.App.Interactive {
		prompter = tui.New(log)
	}

	services := service.NewServices(resolver, prompter, *cfg, log)
	pool := workers.NewWorkers(cfg.Workers, log)

	a, err := app.NewApp(*cfg, services.NoteContentService, pool, log)
	if err != nil {
		return err
	}
	return a.Run(ctx)
}

func newBuildInfo() models.AppBuildInfo {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}
	return models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
}
