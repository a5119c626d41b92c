package main

import (
	"context"
	"fmt"

	"github.com/jonathan/prep-readiness/internal/analysis"
	"github.com/jonathan/prep-readiness/internal/config"
	"github.com/jonathan/prep-readiness/internal/logging"
	"github.com/jonathan/prep-readiness/internal/progress"
	"github.com/jonathan/prep-readiness/internal/storage"
	"go.uber.org/zap"
)

// app holds the wired dependencies shared by every subcommand
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	slot     storage.Slot
	store    *storage.Store
	analyses *analysis.Service
	tracker  *progress.Tracker
}

// openApp loads configuration, builds the logger and opens the configured storage slot
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format)

	slot, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Backend, err)
	}
	logger.Debug("storage opened", zap.String("backend", cfg.Storage.Backend))

	store := storage.NewStore(slot,
		storage.WithLogger(logger),
		storage.WithSchemaCheck(cfg.Storage.VerifySchema),
	)

	return &app{
		cfg:      cfg,
		logger:   logger,
		slot:     slot,
		store:    store,
		analyses: analysis.NewService(store, analysis.WithLogger(logger)),
		tracker:  progress.NewTracker(slot, logger),
	}, nil
}

// Close releases the storage slot and flushes the logger
func (a *app) Close() {
	if err := a.slot.Close(); err != nil {
		a.logger.Warn("failed to close storage", zap.Error(err))
	}
	_ = a.logger.Sync()
}
