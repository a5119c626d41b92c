package storage

import (
	"context"
	"fmt"

	"github.com/jonathan/prep-readiness/internal/config"
)

// Open returns the slot backend selected by cfg.Backend
func Open(ctx context.Context, cfg config.StorageConfig) (Slot, error) {
	switch cfg.Backend {
	case config.BackendFile:
		return NewFileSlot(cfg.Path)
	case config.BackendSQLite:
		return NewSQLiteSlot(cfg.Path)
	case config.BackendRedis:
		return NewRedisSlot(ctx, cfg.Redis)
	case config.BackendPostgres:
		return NewPostgresSlot(ctx, cfg.Postgres.URL)
	case config.BackendMemory:
		return NewMemorySlot(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
