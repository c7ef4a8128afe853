package cache

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joseph-ayodele/claims-triage/internal/common"
	"github.com/joseph-ayodele/claims-triage/internal/repository"
)

// NewStore builds the byte store selected by cfg.Backend.
func NewStore(ctx context.Context, cfg common.CacheConfig, logger *slog.Logger) (Store, error) {
	switch cfg.Backend {
	case "fs", "":
		return NewFileStore(cfg.Dir)
	case "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(cfg.SQLitePath)
	case "postgres":
		pool, err := repository.Open(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, err
		}
		store, err := NewPostgresStore(ctx, pool)
		if err != nil {
			repository.Close(pool, logger)
			return nil, err
		}
		return store, nil
	case "s3":
		return NewS3Store(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Backend)
	}
}

// Open builds the configured store and wraps it in a typed Cache.
func Open(ctx context.Context, cfg common.CacheConfig, logger *slog.Logger) (*Cache, error) {
	store, err := NewStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	c, err := New(store, logger)
	if err != nil {
		store.Close()
		return nil, err
	}
	return c, nil
}
