// Package storage opens the session repository selected in configuration.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/javiermolinar/gigbook/internal/config"
	"github.com/javiermolinar/gigbook/internal/db"
	"github.com/javiermolinar/gigbook/internal/gig"
	"github.com/javiermolinar/gigbook/internal/redisstore"
)

// Open returns the repository for cfg's storage backend. The caller must
// Close it.
func Open(ctx context.Context, cfg *config.Config) (gig.Repository, error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		if dir := filepath.Dir(cfg.Storage.DBPath); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating data directory: %w", err)
			}
		}
		repo, err := db.New(cfg.Storage.DBPath)
		if err != nil {
			return nil, err
		}
		return repo, nil

	case config.BackendRedis:
		ttl, err := cfg.SessionTTL()
		if err != nil {
			return nil, err
		}
		client, err := redisstore.Connect(ctx, redisstore.Options{
			Addr:     cfg.Storage.RedisAddr,
			Password: cfg.Storage.RedisPassword,
			DB:       cfg.Storage.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		return redisstore.New(client, ttl), nil

	case config.BackendMemory:
		return gig.NewMemoryRepository(), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
