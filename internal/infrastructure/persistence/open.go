// Package persistence selects the roster store backend.
package persistence

import (
	"context"
	"fmt"

	"github.com/alem-hub/gradebook/config"
	"github.com/alem-hub/gradebook/internal/domain/roster"
	"github.com/alem-hub/gradebook/internal/infrastructure/persistence/jsonfile"
	"github.com/alem-hub/gradebook/internal/infrastructure/persistence/sqlite"
	"github.com/alem-hub/gradebook/pkg/logger"
)

// Open returns the store for the configured backend.
// The close function is never nil.
func Open(ctx context.Context, cfg config.StorageConfig, log *logger.Logger) (roster.Store, func() error, error) {
	switch cfg.Backend {
	case config.StoreSQLite:
		store, err := sqlite.NewStore(ctx, cfg.SQLitePath, log)
		if err != nil {
			return nil, nil, fmt.Errorf("persistence: %w", err)
		}
		return store, store.Close, nil
	case config.StoreJSON, "":
		return jsonfile.NewStore(cfg.FilePath, log), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("persistence: unknown backend %q", cfg.Backend)
	}
}
