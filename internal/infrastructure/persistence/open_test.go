package persistence

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/gradebook/config"
	"github.com/alem-hub/gradebook/internal/infrastructure/persistence/jsonfile"
	"github.com/alem-hub/gradebook/internal/infrastructure/persistence/sqlite"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cfg := config.StorageConfig{
		FilePath:   filepath.Join(dir, "records.json"),
		SQLitePath: filepath.Join(dir, "gradebook.db"),
	}

	cfg.Backend = config.StoreJSON
	store, closeFn, err := Open(ctx, cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &jsonfile.Store{}, store)
	assert.Equal(t, cfg.FilePath, store.Location())
	require.NoError(t, closeFn())

	cfg.Backend = config.StoreSQLite
	store, closeFn, err = Open(ctx, cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &sqlite.Store{}, store)
	require.NoError(t, closeFn())

	cfg.Backend = "csv"
	_, _, err = Open(ctx, cfg, nil)
	assert.ErrorContains(t, err, "unknown backend")
}
