package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"APP_NAME", "APP_ENV", "APP_VERSION",
		"GRADEBOOK_STORE", "GRADEBOOK_FILE", "GRADEBOOK_SQLITE_PATH", "GRADEBOOK_STORE_TIMEOUT",
		"GRADEBOOK_EXPORT_PATH", "GRADEBOOK_EXPORT_SHEET",
		"LOG_LEVEL", "LOG_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreJSON, cfg.Storage.Backend)
	assert.Equal(t, DefaultRecordsFile, cfg.Storage.FilePath)
	assert.Equal(t, DefaultRecordsFile, cfg.Storage.Path())
	assert.Equal(t, 30*time.Second, cfg.Storage.Timeout)
	assert.Equal(t, "Roster", cfg.Export.Sheet)
	assert.Equal(t, "info", cfg.Observability.LogLevel)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GRADEBOOK_STORE", "SQLite")
	t.Setenv("GRADEBOOK_SQLITE_PATH", "/tmp/gb.db")
	t.Setenv("GRADEBOOK_STORE_TIMEOUT", "5s")
	t.Setenv("LOG_FILE", "-")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreSQLite, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/gb.db", cfg.Storage.Path())
	assert.Equal(t, 5*time.Second, cfg.Storage.Timeout)
	assert.Equal(t, "-", cfg.Observability.LogFile)
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("GRADEBOOK_STORE_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Storage.Timeout)
}

func TestLoad_InvalidBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("GRADEBOOK_STORE", "postgres")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GRADEBOOK_STORE")
}

func TestValidate_SheetName(t *testing.T) {
	cfg := &Config{
		Storage: StorageConfig{Backend: StoreJSON, FilePath: "x.json", Timeout: time.Second},
		Export:  ExportConfig{Sheet: "this sheet name is far too long to be accepted"},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GRADEBOOK_EXPORT_SHEET")

	cfg.Export.Sheet = "Roster"
	assert.NoError(t, cfg.Validate())
}
