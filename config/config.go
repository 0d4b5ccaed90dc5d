package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Environment represents the application environment.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// StoreBackend selects where the roster is persisted.
type StoreBackend string

const (
	StoreJSON   StoreBackend = "json"
	StoreSQLite StoreBackend = "sqlite"
)

// DefaultRecordsFile is the roster file in the working directory.
const DefaultRecordsFile = "studentsrecords.json"

// Config holds all application configuration.
type Config struct {
	// Application
	App AppConfig

	// Roster persistence
	Storage StorageConfig

	// Spreadsheet export
	Export ExportConfig

	// Observability
	Observability ObservabilityConfig
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string
	Environment Environment
	Version     string
}

// StorageConfig holds roster persistence settings.
type StorageConfig struct {
	// Backend is "json" (default) or "sqlite".
	Backend StoreBackend

	// FilePath is the JSON roster file, loaded at startup and saved on request.
	FilePath string

	// SQLitePath is the database file used by the sqlite backend.
	SQLitePath string

	// Timeout bounds a single save or load.
	Timeout time.Duration
}

// Path returns the location of the configured backend.
func (s StorageConfig) Path() string {
	if s.Backend == StoreSQLite {
		return s.SQLitePath
	}
	return s.FilePath
}

// ExportConfig holds spreadsheet export settings.
type ExportConfig struct {
	Path  string
	Sheet string
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	// Logging
	LogLevel string // debug, info, warn, error
	LogFile  string // "-" means stderr
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App:           loadAppConfig(),
		Storage:       loadStorageConfig(),
		Export:        loadExportConfig(),
		Observability: loadObservabilityConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func loadAppConfig() AppConfig {
	return AppConfig{
		Name:        getEnv("APP_NAME", "gradebook"),
		Environment: Environment(getEnv("APP_ENV", string(EnvDevelopment))),
		Version:     getEnv("APP_VERSION", "0.1.0"),
	}
}

func loadStorageConfig() StorageConfig {
	return StorageConfig{
		Backend:    StoreBackend(strings.ToLower(getEnv("GRADEBOOK_STORE", string(StoreJSON)))),
		FilePath:   getEnv("GRADEBOOK_FILE", DefaultRecordsFile),
		SQLitePath: getEnv("GRADEBOOK_SQLITE_PATH", "gradebook.db"),
		Timeout:    getEnvDuration("GRADEBOOK_STORE_TIMEOUT", 30*time.Second),
	}
}

func loadExportConfig() ExportConfig {
	return ExportConfig{
		Path:  getEnv("GRADEBOOK_EXPORT_PATH", "gradebook.xlsx"),
		Sheet: getEnv("GRADEBOOK_EXPORT_SHEET", "Roster"),
	}
}

func loadObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", "gradebook.log"),
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []string

	switch c.Storage.Backend {
	case StoreJSON:
		if c.Storage.FilePath == "" {
			errs = append(errs, "GRADEBOOK_FILE must not be empty")
		}
	case StoreSQLite:
		if c.Storage.SQLitePath == "" {
			errs = append(errs, "GRADEBOOK_SQLITE_PATH must not be empty")
		}
	default:
		errs = append(errs, fmt.Sprintf("GRADEBOOK_STORE must be %q or %q, got %q", StoreJSON, StoreSQLite, c.Storage.Backend))
	}

	if c.Storage.Timeout <= 0 {
		errs = append(errs, "GRADEBOOK_STORE_TIMEOUT must be positive")
	}

	if strings.TrimSpace(c.Export.Sheet) == "" || len(c.Export.Sheet) > 31 {
		errs = append(errs, "GRADEBOOK_EXPORT_SHEET must be 1-31 characters")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == EnvDevelopment
}

// --- Helper functions for environment variable parsing ---

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}
