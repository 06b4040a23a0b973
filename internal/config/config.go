// Package config provides centralized configuration management for the
// importer. It loads configuration from environment variables with
// sensible defaults and validates all settings on startup to fail fast
// on misconfiguration.
package config

import "time"

// Config holds all importer configuration.
// All settings can be configured via environment variables.
type Config struct {
	Database DatabaseConfig
	Import   ImportConfig
	Logging  LoggingConfig
}

// DatabaseConfig holds database connection settings.
// The URL is only required for operations that resolve nodes; pure
// parsing runs without a database.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string.
	// Supports both DATABASE_URL and DB_URL env vars for compatibility.
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of connections in the pool (default: 4)
	MaxConns int `env:"DB_MAX_CONNS" default:"4"`

	// MinConns is the minimum number of connections to keep open (default: 1)
	MinConns int `env:"DB_MIN_CONNS" default:"1"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the maximum idle time before a connection is closed (default: 30m)
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// ImportConfig holds CSV import settings.
type ImportConfig struct {
	// MaxFileSize is the maximum allowed file size in bytes (default: 100MB)
	MaxFileSize int64 `env:"IMPORT_MAX_FILE_SIZE" default:"104857600"`

	// Timeout is the maximum duration for a single resolve pass,
	// including all node lookups (default: 10m)
	Timeout time.Duration `env:"IMPORT_TIMEOUT" default:"10m"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}
