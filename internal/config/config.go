// Package config provides centralized configuration management for the
// importer. It loads settings from environment variables with sensible
// defaults and validates everything on startup to fail fast on
// misconfiguration.
package config

import (
	"fmt"
	"time"
)

// Config holds all importer configuration.
// All settings can be configured via environment variables.
type Config struct {
	Store     StoreConfig
	Import    ImportConfig
	Translate TranslateConfig
	Logging   LoggingConfig
}

// StoreConfig holds document-store connection settings.
type StoreConfig struct {
	// URL is the document store connection string (required)
	// Supports both STORE_URL and DB_URL env vars for compatibility
	URL string `env:"STORE_URL" envAlt:"DB_URL" required:"true"`

	// Database is the database name (default: participants)
	Database string `env:"STORE_DATABASE" default:"participants"`

	// Timeout is the per-operation deadline (default: 15s)
	Timeout time.Duration `env:"STORE_TIMEOUT" default:"15s"`
}

// ImportConfig holds workbook import settings.
type ImportConfig struct {
	// MaxFileSize is the maximum allowed workbook size in bytes (default: 50MB)
	MaxFileSize int64 `env:"IMPORT_MAX_FILE_SIZE" default:"52428800"`

	// RequireCrossRoster makes the cross-country roster table mandatory
	// during structural validation (default: false; older workbooks lack it)
	RequireCrossRoster bool `env:"IMPORT_REQUIRE_CROSS_ROSTER" default:"false"`

	// Timeout is the maximum duration for one import run (default: 10m)
	Timeout time.Duration `env:"IMPORT_TIMEOUT" default:"10m"`
}

// TranslateConfig holds the optional translation service settings.
type TranslateConfig struct {
	// URL is the translation service endpoint; empty disables translation
	URL string `env:"TRANSLATE_URL"`

	// TargetLang is the language free-text fields are translated into
	// (default: en)
	TargetLang string `env:"TRANSLATE_TARGET_LANG" default:"en"`

	// Timeout is the per-call deadline (default: 10s)
	Timeout time.Duration `env:"TRANSLATE_TIMEOUT" default:"10s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// String returns a safe representation of the config for logging.
// The store URL is masked since it may carry credentials.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Store: {URL: [MASKED], Database: %q, Timeout: %v}, "+
			"Import: {MaxFileSize: %d, RequireCrossRoster: %v, Timeout: %v}, "+
			"Translate: {URL: %q, TargetLang: %q}, "+
			"Logging: {Level: %q, Format: %q}}",
		c.Store.Database, c.Store.Timeout,
		c.Import.MaxFileSize, c.Import.RequireCrossRoster, c.Import.Timeout,
		c.Translate.URL, c.Translate.TargetLang,
		c.Logging.Level, c.Logging.Format)
}
