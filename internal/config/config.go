// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Store selects the entity store backend: memory or sqlite.
	Store string `koanf:"store"`

	// DBPath is the sqlite database file, used when Store is sqlite.
	DBPath string `koanf:"db_path"`

	// DedupeSize sets the size of the submission idempotency index.
	DedupeSize int `koanf:"dedupe_size"`

	// FinaleMaxPlayers caps the season-finale roster.
	FinaleMaxPlayers int `koanf:"finale_max_players"`

	// BountyValue and ConsolationValue are the per-credit point values
	// recorded on tournament results.
	BountyValue      int `koanf:"bounty_value"`
	ConsolationValue int `koanf:"consolation_value"`

	// EnableWS toggles the live standings websocket feed.
	EnableWS bool `koanf:"enable_ws"`

	// ReadTimeoutSec and WriteTimeoutSec bound HTTP request handling.
	ReadTimeoutSec  int `koanf:"read_timeout_sec"`
	WriteTimeoutSec int `koanf:"write_timeout_sec"`

	// ShutdownTimeoutSec bounds graceful shutdown.
	ShutdownTimeoutSec int `koanf:"shutdown_timeout_sec"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":9080",
		Store:              StoreMemory,
		DBPath:             "standings.db",
		DedupeSize:         50_000,
		FinaleMaxPlayers:   32,
		BountyValue:        25,
		ConsolationValue:   25,
		EnableWS:           true,
		ReadTimeoutSec:     10,
		WriteTimeoutSec:    30,
		ShutdownTimeoutSec: 10,
	}
}
