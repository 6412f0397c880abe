// Package sqlite provides SQLite-based persistent storage for VapeTrack.
// Uses WAL mode for concurrent reads and crash-safe writes.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/state.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "state.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// Single-row user profile. id is pinned to 1.
		`CREATE TABLE IF NOT EXISTS profile (
			id                  INTEGER PRIMARY KEY CHECK (id = 1),
			name                TEXT NOT NULL DEFAULT '',
			email               TEXT NOT NULL DEFAULT '',
			onboarded_at        INTEGER,
			cigs_per_day        INTEGER NOT NULL,
			cigs_per_pack       INTEGER NOT NULL,
			pack_cost           REAL NOT NULL,
			has_device          BOOLEAN NOT NULL DEFAULT 0,
			device_name         TEXT NOT NULL DEFAULT '',
			device_flavor       TEXT NOT NULL DEFAULT '',
			device_type         TEXT NOT NULL DEFAULT '',
			device_nicotine     REAL NOT NULL DEFAULT 0,
			device_reservoir_ml REAL NOT NULL DEFAULT 0,
			device_cost         REAL NOT NULL DEFAULT 0,
			device_rated_puffs  INTEGER NOT NULL DEFAULT 0,
			juice_level         REAL NOT NULL,
			bottle_size_ml      REAL NOT NULL,
			xp                  INTEGER NOT NULL DEFAULT 0,
			smoke_free          BOOLEAN NOT NULL DEFAULT 0,
			smoke_free_since    INTEGER
		)`,

		// Append-only puff log. Entries are never updated or deleted
		// individually, only wholesale-cleared on full reset.
		`CREATE TABLE IF NOT EXISTS puff_log (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			source    TEXT NOT NULL DEFAULT 'direct'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_puff_ts ON puff_log(timestamp)`,

		// Unlocked badges (monotonic: rows are only ever inserted)
		`CREATE TABLE IF NOT EXISTS badges (
			id          TEXT PRIMARY KEY,
			unlocked_at INTEGER NOT NULL
		)`,

		// Irreversible reward purchases
		`CREATE TABLE IF NOT EXISTS reward_purchases (
			id           TEXT PRIMARY KEY,
			purchased_at INTEGER NOT NULL
		)`,

		// One equipped item per category
		`CREATE TABLE IF NOT EXISTS reward_equipped (
			category TEXT PRIMARY KEY,
			item_id  TEXT NOT NULL
		)`,

		// New-reservoir checkpoints, strictly chronological
		`CREATE TABLE IF NOT EXISTS juice_purchases (
			id                   TEXT PRIMARY KEY,
			timestamp            INTEGER NOT NULL,
			puffs_since_previous INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_juice_ts ON juice_purchases(timestamp)`,

		// Key-value store for engine state (daily award checkpoint etc.)
		`CREATE TABLE IF NOT EXISTS state (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// ─── State KV ───────────────────────────────────────────────────────────────

// SetState stores a key-value pair in the state table.
func (d *DB) SetState(key, value string) error {
	_, err := d.db.Exec(
		`INSERT INTO state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		key, value,
	)
	return err
}

// GetState retrieves a value from the state table ("" if absent).
func (d *DB) GetState(key string) (string, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// RemoveState deletes a key from the state table. Idempotent.
func (d *DB) RemoveState(key string) error {
	_, err := d.db.Exec(`DELETE FROM state WHERE key = ?`, key)
	return err
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
