package database

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDialect is the default engine for single-node deployments.
type SQLiteDialect struct{}

func (SQLiteDialect) Name() string       { return "sqlite" }
func (SQLiteDialect) DriverName() string { return "sqlite3" }

func (SQLiteDialect) DSN(cfg DialectConfig) string { return cfg.Path }

// Rewrite is a no-op; SQLite takes ? placeholders natively.
func (SQLiteDialect) Rewrite(query string) string { return query }

func (SQLiteDialect) Setup(db *sql.DB) error {
	tunePool(db)

	// WAL lets readers proceed while a write is in flight
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return err
	}
	// SQLite ships with foreign keys off
	if _, err := db.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		return err
	}
	return nil
}

func (SQLiteDialect) MigrationsTableDDL() string {
	return `
		CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			filename TEXT UNIQUE NOT NULL,
			executed_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`
}
