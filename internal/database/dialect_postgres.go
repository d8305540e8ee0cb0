package database

import (
	"database/sql"

	_ "github.com/lib/pq"
)

// PostgresDialect targets PostgreSQL via lib/pq.
type PostgresDialect struct{}

func (PostgresDialect) Name() string       { return "postgres" }
func (PostgresDialect) DriverName() string { return "postgres" }

func (PostgresDialect) DSN(cfg DialectConfig) string { return cfg.URL }

// Rewrite converts ? placeholders to the $1, $2 form PostgreSQL requires.
func (PostgresDialect) Rewrite(query string) string {
	return numberPlaceholders(query)
}

func (PostgresDialect) Setup(db *sql.DB) error {
	tunePool(db)
	return nil
}

func (PostgresDialect) MigrationsTableDDL() string {
	return `
		CREATE TABLE IF NOT EXISTS migrations (
			id BIGSERIAL PRIMARY KEY,
			filename TEXT UNIQUE NOT NULL,
			executed_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		);
	`
}
