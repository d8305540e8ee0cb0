package database

import (
	"database/sql"
	"strconv"
	"strings"
	"time"
)

// Dialect abstracts the differences between the supported SQL engines.
// Store code writes queries with ? placeholders; the dialect rewrites
// them when the engine needs a different syntax.
type Dialect interface {
	// Name is the short identifier used for logging and as the
	// migrations subdirectory (migrations/<name>/).
	Name() string

	// DriverName is the registered database/sql driver.
	DriverName() string

	// DSN builds the connection string from config.
	DSN(cfg DialectConfig) string

	// Rewrite converts ? placeholders to the engine's syntax.
	Rewrite(query string) string

	// Setup applies engine-specific connection settings after open.
	Setup(db *sql.DB) error

	// MigrationsTableDDL creates the table that tracks applied migrations.
	MigrationsTableDDL() string
}

// DialectConfig carries the connection parameters. Path is used by
// SQLite, URL by PostgreSQL and MySQL.
type DialectConfig struct {
	Path string
	URL  string
}

// tunePool applies the shared connection pool limits.
func tunePool(db *sql.DB) {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)
}

// numberPlaceholders replaces each ? with $1, $2, ... for engines that
// use numbered parameters. Queries never embed literal question marks,
// so a plain scan is enough.
func numberPlaceholders(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] != '?' {
			b.WriteByte(query[i])
			continue
		}
		n++
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}
