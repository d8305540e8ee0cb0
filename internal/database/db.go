package database

import (
	"database/sql"
	"fmt"
	"strings"

	"magilearn/internal/config"
)

// DB is a connection handle paired with its dialect. The query methods
// rewrite placeholders before delegating to database/sql, so store code
// stays engine-agnostic.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Initialize opens a SQLite database at the given path.
func Initialize(dbPath string) (*DB, error) {
	return connect(SQLiteDialect{}, DialectConfig{Path: dbPath})
}

// InitializeWithConfig opens the database selected by configuration.
func InitializeWithConfig(cfg *config.Config) (*DB, error) {
	switch strings.ToLower(cfg.DatabaseType) {
	case "postgres", "postgresql":
		return connect(PostgresDialect{}, DialectConfig{URL: cfg.DatabaseURL})
	case "mysql":
		return connect(MySQLDialect{}, DialectConfig{URL: cfg.DatabaseURL})
	case "sqlite", "sqlite3", "":
		return connect(SQLiteDialect{}, DialectConfig{Path: cfg.DatabasePath})
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.DatabaseType)
	}
}

func connect(dialect Dialect, cfg DialectConfig) (*DB, error) {
	db, err := sql.Open(dialect.DriverName(), dialect.DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialect.Name(), err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", dialect.Name(), err)
	}
	if err := dialect.Setup(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure %s connection: %w", dialect.Name(), err)
	}
	return &DB{DB: db, Dialect: dialect}, nil
}

// Close closes the underlying connection pool.
func (db *DB) Close() error {
	return db.DB.Close()
}

// Query runs a query after placeholder rewriting.
func (db *DB) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return db.DB.Query(db.Dialect.Rewrite(query), args...)
}

// QueryRow runs a single-row query after placeholder rewriting.
func (db *DB) QueryRow(query string, args ...interface{}) *sql.Row {
	return db.DB.QueryRow(db.Dialect.Rewrite(query), args...)
}

// Exec runs a statement after placeholder rewriting.
func (db *DB) Exec(query string, args ...interface{}) (sql.Result, error) {
	return db.DB.Exec(db.Dialect.Rewrite(query), args...)
}
