package database

import (
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLDialect targets MySQL and MariaDB. The DATABASE_URL must include
// parseTime=true and multiStatements=true for scanning and migrations.
type MySQLDialect struct{}

func (MySQLDialect) Name() string       { return "mysql" }
func (MySQLDialect) DriverName() string { return "mysql" }

func (MySQLDialect) DSN(cfg DialectConfig) string { return cfg.URL }

// Rewrite is a no-op; MySQL takes ? placeholders natively.
func (MySQLDialect) Rewrite(query string) string { return query }

func (MySQLDialect) Setup(db *sql.DB) error {
	tunePool(db)

	// Sessions may inherit FOREIGN_KEY_CHECKS=0 from server defaults
	if _, err := db.Exec("SET FOREIGN_KEY_CHECKS = 1;"); err != nil {
		return err
	}
	return nil
}

func (MySQLDialect) MigrationsTableDDL() string {
	return `
		CREATE TABLE IF NOT EXISTS migrations (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			filename VARCHAR(255) UNIQUE NOT NULL,
			executed_at DATETIME(6) DEFAULT CURRENT_TIMESTAMP(6)
		);
	`
}
