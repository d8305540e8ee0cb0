package database

import "database/sql"

// DBTX is the subset of operations the store needs. Both *DB and *Tx
// satisfy it, so store methods can run inside or outside a transaction.
type DBTX interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// Tx is a transaction with the same placeholder rewriting as DB.
type Tx struct {
	*sql.Tx
	dialect Dialect
}

// Begin starts a transaction.
func (db *DB) Begin() (*Tx, error) {
	tx, err := db.DB.Begin()
	if err != nil {
		return nil, err
	}
	return &Tx{Tx: tx, dialect: db.Dialect}, nil
}

// Query runs a query in the transaction after placeholder rewriting.
func (tx *Tx) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return tx.Tx.Query(tx.dialect.Rewrite(query), args...)
}

// QueryRow runs a single-row query in the transaction after placeholder rewriting.
func (tx *Tx) QueryRow(query string, args ...interface{}) *sql.Row {
	return tx.Tx.QueryRow(tx.dialect.Rewrite(query), args...)
}

// Exec runs a statement in the transaction after placeholder rewriting.
func (tx *Tx) Exec(query string, args ...interface{}) (sql.Result, error) {
	return tx.Tx.Exec(tx.dialect.Rewrite(query), args...)
}
