// Package sqlite stores extracted garments in SQLite.
package sqlite

import (
	"context"
	"database/sql"

	"github.com/fwojciec/wardrobe"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return wardrobe.WrapError(wardrobe.EINTERNAL, err, "open database")
	}

	// SQLite allows one writer at a time.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return wardrobe.WrapError(wardrobe.EINTERNAL, err, "connect to database %s", db.path)
	}

	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return wardrobe.WrapError(wardrobe.EINTERNAL, err, "set busy timeout")
	}

	// WAL is not available for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return wardrobe.WrapError(wardrobe.EINTERNAL, err, "enable WAL mode")
		}
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return wardrobe.WrapError(wardrobe.EINTERNAL, err, "create schema")
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS garments (
			id TEXT PRIMARY KEY,
			variant TEXT NOT NULL,
			source TEXT NOT NULL,
			source_hash TEXT NOT NULL DEFAULT '',
			is_clothing INTEGER NOT NULL DEFAULT 0,
			record TEXT NOT NULL,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_garments_source ON garments(source);
		CREATE INDEX IF NOT EXISTS idx_garments_created_at ON garments(created_at);
	`

	_, err := db.db.Exec(schema)
	return err
}
