// Package sqlite stores queryable catalog snapshots and the build ledger in
// SQLite.
package sqlite

import (
	"context"
	"database/sql"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/timarques/eucatalog"
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

// Open opens the database, applies connection pragmas and creates the
// schema if needed. Errors are EIO.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return eucatalog.Errorf(eucatalog.EIO, "open snapshot %s: %v", db.path, err)
	}

	// SQLite allows one writer; a single connection avoids lock errors.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return eucatalog.Errorf(eucatalog.EIO, "connect to snapshot %s: %v", db.path, err)
	}

	for _, pragma := range db.pragmas() {
		if _, err := conn.Exec("PRAGMA " + pragma); err != nil {
			conn.Close()
			return eucatalog.Errorf(eucatalog.EIO, "set %s: %v", pragma, err)
		}
	}

	db.db = conn
	if err := db.createSchema(); err != nil {
		conn.Close()
		return eucatalog.Errorf(eucatalog.EIO, "create snapshot schema: %v", err)
	}
	return nil
}

// pragmas returns the connection settings. WAL is unavailable for
// in-memory databases.
func (db *DB) pragmas() []string {
	pragmas := []string{"busy_timeout = 5000"}
	if db.path != ":memory:" {
		pragmas = append(pragmas, "journal_mode = WAL")
	}
	return append(pragmas, "foreign_keys = ON")
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

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}

// createSchema creates the database tables if they don't exist.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS categories (
			position INTEGER PRIMARY KEY,
			slug TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			summary TEXT NOT NULL DEFAULT '',
			icon TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS products (
			position INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			description TEXT NOT NULL DEFAULT '',
			summary TEXT NOT NULL DEFAULT '',
			country INTEGER NOT NULL DEFAULT 0,
			logo TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS product_categories (
			product INTEGER NOT NULL REFERENCES products(position) ON DELETE CASCADE,
			ordinal INTEGER NOT NULL,
			slug TEXT NOT NULL REFERENCES categories(slug) ON DELETE CASCADE,
			PRIMARY KEY (product, ordinal)
		);

		CREATE TABLE IF NOT EXISTS websites (
			product INTEGER NOT NULL REFERENCES products(position) ON DELETE CASCADE,
			ordinal INTEGER NOT NULL,
			label TEXT NOT NULL,
			url TEXT NOT NULL,
			PRIMARY KEY (product, ordinal)
		);

		CREATE TABLE IF NOT EXISTS builds (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			mode TEXT NOT NULL,
			categories INTEGER NOT NULL,
			products INTEGER NOT NULL,
			catalog_digest TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_product_categories_slug ON product_categories(slug);
		CREATE INDEX IF NOT EXISTS idx_builds_created_at ON builds(created_at);
	`

	_, err := db.db.Exec(schema)
	return err
}
