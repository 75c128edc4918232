// Package store opens the SQLite database file and manages the schema.
//
// The database is a single file created on first write. Foreign key
// enforcement is off unless requested: SQLite leaves the pragma disabled
// per connection, and callers that need referential integrity opt in with
// WithForeignKeys.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver (pure Go)

	"newsstand/orm"
)

// DefaultPath is the database file created in the working directory when
// no path is configured.
const DefaultPath = "newsstand.db"

// MemoryPath opens a private in-memory database, mainly for tests.
const MemoryPath = ":memory:"

type options struct {
	foreignKeys bool
	logger      orm.Logger
}

// Option configures Open.
type Option func(*options)

// WithForeignKeys turns on PRAGMA foreign_keys for every connection.
// Without it, inserting a row that references a missing parent succeeds
// silently.
func WithForeignKeys() Option {
	return func(o *options) { o.foreignKeys = true }
}

// WithLogger attaches a query logger to the returned DB.
func WithLogger(l orm.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Open opens the database at path, creating the file if absent.
// Use MemoryPath for an in-memory database.
func Open(path string, opts ...Option) (*orm.DB, error) {
	var o options
	for _, fn := range opts {
		fn(&o)
	}

	dsn := "file:" + path
	if path == MemoryPath {
		dsn = "file::memory:"
	}
	// Pragmas are passed in the DSN so they apply to every pooled
	// connection, not just the first one.
	dsn += "?_pragma=busy_timeout(5000)"
	if o.foreignKeys {
		dsn += "&_pragma=foreign_keys(1)"
	}

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	if path == MemoryPath {
		// Each pooled connection would otherwise see its own empty
		// in-memory database.
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("store: ping %s: %w", path, err)
	}

	db := orm.New(sqlDB, orm.SQLite)
	if o.logger != nil {
		db = db.Debug(o.logger)
	}
	return db, nil
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS authors (
		id   INTEGER PRIMARY KEY,
		name TEXT    NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS magazines (
		id       INTEGER PRIMARY KEY,
		name     TEXT    NOT NULL UNIQUE,
		category TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS articles (
		id          INTEGER PRIMARY KEY,
		title       TEXT    NOT NULL,
		content     TEXT,
		author_id   INTEGER NOT NULL REFERENCES authors(id),
		magazine_id INTEGER NOT NULL REFERENCES magazines(id)
	)`,
}

// CreateSchema creates the authors, magazines and articles tables.
// Safe to call more than once; existing tables and their data are left
// alone.
func CreateSchema(ctx context.Context, db *orm.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("store: create schema: %w", err)
		}
	}
	return nil
}
