// Package sqlite implements repository.Store on an embedded SQLite database
// (modernc.org/sqlite, pure Go). It suits single-server deployments and tests.
//
// Timestamps are stored as INTEGER unix nanoseconds so ordering in SQL is
// exact. Project tags are stored as a JSON array in a TEXT column.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vs-portfolio/portfolio/internal/repository"
)

// compile-time check that *DB implements repository.Store
var _ repository.Store = (*DB)(nil)

// DB wraps a sql.DB connection pool.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath and runs migrations.
//
// dbPath examples:
//   - "data/portfolio.db" → file-based database
//   - ":memory:"          → in-memory database, lost on close
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Every pooled connection to ":memory:" would get its own empty database.
	if dbPath == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets readers proceed while a write is in progress.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA busy_timeout=5000"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting busy timeout: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping verifies the database is still reachable.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite: ping: %w", err)
	}
	return nil
}

// migrate creates the tables. CREATE ... IF NOT EXISTS keeps it idempotent.
func (db *DB) migrate() error {
	stmts := []struct {
		name string
		sql  string
	}{
		{"admins", `
			CREATE TABLE IF NOT EXISTS admins (
				id       TEXT PRIMARY KEY,
				username TEXT NOT NULL,
				password TEXT NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_admins_username ON admins(username);
		`},
		{"educations", `
			CREATE TABLE IF NOT EXISTS educations (
				id            TEXT PRIMARY KEY,
				year          TEXT NOT NULL,
				course        TEXT NOT NULL,
				college       TEXT NOT NULL,
				description   TEXT NOT NULL DEFAULT '',
				display_order INTEGER NOT NULL DEFAULT 0
			);
		`},
		{"experiences", `
			CREATE TABLE IF NOT EXISTS experiences (
				id            TEXT PRIMARY KEY,
				year          TEXT NOT NULL,
				role          TEXT NOT NULL,
				company       TEXT NOT NULL,
				description   TEXT NOT NULL DEFAULT '',
				display_order INTEGER NOT NULL DEFAULT 0
			);
		`},
		{"projects", `
			CREATE TABLE IF NOT EXISTS projects (
				id            TEXT PRIMARY KEY,
				name          TEXT NOT NULL,
				image_url     TEXT NOT NULL,
				tags          TEXT NOT NULL DEFAULT '[]',
				display_order INTEGER NOT NULL DEFAULT 0
			);
		`},
		{"blog_posts", `
			CREATE TABLE IF NOT EXISTS blog_posts (
				id                 TEXT PRIMARY KEY,
				linkedin_embed_url TEXT NOT NULL,
				post_date          INTEGER NOT NULL,
				display_order      INTEGER NOT NULL DEFAULT 0
			);
		`},
		{"contacts", `
			CREATE TABLE IF NOT EXISTS contacts (
				id           TEXT PRIMARY KEY,
				name         TEXT NOT NULL,
				email        TEXT NOT NULL,
				subject      TEXT NOT NULL DEFAULT '',
				message      TEXT NOT NULL,
				submitted_at INTEGER NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_contacts_submitted_at ON contacts(submitted_at);
		`},
		{"resumes", `
			CREATE TABLE IF NOT EXISTS resumes (
				id           TEXT PRIMARY KEY,
				filename     TEXT NOT NULL,
				content_type TEXT NOT NULL,
				content      BLOB NOT NULL,
				uploaded_at  INTEGER NOT NULL
			);
		`},
	}

	for _, s := range stmts {
		if _, err := db.conn.Exec(s.sql); err != nil {
			return fmt.Errorf("creating %s table: %w", s.name, err)
		}
	}
	return nil
}

func toNanos(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func fromNanos(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n).UTC()
}
