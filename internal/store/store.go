// Package store persists knowledge items and review records in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite database and hands out repositories.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn, applies recommended pragmas,
// and creates the schema if needed.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Repo returns a repository backed by this store.
func (s *Store) Repo() *Repo {
	return &Repo{db: s.db, q: s.db}
}

// applyPragmas configures SQLite for single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// migrate creates the schema. Timestamps are RFC3339 UTC text so they sort
// lexicographically in index order.
func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS knowledge_items (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			review_count INTEGER NOT NULL DEFAULT 0,
			frequency_coefficient REAL NOT NULL DEFAULT 1.0,
			mastery_status TEXT NOT NULL DEFAULT 'learning',
			created_at TEXT NOT NULL,
			last_review_at TEXT,
			next_review_at TEXT,
			mastered_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS review_records (
			id TEXT PRIMARY KEY,
			knowledge_id TEXT NOT NULL REFERENCES knowledge_items(id) ON DELETE CASCADE,
			rating INTEGER NOT NULL,
			reviewed_at TEXT NOT NULL,
			next_review_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_items_next_review
			ON knowledge_items(next_review_at)`,
		`CREATE INDEX IF NOT EXISTS idx_records_knowledge
			ON review_records(knowledge_id, reviewed_at)`,
	}
	ctx := context.Background()
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %.40q: %w", stmt, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. RECOLLECT_DB environment variable
// 2. $XDG_DATA_HOME/recollect/recollect.db
// 3. ~/.local/share/recollect/recollect.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("RECOLLECT_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "recollect", "recollect.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
