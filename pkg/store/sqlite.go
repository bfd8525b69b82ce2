package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const sqliteFile = "session.sqlite"

// SQLite is a KV backed by a single-table SQLite database.
type SQLite struct {
	sql  *sql.DB
	path string
}

// OpenSQLite opens (creating if needed) <basePath>/session.sqlite.
func OpenSQLite(basePath string) (*SQLite, error) {
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	path := filepath.Join(basePath, sqliteFile)
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: ping sqlite: %w", err)
	}
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS kv (
  key        TEXT PRIMARY KEY,
  value      TEXT NOT NULL,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	return &SQLite{sql: db, path: path}, nil
}

// Get returns the value stored under key.
func (s *SQLite) Get(key string) (string, bool) {
	var value string
	if err := s.sql.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value); err != nil {
		return "", false
	}
	return value, true
}

// Set stores value under key.
func (s *SQLite) Set(key, value string) error {
	_, err := s.sql.Exec(`INSERT INTO kv(key, value) VALUES(?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`, key, value)
	if err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

// Path returns the database file.
func (s *SQLite) Path() string {
	return s.path
}

// Close closes the database.
func (s *SQLite) Close() error {
	if s == nil || s.sql == nil {
		return nil
	}
	return s.sql.Close()
}
