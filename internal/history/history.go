// Package history records every translation in a SQLite database at
// ~/.chatcmd/history.db.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const HistoryFileName = "history.db"

// Entry is one recorded translation.
type Entry struct {
	ID        int64
	Timestamp time.Time
	Provider  string
	Request   string
	Command   string
	Copied    bool
}

// Store is a persistent history store backed by SQLite.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the path to the history database.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".chatcmd", HistoryFileName), nil
}

// Open opens (creating if needed) the history database at dbPath.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS translations (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at TEXT NOT NULL,
			provider   TEXT NOT NULL,
			request    TEXT NOT NULL,
			command    TEXT NOT NULL,
			copied     INTEGER NOT NULL DEFAULT 0
		)
	`)
	return err
}

// Add records one translation.
func (s *Store) Add(e Entry) error {
	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO translations (created_at, provider, request, command, copied) VALUES (?, ?, ?, ?, ?)`,
		ts.Format(time.RFC3339), e.Provider, e.Request, e.Command, boolToInt(e.Copied),
	)
	if err != nil {
		return fmt.Errorf("failed to save history entry: %w", err)
	}
	return nil
}

// Recent returns the n most recent entries, newest first.
func (s *Store) Recent(n int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, created_at, provider, request, command, copied
		 FROM translations ORDER BY id DESC LIMIT ?`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts string
		var copied int
		if err := rows.Scan(&e.ID, &ts, &e.Provider, &e.Request, &e.Command, &copied); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		e.Timestamp, _ = time.Parse(time.RFC3339, ts)
		e.Copied = copied != 0
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
