// Package sqlite provides a SQLite-backed blob store for per-user
// document collections. The database is a single table of opaque blobs,
// keyed by namespace string.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/paperdock/paperdock-cli/internal/core/ports/driven"
)

// Ensure BlobStore implements the interface.
var _ driven.BlobStore = (*BlobStore)(nil)

// BlobStore is a SQLite-backed implementation of driven.BlobStore.
type BlobStore struct {
	db   *sql.DB
	path string
}

// NewBlobStore opens (or creates) the blob database in dataDir.
// If dataDir is empty, defaults to ~/.paperdock/data.
func NewBlobStore(dataDir string) (*BlobStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".paperdock", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "library.db")

	// WAL mode for better concurrency between CLI invocations.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	const schema = `
		CREATE TABLE IF NOT EXISTS blobs (
			key   TEXT PRIMARY KEY,
			value BLOB NOT NULL
		)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &BlobStore{db: db, path: dbPath}, nil
}

// Read returns the bytes stored under key, or nil if absent.
func (s *BlobStore) Read(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM blobs WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading blob %q: %w", key, err)
	}
	return value, nil
}

// Write stores data under key, replacing any previous value.
func (s *BlobStore) Write(ctx context.Context, key string, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO blobs (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, data)
	if err != nil {
		return fmt.Errorf("writing blob %q: %w", key, err)
	}
	return nil
}

// Close closes the database connection.
func (s *BlobStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *BlobStore) Path() string {
	return s.path
}
