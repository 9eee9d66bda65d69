// Package badgerdb provides a BadgerDB-backed blob store, an alternative
// to the SQLite backend for users who prefer a pure key-value data
// directory. Selected with storage_backend = "badger" in the config file.
package badgerdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/paperdock/paperdock-cli/internal/core/ports/driven"
)

// Ensure BlobStore implements the interface.
var _ driven.BlobStore = (*BlobStore)(nil)

// BlobStore is a BadgerDB-backed implementation of driven.BlobStore.
type BlobStore struct {
	db *badger.DB
}

// NewBlobStore opens (or creates) a Badger database at dbPath.
func NewBlobStore(dbPath string) (*BlobStore, error) {
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil // Badger's own logging is too chatty for a CLI

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger db at %s: %w", dbPath, err)
	}

	return &BlobStore{db: db}, nil
}

// Read returns the bytes stored under key, or nil if absent.
func (s *BlobStore) Read(_ context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading blob %q: %w", key, err)
	}
	return value, nil
}

// Write stores data under key, replacing any previous value.
func (s *BlobStore) Write(_ context.Context, key string, data []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("writing blob %q: %w", key, err)
	}
	return nil
}

// Close closes the database.
func (s *BlobStore) Close() error {
	return s.db.Close()
}
