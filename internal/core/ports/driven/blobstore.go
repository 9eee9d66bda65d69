package driven

import "context"

// BlobStore is an opaque key-value byte store used to persist each user's
// document collection. The library tolerates an absent key (empty
// collection) and content that fails to deserialise (logged, treated as
// empty); no schema versioning is implied.
type BlobStore interface {
	// Read returns the bytes stored under key. A missing key returns
	// (nil, nil), not an error.
	Read(ctx context.Context, key string) ([]byte, error)

	// Write stores data under key, replacing any previous value.
	Write(ctx context.Context, key string, data []byte) error

	// Close releases any underlying resources.
	Close() error
}
