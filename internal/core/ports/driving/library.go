package driving

import (
	"context"

	"github.com/paperdock/paperdock-cli/internal/core/domain"
)

// Library manages a user's document collection. It is the single source of
// truth and the single duplicate-prevention gate: both manual extraction
// and drive sync terminate in Add.
//
// User identity is an explicit parameter on every operation; there is no
// ambient current-user state.
type Library interface {
	// Add admits a partial document to the collection. It rejects a
	// non-empty URL already present on an existing record with
	// domain.ErrDuplicateDocument, otherwise stamps ID and DateAdded,
	// fills defaults, prepends the record (most-recent-first), persists
	// the collection, and returns the new record.
	Add(ctx context.Context, userID string, partial domain.Document) (*domain.Document, error)

	// Update merges partial field changes into the matching record and
	// re-persists. A missing ID is a no-op.
	Update(ctx context.Context, userID, id string, update domain.DocumentUpdate) error

	// Delete removes the matching record and re-persists.
	Delete(ctx context.Context, userID, id string) error

	// Get returns the document with the given ID, or domain.ErrNotFound.
	Get(ctx context.Context, userID, id string) (*domain.Document, error)

	// List returns the full collection, most-recent-first.
	List(ctx context.Context, userID string) ([]domain.Document, error)

	// Search returns documents whose title, authors, abstract or tags
	// contain the query, case-insensitively. A blank query returns the
	// full collection unfiltered.
	Search(ctx context.Context, userID, query string) ([]domain.Document, error)

	// Filter returns documents matching every set criterion.
	Filter(ctx context.Context, userID string, criteria domain.FilterCriteria) ([]domain.Document, error)

	// Recent returns the five most recently added documents.
	Recent(ctx context.Context, userID string) ([]domain.Document, error)
}
