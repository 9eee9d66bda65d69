package driving

import (
	"context"

	"github.com/paperdock/paperdock-cli/internal/core/domain"
)

// Extractor turns an arbitrary source locator (URL, DOI link, uploaded file
// reference) into a normalised metadata record.
//
// The only surfaced failure is domain.ErrInvalidLocator for input that
// cannot be parsed; every provider branch recovers internally into a
// fallback record, so a parseable locator always yields metadata.
type Extractor interface {
	Extract(ctx context.Context, locator string) (*domain.ExtractedMetadata, error)
}
