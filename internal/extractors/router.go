package extractors

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/paperdock/paperdock-cli/internal/core/domain"
	"github.com/paperdock/paperdock-cli/internal/core/ports/driving"
)

// Ensure Router implements the interface.
var _ driving.Extractor = (*Router)(nil)

// maxResponseSize bounds every provider response body (2MB).
const maxResponseSize = 2 * 1024 * 1024

// Default provider endpoints. Overridable in tests.
const (
	defaultArxivAPI    = "https://export.arxiv.org/api/query"
	defaultCrossrefAPI = "https://api.crossref.org/works"
	defaultPubMedAPI   = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esummary.fcgi"
)

// rule pairs a locator predicate with a provider extractor. Rules are
// evaluated in order; the first match wins. New providers are additive.
type rule struct {
	name    string
	match   func(u *url.URL) bool
	extract func(ctx context.Context, u *url.URL) *domain.ExtractedMetadata
}

// Router selects a provider extractor for a locator. It holds no mutable
// state; a single value can serve any number of concurrent extractions.
type Router struct {
	client *http.Client

	arxivAPI    string
	crossrefAPI string
	pubmedAPI   string

	rules []rule
}

// NewRouter creates an extraction router. A nil client uses
// http.DefaultClient.
func NewRouter(client *http.Client) *Router {
	if client == nil {
		client = http.DefaultClient
	}

	r := &Router{
		client:      client,
		arxivAPI:    defaultArxivAPI,
		crossrefAPI: defaultCrossrefAPI,
		pubmedAPI:   defaultPubMedAPI,
	}
	r.rules = []rule{
		{name: "arxiv", match: isArxiv, extract: r.extractArxiv},
		{name: "doi", match: isDOI, extract: r.extractDOI},
		{name: "pubmed", match: isPubMed, extract: r.extractPubMed},
		{name: "restricted", match: isRestricted, extract: r.extractRestricted},
		{name: "file", match: isDirectFile, extract: r.extractDirectFile},
	}
	return r
}

// Extract parses the locator and dispatches to a provider extractor.
// Unparseable input returns domain.ErrInvalidLocator; every other branch
// yields a well-formed record, falling back to locator-derived metadata
// on provider failure. Locators matching no provider go to the generic
// webpage extractor.
func (r *Router) Extract(ctx context.Context, locator string) (*domain.ExtractedMetadata, error) {
	trimmed := strings.TrimSpace(locator)

	u, err := url.Parse(trimmed)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		// An uploaded file reference is a bare path with a known
		// document suffix; it needs no network at all.
		if hasDocumentSuffix(trimmed) {
			return extractFileReference(trimmed), nil
		}
		// A bare DOI string routes through the resolver host.
		if doiPattern.FindString(trimmed) == trimmed && trimmed != "" {
			resolved, perr := url.Parse("https://doi.org/" + trimmed)
			if perr == nil {
				return r.extractDOI(ctx, resolved), nil
			}
		}
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidLocator, locator)
	}

	for _, rl := range r.rules {
		if rl.match(u) {
			return rl.extract(ctx, u), nil
		}
	}
	return r.extractWebpage(ctx, u), nil
}

// get fetches a URL and returns the response body. Any non-success
// status is an error; callers convert errors into fallback records.
func (r *Router) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "paperdock-cli/1.0")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
