package extractors

import (
	"context"
	"net/url"
	"strings"

	"github.com/paperdock/paperdock-cli/internal/core/domain"
)

// restrictedHosts maps bot-restricted portals to a human-readable
// provider label. These sites block automated fetches, so metadata is
// derived from the locator alone.
var restrictedHosts = map[string]string{
	"scholar.google.com":  "Google Scholar",
	"researchgate.net":    "ResearchGate",
	"academia.edu":        "Academia",
	"semanticscholar.org": "Semantic Scholar",
}

func isRestricted(u *url.URL) bool {
	return restrictedLabel(u.Host) != ""
}

func restrictedLabel(host string) string {
	host = hostLabel(host)
	if label, ok := restrictedHosts[host]; ok {
		return label
	}
	for suffix, label := range restrictedHosts {
		if strings.HasSuffix(host, "."+suffix) {
			return label
		}
	}
	return ""
}

// extractRestricted builds a record without touching the network. The
// title is taken from the longest path segment that looks like words
// rather than an identifier.
func (r *Router) extractRestricted(_ context.Context, u *url.URL) *domain.ExtractedMetadata {
	label := restrictedLabel(u.Host)
	meta := fallbackRecord(u.String(), label)

	if title := restrictedTitle(u.Path); title != "" {
		meta.Title = title
		meta.Category = domain.Classify(title)
		meta.Citation = title + ". " + label + "."
	}
	return meta
}

// restrictedTitle picks the longest path segment that is not purely an
// identifier (numeric, or containing dots like a DOI suffix). Ties on
// length keep the earliest segment.
func restrictedTitle(path string) string {
	var best string
	for _, seg := range strings.Split(path, "/") {
		cleaned := cleanSegment(seg)
		if cleaned == "" || isIdentifierLike(cleaned) {
			continue
		}
		if len(cleaned) > len(best) {
			best = cleaned
		}
	}
	return titleCaseWords(best)
}

func isIdentifierLike(s string) bool {
	if strings.Contains(s, ".") {
		return true
	}
	for _, r := range s {
		if r != ' ' && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
