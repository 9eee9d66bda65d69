package extractors

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/paperdock/paperdock-cli/internal/core/domain"
)

// fallbackRecord synthesises a best-effort metadata record from the
// locator text alone. Used by every provider extractor when its API call
// or parse fails. It never fails itself.
func fallbackRecord(locator, provider string) *domain.ExtractedMetadata {
	title := fallbackTitle(locator)
	return &domain.ExtractedMetadata{
		Title:    title,
		Authors:  []string{"Unknown"},
		Abstract: fmt.Sprintf("Metadata for this document could not be retrieved from %s.", provider),
		Source:   provider,
		URL:      locator,
		Tags:     []string{slugify(provider), "extracted"},
		Category: domain.Classify(title),
		Citation: fmt.Sprintf("%s. Retrieved from %s", title, locator),
	}
}

// fallbackTitle derives a title from the last meaningful path segment,
// falling back to the hostname, with the first letter capitalised.
func fallbackTitle(locator string) string {
	u, err := url.Parse(locator)
	if err != nil {
		return capitaliseFirst(cleanSegment(locator))
	}

	segments := strings.Split(u.Path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if seg := cleanSegment(segments[i]); seg != "" {
			return capitaliseFirst(seg)
		}
	}

	if host := hostLabel(u.Host); host != "" {
		return capitaliseFirst(host)
	}
	return "Untitled Document"
}

// cleanSegment strips a file extension and turns separators into spaces.
func cleanSegment(seg string) string {
	seg = strings.TrimSpace(seg)
	if i := strings.LastIndex(seg, "."); i > 0 && hasDocumentSuffix(seg) {
		seg = seg[:i]
	}
	seg = strings.NewReplacer("-", " ", "_", " ", "+", " ", "%20", " ").Replace(seg)
	return strings.Join(strings.Fields(seg), " ")
}

// hostLabel strips a leading "www." from a hostname.
func hostLabel(host string) string {
	return strings.TrimPrefix(host, "www.")
}

// slugify lowercases and reduces a label to alphanumerics joined by
// hyphens: "Google Scholar" -> "google-scholar".
func slugify(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteRune('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// capitaliseFirst uppercases the first letter of s.
func capitaliseFirst(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// titleCaseWords uppercases the first letter of every word.
func titleCaseWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = capitaliseFirst(w)
	}
	return strings.Join(words, " ")
}

// cleanSpace collapses runs of whitespace (arXiv feeds wrap fields over
// multiple indented lines).
func cleanSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
