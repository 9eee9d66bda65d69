package extractors

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/paperdock/paperdock-cli/internal/core/domain"
	"github.com/paperdock/paperdock-cli/internal/logger"
)

const sourceArxiv = "arXiv"

// arxivIDPatterns are tried in order: abstract-page form, PDF form, then
// a bare identifier anywhere in the locator. First match wins.
var arxivIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`arxiv\.org/abs/(\d{4}\.\d{4,5})(?:v\d+)?`),
	regexp.MustCompile(`arxiv\.org/pdf/(\d{4}\.\d{4,5})(?:v\d+)?`),
	regexp.MustCompile(`\b(\d{4}\.\d{4,5})(?:v\d+)?\b`),
}

// arxivFeed is the Atom feed returned by the arXiv query API.
type arxivFeed struct {
	XMLName xml.Name     `xml:"feed"`
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	Title     string `xml:"title"`
	Summary   string `xml:"summary"`
	Published string `xml:"published"`
	Authors   []struct {
		Name string `xml:"name"`
	} `xml:"author"`
	Categories []struct {
		Term string `xml:"term,attr"`
	} `xml:"category"`
}

func isArxiv(u *url.URL) bool {
	host := hostLabel(u.Host)
	return host == "arxiv.org" || strings.HasSuffix(host, ".arxiv.org")
}

// extractArxiv queries the arXiv metadata endpoint for the identifier
// embedded in the locator. Any failure falls back to a locator-derived
// record tagged with the provider name.
func (r *Router) extractArxiv(ctx context.Context, u *url.URL) *domain.ExtractedMetadata {
	locator := u.String()

	id := arxivID(locator)
	if id == "" {
		logger.Debug("No arXiv identifier in %s", locator)
		return fallbackRecord(locator, sourceArxiv)
	}

	body, err := r.get(ctx, r.arxivAPI+"?id_list="+url.QueryEscape(id))
	if err != nil {
		logger.Debug("arXiv query for %s failed: %v", id, err)
		return fallbackRecord(locator, sourceArxiv)
	}

	var feed arxivFeed
	if err := xml.Unmarshal(body, &feed); err != nil || len(feed.Entries) == 0 {
		logger.Debug("arXiv feed for %s unusable: %v", id, err)
		return fallbackRecord(locator, sourceArxiv)
	}

	entry := feed.Entries[0]
	title := cleanSpace(entry.Title)
	if title == "" {
		return fallbackRecord(locator, sourceArxiv)
	}

	authors := make([]string, 0, len(entry.Authors))
	for _, a := range entry.Authors {
		if name := cleanSpace(a.Name); name != "" {
			authors = append(authors, name)
		}
	}

	terms := make([]string, 0, len(entry.Categories))
	for _, c := range entry.Categories {
		if c.Term != "" {
			terms = append(terms, c.Term)
		}
	}

	tags := append([]string{"arxiv", "preprint"}, terms...)

	return &domain.ExtractedMetadata{
		Title:         title,
		Authors:       authors,
		Abstract:      cleanSpace(entry.Summary),
		Source:        sourceArxiv,
		URL:           locator,
		PDFURL:        fmt.Sprintf("https://arxiv.org/pdf/%s.pdf", id),
		DatePublished: entry.Published,
		Tags:          tags,
		Category:      arxivCategory(terms, title+" "+entry.Summary),
		Citation:      fmt.Sprintf("%s. arXiv:%s", title, id),
	}
}

func arxivID(locator string) string {
	for _, pattern := range arxivIDPatterns {
		if m := pattern.FindStringSubmatch(locator); m != nil {
			return m[1]
		}
	}
	return ""
}

// arxivCategory maps arXiv taxonomy prefixes onto the category
// enumeration; terms outside the taxonomy fall back to keyword
// classification over the title and summary.
func arxivCategory(terms []string, text string) domain.Category {
	for _, term := range terms {
		switch {
		case strings.HasPrefix(term, "cs.") || term == "stat.ML":
			return domain.CategoryComputerScience
		case strings.HasPrefix(term, "physics") ||
			strings.HasPrefix(term, "quant-ph") ||
			strings.HasPrefix(term, "astro-ph") ||
			strings.HasPrefix(term, "cond-mat") ||
			strings.HasPrefix(term, "hep-") ||
			strings.HasPrefix(term, "nucl-") ||
			strings.HasPrefix(term, "gr-qc"):
			return domain.CategoryPhysics
		case strings.HasPrefix(term, "q-bio"):
			return domain.CategoryMedical
		}
	}
	return domain.Classify(text)
}
