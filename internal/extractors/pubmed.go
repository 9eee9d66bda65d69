package extractors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/paperdock/paperdock-cli/internal/core/domain"
	"github.com/paperdock/paperdock-cli/internal/logger"
)

const sourcePubMed = "PubMed"

// pubmedIDPattern matches the numeric article identifier in a PubMed
// locator path.
var pubmedIDPattern = regexp.MustCompile(`/(\d{5,9})/?`)

// pubmedResponse is the esummary envelope: a result object keyed by the
// article identifier.
type pubmedResponse struct {
	Result map[string]json.RawMessage `json:"result"`
}

type pubmedSummary struct {
	Title   string `json:"title"`
	Authors []struct {
		Name string `json:"name"`
	} `json:"authors"`
	FullJournalName string `json:"fulljournalname"`
	PubDate         string `json:"pubdate"`
	Abstract        string `json:"abstract"`
}

func isPubMed(u *url.URL) bool {
	host := hostLabel(u.Host)
	if host == "pubmed.ncbi.nlm.nih.gov" {
		return true
	}
	return strings.HasSuffix(host, "ncbi.nlm.nih.gov") && strings.Contains(u.Path, "pubmed")
}

// extractPubMed queries the esummary API for the article identifier in
// the locator. The provider guarantees the medical domain, so the
// category is forced to Medical Science regardless of classifier output.
func (r *Router) extractPubMed(ctx context.Context, u *url.URL) *domain.ExtractedMetadata {
	locator := u.String()

	m := pubmedIDPattern.FindStringSubmatch(u.Path)
	if m == nil {
		logger.Debug("No PubMed identifier in %s", locator)
		return forceMedical(fallbackRecord(locator, sourcePubMed))
	}
	id := m[1]

	query := fmt.Sprintf("%s?db=pubmed&retmode=json&id=%s", r.pubmedAPI, url.QueryEscape(id))
	body, err := r.get(ctx, query)
	if err != nil {
		logger.Debug("PubMed summary for %s failed: %v", id, err)
		return forceMedical(fallbackRecord(locator, sourcePubMed))
	}

	var resp pubmedResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		logger.Debug("PubMed response for %s unusable: %v", id, err)
		return forceMedical(fallbackRecord(locator, sourcePubMed))
	}

	raw, ok := resp.Result[id]
	if !ok {
		return forceMedical(fallbackRecord(locator, sourcePubMed))
	}

	var summary pubmedSummary
	if err := json.Unmarshal(raw, &summary); err != nil || summary.Title == "" {
		return forceMedical(fallbackRecord(locator, sourcePubMed))
	}

	title := cleanSpace(summary.Title)

	authors := make([]string, 0, len(summary.Authors))
	for _, a := range summary.Authors {
		if name := cleanSpace(a.Name); name != "" {
			authors = append(authors, name)
		}
	}

	tags := []string{"pubmed"}
	if slug := slugify(summary.FullJournalName); slug != "" {
		tags = append(tags, slug)
	}

	citation := title + "."
	if summary.FullJournalName != "" {
		citation = fmt.Sprintf("%s. %s (%s).", title, summary.FullJournalName, summary.PubDate)
	}

	return &domain.ExtractedMetadata{
		Title:         title,
		Authors:       authors,
		Abstract:      cleanSpace(summary.Abstract),
		Source:        sourcePubMed,
		URL:           locator,
		DatePublished: summary.PubDate,
		Tags:          tags,
		Category:      domain.CategoryMedical,
		Citation:      citation,
	}
}

// forceMedical overrides the category on fallback records from the
// medical provider path.
func forceMedical(meta *domain.ExtractedMetadata) *domain.ExtractedMetadata {
	meta.Category = domain.CategoryMedical
	return meta
}
