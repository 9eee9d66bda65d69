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

const sourceDOI = "DOI"

// doiPattern matches a DOI anywhere in a locator path.
var doiPattern = regexp.MustCompile(`10\.\d{4,9}/[-._;()/:a-zA-Z0-9]+`)

// crossrefResponse is the Crossref works-lookup envelope.
type crossrefResponse struct {
	Message struct {
		Title  []string `json:"title"`
		Author []struct {
			Given  string `json:"given"`
			Family string `json:"family"`
		} `json:"author"`
		Abstract       string   `json:"abstract"`
		ContainerTitle []string `json:"container-title"`
		Issued         struct {
			DateParts [][]int `json:"date-parts"`
		} `json:"issued"`
	} `json:"message"`
}

func isDOI(u *url.URL) bool {
	host := hostLabel(u.Host)
	if host == "doi.org" || host == "dx.doi.org" {
		return true
	}
	return doiPattern.MatchString(u.Path)
}

// extractDOI resolves a DOI through the Crossref works API. Any failure
// falls back to a locator-derived record.
func (r *Router) extractDOI(ctx context.Context, u *url.URL) *domain.ExtractedMetadata {
	locator := u.String()

	doi := doiPattern.FindString(u.Path)
	if doi == "" {
		doi = doiPattern.FindString(locator)
	}
	if doi == "" {
		logger.Debug("No DOI in %s", locator)
		return fallbackRecord(locator, sourceDOI)
	}

	body, err := r.get(ctx, r.crossrefAPI+"/"+url.PathEscape(doi))
	if err != nil {
		logger.Debug("Crossref lookup for %s failed: %v", doi, err)
		return fallbackRecord(locator, sourceDOI)
	}

	var resp crossrefResponse
	if err := json.Unmarshal(body, &resp); err != nil || len(resp.Message.Title) == 0 {
		logger.Debug("Crossref response for %s unusable: %v", doi, err)
		return fallbackRecord(locator, sourceDOI)
	}

	msg := resp.Message
	title := cleanSpace(msg.Title[0])

	authors := make([]string, 0, len(msg.Author))
	for _, a := range msg.Author {
		name := strings.TrimSpace(a.Given + " " + a.Family)
		if name != "" {
			authors = append(authors, name)
		}
	}

	var journal string
	if len(msg.ContainerTitle) > 0 {
		journal = msg.ContainerTitle[0]
	}

	var published string
	if len(msg.Issued.DateParts) > 0 && len(msg.Issued.DateParts[0]) > 0 {
		published = fmt.Sprintf("%d", msg.Issued.DateParts[0][0])
	}

	citation := title + "."
	if journal != "" {
		citation = fmt.Sprintf("%s. %s.", title, journal)
	}

	return &domain.ExtractedMetadata{
		Title:         title,
		Authors:       authors,
		Abstract:      cleanSpace(msg.Abstract),
		Source:        sourceDOI,
		URL:           locator,
		DatePublished: published,
		Tags:          []string{"doi", "crossref"},
		Category:      domain.Classify(title + " " + journal),
		DOI:           doi,
		Citation:      citation,
	}
}
