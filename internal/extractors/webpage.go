package extractors

import (
	"context"
	"html"
	"net/url"
	"regexp"
	"strings"

	"github.com/paperdock/paperdock-cli/internal/core/domain"
	"github.com/paperdock/paperdock-cli/internal/logger"
)

const sourceWeb = "Web"

var (
	titleTagPattern = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	ogTitlePattern  = regexp.MustCompile(`(?is)<meta[^>]+property=["']og:title["'][^>]+content=["']([^"']+)["']`)
	h1Pattern       = regexp.MustCompile(`(?is)<h1[^>]*>(.*?)</h1>`)

	descriptionPattern   = regexp.MustCompile(`(?is)<meta[^>]+name=["']description["'][^>]+content=["']([^"']+)["']`)
	ogDescriptionPattern = regexp.MustCompile(`(?is)<meta[^>]+property=["']og:description["'][^>]+content=["']([^"']+)["']`)

	tagPattern = regexp.MustCompile(`<[^>]+>`)
)

// extractWebpage is the default extractor for locators no provider rule
// claims. It fetches the page and scrapes the title and description from
// the markup; fetch or parse failure degrades to a locator-derived
// record.
func (r *Router) extractWebpage(ctx context.Context, u *url.URL) *domain.ExtractedMetadata {
	locator := u.String()

	body, err := r.get(ctx, locator)
	if err != nil {
		logger.Debug("Webpage fetch for %s failed: %v", locator, err)
		meta := fallbackRecord(locator, sourceWeb)
		meta.Tags = webTags(u)
		return meta
	}

	page := string(body)

	title := pageTitle(page)
	if title == "" {
		title = fallbackTitle(locator)
	}

	abstract := pageDescription(page)

	return &domain.ExtractedMetadata{
		Title:    title,
		Authors:  []string{"Unknown"},
		Abstract: abstract,
		Source:   sourceWeb,
		URL:      locator,
		Tags:     webTags(u),
		Category: domain.Classify(title + " " + abstract),
		Citation: title + ". Retrieved from " + locator,
	}
}

func webTags(u *url.URL) []string {
	tags := []string{"web"}
	if slug := slugify(hostLabel(u.Host)); slug != "" {
		tags = append(tags, slug)
	}
	return tags
}

// pageTitle prefers og:title over the title tag over the first h1.
func pageTitle(page string) string {
	for _, pattern := range []*regexp.Regexp{ogTitlePattern, titleTagPattern, h1Pattern} {
		if m := pattern.FindStringSubmatch(page); m != nil {
			if title := stripMarkup(m[1]); title != "" {
				return title
			}
		}
	}
	return ""
}

func pageDescription(page string) string {
	for _, pattern := range []*regexp.Regexp{descriptionPattern, ogDescriptionPattern} {
		if m := pattern.FindStringSubmatch(page); m != nil {
			if desc := stripMarkup(m[1]); desc != "" {
				return desc
			}
		}
	}
	return ""
}

func stripMarkup(s string) string {
	s = tagPattern.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}
