package extractors

import (
	"context"
	"net/url"
	"path"
	"strings"

	"github.com/paperdock/paperdock-cli/internal/core/domain"
)

const sourceFile = "File"

// documentSuffixes are the file extensions treated as direct document
// downloads rather than webpages.
var documentSuffixes = []string{".pdf", ".doc", ".docx", ".txt", ".rtf", ".tex"}

func hasDocumentSuffix(s string) bool {
	lower := strings.ToLower(s)
	for _, suffix := range documentSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

func isDirectFile(u *url.URL) bool {
	return hasDocumentSuffix(u.Path)
}

// extractDirectFile handles locators that point straight at a document
// file. No fetch is attempted; the filename carries the metadata.
func (r *Router) extractDirectFile(_ context.Context, u *url.URL) *domain.ExtractedMetadata {
	meta := fileMetadata(path.Base(u.Path))
	meta.URL = u.String()
	if strings.HasSuffix(strings.ToLower(u.Path), ".pdf") {
		meta.PDFURL = u.String()
	}
	meta.Citation = meta.Title + ". Retrieved from " + u.String()
	return meta
}

// extractFileReference handles locators that are bare filenames rather
// than URLs, as produced by local file imports.
func extractFileReference(name string) *domain.ExtractedMetadata {
	meta := fileMetadata(path.Base(name))
	meta.URL = ""
	meta.Citation = meta.Title + "."
	return meta
}

func fileMetadata(base string) *domain.ExtractedMetadata {
	title := titleCaseWords(cleanSegment(base))
	if title == "" {
		title = "Untitled Document"
	}

	ext := strings.TrimPrefix(strings.ToLower(path.Ext(base)), ".")
	tags := []string{"file"}
	if ext != "" {
		tags = append(tags, ext)
	}

	return &domain.ExtractedMetadata{
		Title:    title,
		Authors:  []string{"Unknown"},
		Source:   sourceFile,
		Tags:     tags,
		Category: domain.ClassifyFileName(base),
	}
}
