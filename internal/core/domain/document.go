package domain

import "time"

// SourceGoogleDrive is the provider label stamped on documents imported
// through the drive sync path. The sync engine's soft duplicate check
// matches on (title, SourceGoogleDrive) pairs.
const SourceGoogleDrive = "Google Drive"

// Document is the canonical library record for an imported academic document.
// Documents are created exclusively through the library's Add operation,
// which stamps ID and DateAdded and fills every optional field with a default.
type Document struct {
	// ID is the stable identifier. Derived deterministically from the
	// source URL when one is available, randomly generated otherwise.
	ID string `json:"id"`

	// Title is the human-readable title.
	Title string `json:"title"`

	// Authors is the ordered author list. May be empty, never nil after Add.
	Authors []string `json:"authors"`

	// Abstract is the summary text supplied by the provider.
	Abstract string `json:"abstract"`

	// Source is the provider label (e.g. "arXiv", "Google Drive").
	Source string `json:"source"`

	// URL is the origin locator. Non-empty URLs are unique per user.
	URL string `json:"url"`

	// PDFURL is the renderable artifact location, when known.
	PDFURL string `json:"pdfUrl,omitempty"`

	// DateAdded is set at creation and never changes afterwards.
	DateAdded time.Time `json:"dateAdded"`

	// DatePublished is the provider-supplied publication date, verbatim.
	DatePublished string `json:"datePublished,omitempty"`

	// Tags is a set-like list derived from the provider and import path.
	Tags []string `json:"tags"`

	// Category is the topic classification. Always one of the Category
	// enumeration; unclassifiable content defaults to CategoryGeneral.
	Category Category `json:"category"`

	// Reading state. Mutable after creation via Update.
	IsRead          bool   `json:"isRead"`
	IsFavorite      bool   `json:"isFavorite"`
	Notes           string `json:"notes"`
	ReadingProgress int    `json:"readingProgress"`

	// Optional descriptive metadata.
	FileSize int64  `json:"fileSize,omitempty"`
	Pages    int    `json:"pages,omitempty"`
	DOI      string `json:"doi,omitempty"`
	Citation string `json:"citation,omitempty"`

	// DriveFileID and MimeType are present only for documents that
	// originated from drive sync. DriveFileID is the primary duplicate
	// key for that path.
	DriveFileID string `json:"driveFileId,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

// ExtractedMetadata is a provider extractor's output: a normalised metadata
// record not yet admitted to the library. It is never persisted directly;
// it always passes through the library's Add operation to become a Document.
type ExtractedMetadata struct {
	Title         string
	Authors       []string
	Abstract      string
	Source        string
	URL           string
	PDFURL        string
	DatePublished string
	Tags          []string
	Category      Category
	Pages         int
	DOI           string
	Citation      string
}

// Document converts the metadata into a partial Document suitable for Add.
func (m *ExtractedMetadata) Document() Document {
	return Document{
		Title:         m.Title,
		Authors:       m.Authors,
		Abstract:      m.Abstract,
		Source:        m.Source,
		URL:           m.URL,
		PDFURL:        m.PDFURL,
		DatePublished: m.DatePublished,
		Tags:          m.Tags,
		Category:      m.Category,
		Pages:         m.Pages,
		DOI:           m.DOI,
		Citation:      m.Citation,
	}
}

// DocumentUpdate carries partial field changes for the library's Update
// operation. Nil fields are left untouched; the document ID is immutable.
type DocumentUpdate struct {
	Title           *string
	Authors         *[]string
	Abstract        *string
	PDFURL          *string
	Tags            *[]string
	Category        *Category
	IsRead          *bool
	IsFavorite      *bool
	Notes           *string
	ReadingProgress *int
	Pages           *int
	DOI             *string
	Citation        *string
}

// FilterCriteria is a conjunctive filter over the document collection.
// Zero-valued fields are ignored.
type FilterCriteria struct {
	// Category matches documents with exactly this category.
	Category Category

	// IsRead / IsFavorite match on the reading-state flags when non-nil.
	IsRead     *bool
	IsFavorite *bool

	// Tags matches documents whose tag set intersects this list.
	Tags []string

	// AddedAfter / AddedBefore bound DateAdded when non-zero.
	AddedAfter  time.Time
	AddedBefore time.Time
}
