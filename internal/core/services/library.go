package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/paperdock/paperdock-cli/internal/core/domain"
	"github.com/paperdock/paperdock-cli/internal/core/ports/driven"
	"github.com/paperdock/paperdock-cli/internal/core/ports/driving"
	"github.com/paperdock/paperdock-cli/internal/logger"
)

// Ensure LibraryService implements the interface.
var _ driving.Library = (*LibraryService)(nil)

// blobKeyPrefix namespaces the per-user collection blobs.
const blobKeyPrefix = "paperdock_documents_"

// recentCount is the size of the Recent derived view.
const recentCount = 5

// LibraryService manages per-user document collections backed by a blob
// store. Each user's collection is loaded once on first access and
// persisted after every mutation. All mutations run under one mutex, so
// the duplicate check and the commit it guards are atomic: two overlapping
// adds of the same URL cannot both pass.
type LibraryService struct {
	blobs driven.BlobStore

	mu          sync.Mutex
	collections map[string][]domain.Document
	loaded      map[string]bool
}

// NewLibraryService creates a library backed by the given blob store.
func NewLibraryService(blobs driven.BlobStore) *LibraryService {
	return &LibraryService{
		blobs:       blobs,
		collections: make(map[string][]domain.Document),
		loaded:      make(map[string]bool),
	}
}

// Add admits a partial document to the user's collection.
// It stamps ID and DateAdded, fills defaults, prepends the record and
// persists the collection. A non-empty URL that already exists on some
// record is rejected with domain.ErrDuplicateDocument.
func (s *LibraryService) Add(ctx context.Context, userID string, partial domain.Document) (*domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx, userID); err != nil {
		return nil, err
	}

	if partial.URL != "" {
		for _, doc := range s.collections[userID] {
			if doc.URL == partial.URL {
				return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateDocument, partial.URL)
			}
		}
	}

	doc := partial
	doc.ID = documentID(partial.URL)
	doc.DateAdded = time.Now()
	if doc.Authors == nil {
		doc.Authors = []string{}
	}
	if doc.Tags == nil {
		doc.Tags = []string{}
	}
	if !doc.Category.IsValid() {
		doc.Category = domain.CategoryGeneral
	}

	// Most-recent-first ordering.
	s.collections[userID] = append([]domain.Document{doc}, s.collections[userID]...)
	s.persist(ctx, userID)

	logger.Debug("Added document %s (%s)", doc.ID, doc.Title)
	return &doc, nil
}

// Update merges partial field changes into the matching record.
// A missing ID is a no-op. The ID itself is immutable.
func (s *LibraryService) Update(ctx context.Context, userID, id string, update domain.DocumentUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx, userID); err != nil {
		return err
	}

	docs := s.collections[userID]
	for i := range docs {
		if docs[i].ID != id {
			continue
		}
		applyUpdate(&docs[i], update)
		s.persist(ctx, userID)
		return nil
	}
	return nil
}

// Delete removes the matching record. A missing ID is a no-op.
func (s *LibraryService) Delete(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx, userID); err != nil {
		return err
	}

	docs := s.collections[userID]
	for i := range docs {
		if docs[i].ID == id {
			s.collections[userID] = append(docs[:i:i], docs[i+1:]...)
			s.persist(ctx, userID)
			return nil
		}
	}
	return nil
}

// Get returns the document with the given ID.
func (s *LibraryService) Get(ctx context.Context, userID, id string) (*domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx, userID); err != nil {
		return nil, err
	}

	for _, doc := range s.collections[userID] {
		if doc.ID == id {
			d := doc
			return &d, nil
		}
	}
	return nil, fmt.Errorf("%w: document %s", domain.ErrNotFound, id)
}

// List returns the full collection, most-recent-first.
func (s *LibraryService) List(ctx context.Context, userID string) ([]domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx, userID); err != nil {
		return nil, err
	}

	docs := s.collections[userID]
	out := make([]domain.Document, len(docs))
	copy(out, docs)
	return out, nil
}

// Search returns documents matching the query case-insensitively over
// title, authors, abstract and tags. A blank query returns everything.
func (s *LibraryService) Search(ctx context.Context, userID, query string) ([]domain.Document, error) {
	docs, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return docs, nil
	}

	var result []domain.Document
	for _, doc := range docs {
		if matchesQuery(&doc, q) {
			result = append(result, doc)
		}
	}
	return result, nil
}

// Filter returns documents matching every set criterion.
func (s *LibraryService) Filter(ctx context.Context, userID string, criteria domain.FilterCriteria) ([]domain.Document, error) {
	docs, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	var result []domain.Document
	for _, doc := range docs {
		if matchesCriteria(&doc, criteria) {
			result = append(result, doc)
		}
	}
	return result, nil
}

// Recent returns the five most recently added documents.
// The collection is kept most-recent-first, so this is a prefix view.
func (s *LibraryService) Recent(ctx context.Context, userID string) ([]domain.Document, error) {
	docs, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(docs) > recentCount {
		docs = docs[:recentCount]
	}
	return docs, nil
}

// ensureLoaded loads the user's collection from the blob store once.
// An absent key yields an empty collection; undecodable content is logged
// and treated as empty. Callers must hold s.mu.
func (s *LibraryService) ensureLoaded(ctx context.Context, userID string) error {
	if s.loaded[userID] {
		return nil
	}

	data, err := s.blobs.Read(ctx, blobKeyPrefix+userID)
	if err != nil {
		logger.Error("Failed to read collection for %s: %v", userID, err)
		data = nil
	}

	var docs []domain.Document
	if len(data) > 0 {
		if err := json.Unmarshal(data, &docs); err != nil {
			logger.Warn("Stored collection for %s is invalid, starting empty: %v", userID, err)
			docs = nil
		}
	}

	s.collections[userID] = docs
	s.loaded[userID] = true
	return nil
}

// persist serialises the full collection to the blob store. A write
// failure is logged and absorbed; the collection keeps operating
// in-memory for the rest of the session. Callers must hold s.mu.
func (s *LibraryService) persist(ctx context.Context, userID string) {
	data, err := json.Marshal(s.collections[userID])
	if err != nil {
		logger.Error("Failed to serialise collection for %s: %v", userID, err)
		return
	}
	if err := s.blobs.Write(ctx, blobKeyPrefix+userID, data); err != nil {
		logger.Error("Failed to persist collection for %s: %v", userID, err)
	}
}

// documentID derives a stable identifier from the source URL so that
// re-importing the same locator yields the same ID. Documents without a
// URL get a random identifier.
func documentID(url string) string {
	if url == "" {
		return uuid.NewString()
	}
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:8])
}

func matchesQuery(doc *domain.Document, q string) bool {
	if strings.Contains(strings.ToLower(doc.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(doc.Abstract), q) {
		return true
	}
	for _, a := range doc.Authors {
		if strings.Contains(strings.ToLower(a), q) {
			return true
		}
	}
	for _, t := range doc.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

func matchesCriteria(doc *domain.Document, c domain.FilterCriteria) bool {
	if c.Category != "" && doc.Category != c.Category {
		return false
	}
	if c.IsRead != nil && doc.IsRead != *c.IsRead {
		return false
	}
	if c.IsFavorite != nil && doc.IsFavorite != *c.IsFavorite {
		return false
	}
	if len(c.Tags) > 0 && !tagsIntersect(doc.Tags, c.Tags) {
		return false
	}
	if !c.AddedAfter.IsZero() && doc.DateAdded.Before(c.AddedAfter) {
		return false
	}
	if !c.AddedBefore.IsZero() && doc.DateAdded.After(c.AddedBefore) {
		return false
	}
	return true
}

func tagsIntersect(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}

func applyUpdate(doc *domain.Document, u domain.DocumentUpdate) {
	if u.Title != nil {
		doc.Title = *u.Title
	}
	if u.Authors != nil {
		doc.Authors = *u.Authors
	}
	if u.Abstract != nil {
		doc.Abstract = *u.Abstract
	}
	if u.PDFURL != nil {
		doc.PDFURL = *u.PDFURL
	}
	if u.Tags != nil {
		doc.Tags = *u.Tags
	}
	if u.Category != nil && u.Category.IsValid() {
		doc.Category = *u.Category
	}
	if u.IsRead != nil {
		doc.IsRead = *u.IsRead
	}
	if u.IsFavorite != nil {
		doc.IsFavorite = *u.IsFavorite
	}
	if u.Notes != nil {
		doc.Notes = *u.Notes
	}
	if u.ReadingProgress != nil {
		doc.ReadingProgress = *u.ReadingProgress
	}
	if u.Pages != nil {
		doc.Pages = *u.Pages
	}
	if u.DOI != nil {
		doc.DOI = *u.DOI
	}
	if u.Citation != nil {
		doc.Citation = *u.Citation
	}
}
