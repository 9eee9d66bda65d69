package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paperdock/paperdock-cli/internal/adapters/driven/storage/memory"
	"github.com/paperdock/paperdock-cli/internal/core/domain"
)

const testUser = "alice"

func newTestLibrary() (*LibraryService, *memory.BlobStore) {
	blobs := memory.NewBlobStore()
	return NewLibraryService(blobs), blobs
}

func TestLibraryService_Add(t *testing.T) {
	lib, _ := newTestLibrary()
	ctx := context.Background()

	doc, err := lib.Add(ctx, testUser, domain.Document{
		Title:    "Attention Is All You Need",
		Authors:  []string{"A. Vaswani"},
		Source:   "arXiv",
		URL:      "https://arxiv.org/abs/1706.03762",
		Category: domain.CategoryComputerScience,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, doc.ID)
	assert.False(t, doc.DateAdded.IsZero())
	assert.Equal(t, "Attention Is All You Need", doc.Title)
	assert.False(t, doc.IsRead)
	assert.False(t, doc.IsFavorite)
	assert.Empty(t, doc.Notes)
	assert.Zero(t, doc.ReadingProgress)
}

func TestLibraryService_Add_Defaults(t *testing.T) {
	lib, _ := newTestLibrary()
	ctx := context.Background()

	doc, err := lib.Add(ctx, testUser, domain.Document{Title: "Untitled note"})
	require.NoError(t, err)

	assert.NotNil(t, doc.Authors)
	assert.Empty(t, doc.Authors)
	assert.NotNil(t, doc.Tags)
	assert.Equal(t, domain.CategoryGeneral, doc.Category)
}

func TestLibraryService_Add_DuplicateURL(t *testing.T) {
	lib, _ := newTestLibrary()
	ctx := context.Background()

	_, err := lib.Add(ctx, testUser, domain.Document{Title: "First", URL: "https://example.org/p"})
	require.NoError(t, err)

	_, err = lib.Add(ctx, testUser, domain.Document{Title: "Second", URL: "https://example.org/p"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicateDocument)

	// Only the first add succeeded.
	docs, err := lib.List(ctx, testUser)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
	assert.Equal(t, "First", docs[0].Title)
}

func TestLibraryService_Add_EmptyURLsNeverCollide(t *testing.T) {
	lib, _ := newTestLibrary()
	ctx := context.Background()

	a, err := lib.Add(ctx, testUser, domain.Document{Title: "Upload A"})
	require.NoError(t, err)
	b, err := lib.Add(ctx, testUser, domain.Document{Title: "Upload B"})
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestLibraryService_Add_DeterministicID(t *testing.T) {
	ctx := context.Background()
	url := "https://arxiv.org/abs/1706.03762"

	libA, _ := newTestLibrary()
	libB, _ := newTestLibrary()

	a, err := libA.Add(ctx, testUser, domain.Document{Title: "T", URL: url})
	require.NoError(t, err)
	b, err := libB.Add(ctx, testUser, domain.Document{Title: "T", URL: url})
	require.NoError(t, err)

	// Re-importing the same locator yields the same ID.
	assert.Equal(t, a.ID, b.ID)
}

func TestLibraryService_Add_MostRecentFirst(t *testing.T) {
	lib, _ := newTestLibrary()
	ctx := context.Background()

	_, err := lib.Add(ctx, testUser, domain.Document{Title: "older"})
	require.NoError(t, err)
	_, err = lib.Add(ctx, testUser, domain.Document{Title: "newer"})
	require.NoError(t, err)

	docs, err := lib.List(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "newer", docs[0].Title)
	assert.Equal(t, "older", docs[1].Title)
}

func TestLibraryService_Get_RoundTrip(t *testing.T) {
	lib, _ := newTestLibrary()
	ctx := context.Background()

	added, err := lib.Add(ctx, testUser, domain.Document{
		Title:    "Round Trip",
		Authors:  []string{"X", "Y"},
		Abstract: "abstract",
		Source:   "arXiv",
		URL:      "https://arxiv.org/abs/0001.00001",
		Tags:     []string{"arxiv"},
		Category: domain.CategoryPhysics,
		DOI:      "10.1/abc",
	})
	require.NoError(t, err)

	got, err := lib.Get(ctx, testUser, added.ID)
	require.NoError(t, err)
	assert.Equal(t, *added, *got)
}

func TestLibraryService_Get_NotFound(t *testing.T) {
	lib, _ := newTestLibrary()

	_, err := lib.Get(context.Background(), testUser, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLibraryService_Update(t *testing.T) {
	lib, _ := newTestLibrary()
	ctx := context.Background()

	added, err := lib.Add(ctx, testUser, domain.Document{Title: "before", URL: "https://example.org/u"})
	require.NoError(t, err)

	title := "after"
	read := true
	progress := 40
	notes := "good paper"
	err = lib.Update(ctx, testUser, added.ID, domain.DocumentUpdate{
		Title:           &title,
		IsRead:          &read,
		ReadingProgress: &progress,
		Notes:           &notes,
	})
	require.NoError(t, err)

	got, err := lib.Get(ctx, testUser, added.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Title)
	assert.True(t, got.IsRead)
	assert.Equal(t, 40, got.ReadingProgress)
	assert.Equal(t, "good paper", got.Notes)

	// Untouched fields survive the merge.
	assert.Equal(t, added.ID, got.ID)
	assert.Equal(t, added.URL, got.URL)
	assert.Equal(t, added.DateAdded, got.DateAdded)
}

func TestLibraryService_Update_MissingIDIsNoOp(t *testing.T) {
	lib, _ := newTestLibrary()

	title := "x"
	err := lib.Update(context.Background(), testUser, "missing", domain.DocumentUpdate{Title: &title})
	assert.NoError(t, err)
}

func TestLibraryService_Delete(t *testing.T) {
	lib, _ := newTestLibrary()
	ctx := context.Background()

	added, err := lib.Add(ctx, testUser, domain.Document{Title: "doomed"})
	require.NoError(t, err)

	require.NoError(t, lib.Delete(ctx, testUser, added.ID))

	_, err = lib.Get(ctx, testUser, added.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Deleting again is a no-op.
	assert.NoError(t, lib.Delete(ctx, testUser, added.ID))
}

func TestLibraryService_Search(t *testing.T) {
	lib, _ := newTestLibrary()
	ctx := context.Background()

	_, err := lib.Add(ctx, testUser, domain.Document{
		Title:   "Deep Residual Learning",
		Authors: []string{"Kaiming He"},
		Tags:    []string{"vision"},
	})
	require.NoError(t, err)
	_, err = lib.Add(ctx, testUser, domain.Document{
		Title:    "Protein folding overview",
		Abstract: "A survey of computational approaches",
	})
	require.NoError(t, err)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"title match", "residual", 1},
		{"author match", "kaiming", 1},
		{"abstract match", "computational", 1},
		{"tag match", "VISION", 1},
		{"no match", "astrology", 0},
		{"blank query returns all", "   ", 2},
		{"empty query returns all", "", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, err := lib.Search(ctx, testUser, tt.query)
			require.NoError(t, err)
			assert.Len(t, docs, tt.want)
		})
	}
}

func TestLibraryService_Filter(t *testing.T) {
	lib, _ := newTestLibrary()
	ctx := context.Background()

	_, err := lib.Add(ctx, testUser, domain.Document{
		Title:    "CS paper",
		Category: domain.CategoryComputerScience,
		Tags:     []string{"arxiv"},
	})
	require.NoError(t, err)

	added, err := lib.Add(ctx, testUser, domain.Document{
		Title:    "Medical paper",
		Category: domain.CategoryMedical,
		Tags:     []string{"pubmed"},
	})
	require.NoError(t, err)

	read := true
	require.NoError(t, lib.Update(ctx, testUser, added.ID, domain.DocumentUpdate{IsRead: &read}))

	byCategory, err := lib.Filter(ctx, testUser, domain.FilterCriteria{Category: domain.CategoryMedical})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Medical paper", byCategory[0].Title)

	unread := false
	byFlag, err := lib.Filter(ctx, testUser, domain.FilterCriteria{IsRead: &unread})
	require.NoError(t, err)
	require.Len(t, byFlag, 1)
	assert.Equal(t, "CS paper", byFlag[0].Title)

	byTag, err := lib.Filter(ctx, testUser, domain.FilterCriteria{Tags: []string{"pubmed", "other"}})
	require.NoError(t, err)
	require.Len(t, byTag, 1)

	// Conjunctive: category matches but tag does not.
	none, err := lib.Filter(ctx, testUser, domain.FilterCriteria{
		Category: domain.CategoryMedical,
		Tags:     []string{"arxiv"},
	})
	require.NoError(t, err)
	assert.Empty(t, none)

	byDate, err := lib.Filter(ctx, testUser, domain.FilterCriteria{
		AddedAfter: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Empty(t, byDate)
}

func TestLibraryService_Recent(t *testing.T) {
	lib, _ := newTestLibrary()
	ctx := context.Background()

	for _, title := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		_, err := lib.Add(ctx, testUser, domain.Document{Title: title})
		require.NoError(t, err)
	}

	recent, err := lib.Recent(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, recent, 5)
	assert.Equal(t, "g", recent[0].Title)
	assert.Equal(t, "c", recent[4].Title)
}

func TestLibraryService_PersistsAcrossInstances(t *testing.T) {
	blobs := memory.NewBlobStore()
	ctx := context.Background()

	first := NewLibraryService(blobs)
	added, err := first.Add(ctx, testUser, domain.Document{Title: "kept", URL: "https://example.org/kept"})
	require.NoError(t, err)

	second := NewLibraryService(blobs)
	got, err := second.Get(ctx, testUser, added.ID)
	require.NoError(t, err)
	assert.Equal(t, "kept", got.Title)
}

func TestLibraryService_CorruptBlobTreatedAsEmpty(t *testing.T) {
	blobs := memory.NewBlobStore()
	ctx := context.Background()

	require.NoError(t, blobs.Write(ctx, blobKeyPrefix+testUser, []byte("not json")))

	lib := NewLibraryService(blobs)
	docs, err := lib.List(ctx, testUser)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestLibraryService_UsersAreIsolated(t *testing.T) {
	lib, _ := newTestLibrary()
	ctx := context.Background()

	_, err := lib.Add(ctx, "alice", domain.Document{Title: "alice doc", URL: "https://example.org/a"})
	require.NoError(t, err)

	// Same URL under a different user is not a duplicate.
	_, err = lib.Add(ctx, "bob", domain.Document{Title: "bob doc", URL: "https://example.org/a"})
	require.NoError(t, err)

	bobDocs, err := lib.List(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, bobDocs, 1)
	assert.Equal(t, "bob doc", bobDocs[0].Title)
}
