package badgerdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *BlobStore {
	t.Helper()
	store, err := NewBlobStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestBlobStore_ReadAbsentKey(t *testing.T) {
	store := newTestStore(t)

	data, err := store.Read(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestBlobStore_WriteThenRead(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "paperdock_documents_bob", []byte(`[{"id":"x"}]`)))

	data, err := store.Read(ctx, "paperdock_documents_bob")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"x"}]`), data)
}

func TestBlobStore_WriteReplaces(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "k", []byte("old")))
	require.NoError(t, store.Write(ctx, "k", []byte("new")))

	data, err := store.Read(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), data)
}
