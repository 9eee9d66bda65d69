package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlobStore_ReadAbsentKey(t *testing.T) {
	store := NewBlobStore()

	data, err := store.Read(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestBlobStore_WriteThenRead(t *testing.T) {
	store := NewBlobStore()
	ctx := context.Background()

	err := store.Write(ctx, "paperdock_documents_alice", []byte(`[{"id":"1"}]`))
	require.NoError(t, err)

	data, err := store.Read(ctx, "paperdock_documents_alice")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"1"}]`), data)
}

func TestBlobStore_WriteReplaces(t *testing.T) {
	store := NewBlobStore()
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "k", []byte("old")))
	require.NoError(t, store.Write(ctx, "k", []byte("new")))

	data, err := store.Read(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), data)
}

func TestBlobStore_ReadReturnsCopy(t *testing.T) {
	store := NewBlobStore()
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "k", []byte("abc")))

	data, err := store.Read(ctx, "k")
	require.NoError(t, err)
	data[0] = 'x'

	again, err := store.Read(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}
