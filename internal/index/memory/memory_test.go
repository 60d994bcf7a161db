package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regolamento-rag/internal/models"
)

func record(id, sha string, embedding []float32) models.ArticleRecord {
	return models.ArticleRecord{
		ID:        id,
		Title:     []string{"ARTICOLO 1 " + id},
		Content:   "corpo " + id,
		Embedding: embedding,
		FileSHA:   sha,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore("test")
	require.NoError(t, err)

	require.NoError(t, store.Upsert(ctx, record("a", "sha-a", []float32{1, 0, 0})))
	require.NoError(t, store.Upsert(ctx, record("b", "sha-b", []float32{0, 1, 0})))

	version, found, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "sha-a", version)

	_, found, err = store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	ids, err := store.ListIDs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, ids)
}

func TestStoreQueryRanksBySimilarity(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore("test")
	require.NoError(t, err)

	require.NoError(t, store.Upsert(ctx, record("a", "sha-a", []float32{1, 0, 0})))
	require.NoError(t, store.Upsert(ctx, record("b", "sha-b", []float32{0, 1, 0})))

	// k larger than the corpus is clamped
	hits, err := store.Query(ctx, []float32{1, 0, 0}, 5)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "a", hits[0].ID)
	assert.Equal(t, "corpo a", hits[0].Content)
}

func TestStoreQueryEmptyIndex(t *testing.T) {
	store, err := NewStore("test")
	require.NoError(t, err)

	hits, err := store.Query(context.Background(), []float32{1, 0, 0}, 3)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestStoreDelete(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore("test")
	require.NoError(t, err)

	require.NoError(t, store.Upsert(ctx, record("a", "sha-a", []float32{1, 0, 0})))
	require.NoError(t, store.Delete(ctx, "a"))

	_, found, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, found)

	ids, err := store.ListIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
