package search

import (
	"context"
	"testing"

	"github.com/poiesic/scholarly/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheAvoidsRecomputation(t *testing.T) {
	engine, _, embedder := newTestEngine(t, scenarioPapers())
	ctx := context.Background()

	_, err := engine.Search(ctx, "nlp", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, embedder.CallCount())

	// Same page again: served from the cached prefix.
	_, err = engine.Search(ctx, "nlp", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, embedder.CallCount())

	// A deeper page needs positions the prefix has not materialized.
	_, err = engine.Search(ctx, "nlp", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, embedder.CallCount())

	// Now the prefix covers the full ranking; pages past the end hit too.
	_, err = engine.Search(ctx, "nlp", 9, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, embedder.CallCount())
}

func TestCacheKeyedByPageSize(t *testing.T) {
	engine, _, embedder := newTestEngine(t, scenarioPapers())
	ctx := context.Background()

	_, err := engine.Search(ctx, "nlp", 1, 2)
	require.NoError(t, err)
	_, err = engine.Search(ctx, "nlp", 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, embedder.CallCount())
}

func TestCacheNormalizesQueryText(t *testing.T) {
	engine, _, embedder := newTestEngine(t, scenarioPapers())
	ctx := context.Background()

	first, err := engine.Search(ctx, "Network Methods", 1, 20)
	require.NoError(t, err)
	second, err := engine.Search(ctx, "  network   methods ", 1, 20)
	require.NoError(t, err)

	// Both spellings normalize to the same tokens and share one entry.
	assert.Equal(t, 1, embedder.CallCount())
	assert.Equal(t, first, second)
}

func TestCacheInvalidatedByCorpusGrowth(t *testing.T) {
	engine, store, embedder := newTestEngine(t, scenarioPapers())
	ctx := context.Background()

	before, err := engine.Search(ctx, "nlp", 1, 20)
	require.NoError(t, err)
	require.Len(t, before, 3)

	extra := &core.Paper{
		Title:    "Advances in Language Processing",
		Abstract: "Recent nlp advances.",
		Author:   "D",
		Keywords: []string{"nlp"},
		Doi:      core.DoiNotAvailable,
	}
	vector, err := embedder.EmbedText(ctx, extra.Document())
	require.NoError(t, err)
	added, err := store.AppendBatch([]*core.Paper{extra}, [][]float32{vector})
	require.NoError(t, err)
	require.Equal(t, 1, added)

	after, err := engine.Search(ctx, "nlp", 1, 20)
	require.NoError(t, err)
	assert.Len(t, after, 4)
}

func TestCacheEntryPageSemantics(t *testing.T) {
	ranking := []core.SearchResult{
		{Paper: &core.Paper{Id: 0}, Score: 0.9},
		{Paper: &core.Paper{Id: 1}, Score: 0.5},
		{Paper: &core.Paper{Id: 2}, Score: 0.1},
	}

	t.Run("miss before materialization", func(t *testing.T) {
		entry := &cacheEntry{}
		_, ok := entry.page(1, 2)
		assert.False(t, ok)
	})

	t.Run("partial prefix serves only covered pages", func(t *testing.T) {
		entry := &cacheEntry{}
		entry.extend(ranking, 1, 2)

		page1, ok := entry.page(1, 2)
		require.True(t, ok)
		assert.Len(t, page1, 2)

		_, ok = entry.page(2, 2)
		assert.False(t, ok)
	})

	t.Run("complete prefix serves short and empty pages", func(t *testing.T) {
		entry := &cacheEntry{}
		entry.extend(ranking, 2, 2)
		assert.True(t, entry.complete)

		page2, ok := entry.page(2, 2)
		require.True(t, ok)
		assert.Len(t, page2, 1)

		page3, ok := entry.page(3, 2)
		require.True(t, ok)
		assert.Empty(t, page3)
	})

	t.Run("extension never rewrites served positions", func(t *testing.T) {
		entry := &cacheEntry{}
		entry.extend(ranking, 1, 2)

		reordered := []core.SearchResult{
			{Paper: &core.Paper{Id: 2}, Score: 0.95},
			{Paper: &core.Paper{Id: 0}, Score: 0.9},
			{Paper: &core.Paper{Id: 1}, Score: 0.5},
		}
		entry.extend(reordered, 2, 2)

		page1, ok := entry.page(1, 2)
		require.True(t, ok)
		assert.Equal(t, 0, page1[0].Paper.Id)
		assert.Equal(t, 1, page1[1].Paper.Id)
	})
}

func TestResultCacheGenerationReplacement(t *testing.T) {
	cache := newResultCache()
	key := cacheKey{query: "nlp", pageSize: 10}

	first := cache.entry(key, 1)
	assert.Same(t, first, cache.entry(key, 1))

	second := cache.entry(key, 2)
	assert.NotSame(t, first, second)
	assert.Same(t, second, cache.entry(key, 2))
}
