package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTFIDFScore(t *testing.T) {
	docs := [][]string{
		{"graph", "network", "graph"},
		{"language", "model"},
		{"graph", "language"},
	}
	idx := NewTFIDF(docs)

	t.Run("matching documents outrank non-matching", func(t *testing.T) {
		scores := idx.Score([]string{"graph"})
		require.Len(t, scores, 3)
		assert.Greater(t, scores[0], 0.0)
		assert.Zero(t, scores[1])
		assert.Greater(t, scores[2], 0.0)
	})

	t.Run("repeated term weighs a document higher", func(t *testing.T) {
		scores := idx.Score([]string{"graph"})
		assert.Greater(t, scores[0], scores[2])
	})

	t.Run("scores are cosines in unit range", func(t *testing.T) {
		scores := idx.Score([]string{"graph", "network", "language", "model"})
		for _, s := range scores {
			assert.GreaterOrEqual(t, s, 0.0)
			assert.LessOrEqual(t, s, 1.0+1e-12)
		}
	})

	t.Run("identical single-term document scores 1", func(t *testing.T) {
		idx := NewTFIDF([][]string{{"graph"}})
		scores := idx.Score([]string{"graph"})
		assert.InDelta(t, 1.0, scores[0], 1e-12)
	})

	t.Run("empty query", func(t *testing.T) {
		scores := idx.Score(nil)
		assert.Equal(t, []float64{0, 0, 0}, scores)
	})

	t.Run("out-of-vocabulary query", func(t *testing.T) {
		scores := idx.Score([]string{"quantum"})
		assert.Equal(t, []float64{0, 0, 0}, scores)
	})

	t.Run("empty corpus", func(t *testing.T) {
		idx := NewTFIDF(nil)
		assert.Empty(t, idx.Score([]string{"graph"}))
	})

	t.Run("deterministic", func(t *testing.T) {
		q := []string{"graph", "language"}
		assert.Equal(t, idx.Score(q), idx.Score(q))
	})
}
