package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBM25Score(t *testing.T) {
	docs := [][]string{
		{"nlp"},
		{"graphs"},
		{"nlp", "graphs"},
	}
	idx := NewBM25(docs)

	t.Run("only matching documents score", func(t *testing.T) {
		scores := idx.Score([]string{"nlp"})
		require.Len(t, scores, 3)
		assert.Greater(t, scores[0], 0.0)
		assert.Zero(t, scores[1])
		assert.Greater(t, scores[2], 0.0)
	})

	t.Run("rare terms outweigh common ones", func(t *testing.T) {
		docs := [][]string{
			{"common", "rare"},
			{"common"},
			{"common"},
			{"common"},
		}
		idx := NewBM25(docs)
		scores := idx.Score([]string{"rare", "common"})
		assert.Greater(t, scores[0], scores[1])
	})

	t.Run("length normalization favors shorter documents", func(t *testing.T) {
		docs := [][]string{
			{"graph"},
			{"graph", "filler", "filler", "filler", "filler", "filler"},
		}
		idx := NewBM25(docs)
		scores := idx.Score([]string{"graph"})
		assert.Greater(t, scores[0], scores[1])
	})

	t.Run("common terms never score negatively", func(t *testing.T) {
		docs := [][]string{
			{"shared", "alpha"},
			{"shared", "beta"},
			{"shared", "gamma"},
		}
		idx := NewBM25(docs)
		scores := idx.Score([]string{"shared"})
		for _, s := range scores {
			assert.GreaterOrEqual(t, s, 0.0)
		}
	})

	t.Run("empty query", func(t *testing.T) {
		assert.Equal(t, []float64{0, 0, 0}, idx.Score(nil))
	})

	t.Run("empty corpus", func(t *testing.T) {
		idx := NewBM25(nil)
		assert.Empty(t, idx.Score([]string{"nlp"}))
	})
}
