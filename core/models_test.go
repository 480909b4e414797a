package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentity(t *testing.T) {
	base := Paper{
		Title:     "Graph Attention Networks",
		Author:    "Petar Velickovic",
		CoAuthors: []string{"Guillem Cucurull", "Arantxa Casanova"},
		Year:      2018,
		Doi:       "https://doi.org/10.48550/arXiv.1710.10903",
	}

	t.Run("deterministic", func(t *testing.T) {
		other := base
		assert.Equal(t, base.Identity(), other.Identity())
	})

	t.Run("doi comparison is case-insensitive", func(t *testing.T) {
		other := base
		other.Doi = strings.ToUpper(base.Doi)
		assert.Equal(t, base.Identity(), other.Identity())
	})

	t.Run("abstract and keywords do not participate", func(t *testing.T) {
		other := base
		other.Abstract = "An enriched abstract added later."
		other.Keywords = []string{"graphs", "attention"}
		assert.Equal(t, base.Identity(), other.Identity())
	})

	t.Run("title changes the key", func(t *testing.T) {
		other := base
		other.Title = "Graph Convolutional Networks"
		assert.NotEqual(t, base.Identity(), other.Identity())
	})

	t.Run("co-author order changes the key", func(t *testing.T) {
		other := base
		other.CoAuthors = []string{"Arantxa Casanova", "Guillem Cucurull"}
		assert.NotEqual(t, base.Identity(), other.Identity())
	})

	t.Run("field boundaries are unambiguous", func(t *testing.T) {
		a := Paper{Title: "ab", Author: "c"}
		b := Paper{Title: "a", Author: "bc"}
		assert.NotEqual(t, a.Identity(), b.Identity())
	})
}

func TestDocument(t *testing.T) {
	paper := Paper{
		Title:    "Deep Learning",
		Abstract: "A survey of deep learning methods.",
		Keywords: []string{"nlp", "vision"},
	}

	doc := paper.Document()

	assert.Equal(t, WeightKeywords, strings.Count(doc, "nlp vision"))
	assert.Equal(t, WeightTitle, strings.Count(doc, "Deep Learning"))
	assert.Equal(t, 1, strings.Count(doc, "A survey of deep learning methods."))
	assert.True(t, strings.HasSuffix(doc, paper.Abstract))
}
