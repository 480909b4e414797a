package index

import "math"

// BM25 parameters (Okapi variant).
const (
	bm25K1      = 1.5
	bm25B       = 0.75
	bm25Epsilon = 0.25
)

// BM25 is an Okapi BM25 index over tokenized documents: saturation-based
// term matching driven by corpus-wide document frequency and average
// document length. Immutable after construction.
type BM25 struct {
	// termFreqs[i][term] is the term frequency in document i.
	termFreqs []map[string]int

	// docLengths[i] is the token count of document i.
	docLengths []int

	avgDocLength float64

	// idf[term] is the precomputed Okapi idf, floored at bm25Epsilon so
	// terms common to most documents never score negatively.
	idf map[string]float64
}

// NewBM25 builds the index from pre-tokenized documents.
func NewBM25(docs [][]string) *BM25 {
	b := &BM25{
		termFreqs:  make([]map[string]int, len(docs)),
		docLengths: make([]int, len(docs)),
		idf:        make(map[string]float64),
	}

	docFreqs := make(map[string]int)
	var totalLength int
	for i, tokens := range docs {
		b.docLengths[i] = len(tokens)
		totalLength += len(tokens)

		tf := make(map[string]int, len(tokens))
		for _, token := range tokens {
			tf[token]++
		}
		b.termFreqs[i] = tf
		for term := range tf {
			docFreqs[term]++
		}
	}

	if len(docs) > 0 {
		b.avgDocLength = float64(totalLength) / float64(len(docs))
	}

	n := float64(len(docs))
	for term, df := range docFreqs {
		idf := math.Log((n - float64(df) + 0.5) / (float64(df) + 0.5))
		if idf < 0 {
			idf = bm25Epsilon
		}
		b.idf[term] = idf
	}

	return b
}

// Score returns the BM25 relevance of every document for the query
// tokens, indexed by document position.
func (b *BM25) Score(query []string) []float64 {
	scores := make([]float64, len(b.termFreqs))
	if len(query) == 0 || b.avgDocLength == 0 {
		return scores
	}

	for i, tf := range b.termFreqs {
		lengthNorm := 1 - bm25B + bm25B*float64(b.docLengths[i])/b.avgDocLength
		var score float64
		for _, term := range query {
			freq, ok := tf[term]
			if !ok {
				continue
			}
			f := float64(freq)
			score += b.idf[term] * f * (bm25K1 + 1) / (f + bm25K1*lengthNorm)
		}
		scores[i] = score
	}
	return scores
}
