package index

import "math"

// TFIDF is a term-frequency/inverse-document-frequency index over
// tokenized documents. Document vectors are idf-weighted and
// L2-normalized at construction; scoring a query is a cosine similarity
// against every document. Immutable after construction.
type TFIDF struct {
	// docWeights[i][term] is the normalized tf-idf weight of term in
	// document i.
	docWeights []map[string]float64

	// idf[term] is the smoothed inverse document frequency.
	idf map[string]float64

	numDocs int
}

// NewTFIDF builds the index from pre-tokenized documents.
func NewTFIDF(docs [][]string) *TFIDF {
	t := &TFIDF{
		docWeights: make([]map[string]float64, len(docs)),
		idf:        make(map[string]float64),
		numDocs:    len(docs),
	}

	docFreqs := make(map[string]int)
	termFreqs := make([]map[string]int, len(docs))
	for i, tokens := range docs {
		tf := make(map[string]int, len(tokens))
		for _, token := range tokens {
			tf[token]++
		}
		termFreqs[i] = tf
		for term := range tf {
			docFreqs[term]++
		}
	}

	// Smoothed idf: ln((1+N)/(1+df)) + 1, so terms present in every
	// document still carry a small positive weight.
	n := float64(len(docs))
	for term, df := range docFreqs {
		t.idf[term] = math.Log((1+n)/(1+float64(df))) + 1
	}

	for i, tf := range termFreqs {
		weights := make(map[string]float64, len(tf))
		var norm float64
		for term, count := range tf {
			w := float64(count) * t.idf[term]
			weights[term] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for term := range weights {
				weights[term] /= norm
			}
		}
		t.docWeights[i] = weights
	}

	return t
}

// Score returns the cosine similarity between the query's tf-idf vector
// and every document, indexed by document position. Scores lie in [0, 1].
func (t *TFIDF) Score(query []string) []float64 {
	scores := make([]float64, t.numDocs)
	if len(query) == 0 {
		return scores
	}

	queryTF := make(map[string]int, len(query))
	for _, token := range query {
		queryTF[token]++
	}

	queryWeights := make(map[string]float64, len(queryTF))
	var norm float64
	for term, count := range queryTF {
		idf, known := t.idf[term]
		if !known {
			// Out-of-vocabulary terms contribute nothing to any document
			// but still count toward the query norm with smoothed idf 1.
			idf = 1
		}
		w := float64(count) * idf
		queryWeights[term] = w
		norm += w * w
	}
	if norm == 0 {
		return scores
	}
	norm = math.Sqrt(norm)

	for i, weights := range t.docWeights {
		var dot float64
		for term, qw := range queryWeights {
			if dw, ok := weights[term]; ok {
				dot += qw * dw
			}
		}
		scores[i] = dot / norm
	}
	return scores
}
