package index

import "math"

// CosineScores returns the cosine similarity between the query vector and
// every corpus embedding, indexed by paper id. A zero or dimension-
// mismatched pair scores 0.
func CosineScores(query []float32, embeddings [][]float32) []float64 {
	scores := make([]float64, len(embeddings))
	queryNorm := vectorNorm(query)
	if queryNorm == 0 {
		return scores
	}
	for i, embedding := range embeddings {
		scores[i] = cosine(query, embedding, queryNorm)
	}
	return scores
}

func cosine(a, b []float32, aNorm float64) float64 {
	if aNorm == 0 || len(a) != len(b) {
		return 0
	}
	bNorm := vectorNorm(b)
	if bNorm == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot / (aNorm * bNorm)
}

func vectorNorm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}
