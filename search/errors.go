package search

import "errors"

var (
	// ErrCorpusRequired is returned when a corpus store is not provided.
	ErrCorpusRequired = errors.New("corpus store required")

	// ErrNormalizerRequired is returned when a normalizer is not provided.
	ErrNormalizerRequired = errors.New("normalizer required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")
)
