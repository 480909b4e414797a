package ingestion

import "errors"

var (
	// ErrSourceRequired is returned when a graph source is not provided.
	ErrSourceRequired = errors.New("graph source required")

	// ErrCorpusRequired is returned when a corpus store is not provided.
	ErrCorpusRequired = errors.New("corpus store required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")
)
