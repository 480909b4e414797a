package server

import "errors"

var (
	// ErrEngineRequired is returned when a search engine is not provided.
	ErrEngineRequired = errors.New("search engine required")

	// ErrSyncerRequired is returned when a syncer is not provided.
	ErrSyncerRequired = errors.New("syncer required")

	// ErrCorpusRequired is returned when a corpus store is not provided.
	ErrCorpusRequired = errors.New("corpus store required")
)
