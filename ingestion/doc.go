// Package ingestion synchronizes the local corpus with the authoritative
// graph store.
//
// The Syncer fetches the full upstream record set, converts and validates
// the raw records, drops papers the corpus already holds, embeds the new
// papers concurrently on a worker pool, appends them in upstream order and
// persists a snapshot. Embedding failures for individual papers are logged
// and skipped rather than failing the whole sync.
package ingestion
