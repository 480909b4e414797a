package graphsource

import "context"

// Record is a raw paper as returned by the graph store, before year
// parsing and DOI normalization. Year is loosely typed because upstream
// stores it variously as integer, fractional float or string.
type Record struct {
	Title     string
	Abstract  string
	Author    string
	CoAuthors []string
	Keywords  []string
	Year      any
	Doi       string
}

// Source fetches the full authoritative record set.
// Implementations must be safe for concurrent use.
type Source interface {
	// FetchAll returns every paper record the store holds, in store order.
	// A failed fetch returns an error and no partial results.
	FetchAll(ctx context.Context) ([]Record, error)
}
