package search

import (
	"sync"

	"github.com/poiesic/scholarly/core"
)

// cacheKey identifies one cached result set. Entries are per normalized
// query text and page size; the same query at a different page size ranks
// identically but slices differently, so it caches separately.
type cacheKey struct {
	query    string
	pageSize int
}

// cacheEntry accumulates the materialized ranked prefix for one key.
// The prefix only ever grows; positions already served are never replaced
// or reordered. generation records the corpus generation the ranking was
// computed against.
type cacheEntry struct {
	mu         sync.Mutex
	generation uint64
	results    []core.SearchResult
	complete   bool // the prefix covers the full ranking
}

// page returns the 1-indexed page if the entry has materialized it, along
// with true. A page past the end of a complete ranking is an empty,
// successful result.
func (e *cacheEntry) page(page, pageSize int) ([]core.SearchResult, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := (page - 1) * pageSize
	end := start + pageSize

	if e.complete {
		if start >= len(e.results) {
			return []core.SearchResult{}, true
		}
		if end > len(e.results) {
			end = len(e.results)
		}
		return append([]core.SearchResult(nil), e.results[start:end]...), true
	}

	if end <= len(e.results) {
		return append([]core.SearchResult(nil), e.results[start:end]...), true
	}
	return nil, false
}

// extend grows the materialized prefix from the freshly computed full
// ranking to cover the requested page. Previously cached positions take
// precedence: only positions beyond the current prefix are appended, so
// concurrent extensions are monotonic and non-destructive.
func (e *cacheEntry) extend(ranking []core.SearchResult, page, pageSize int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	target := page * pageSize
	if target > len(ranking) {
		target = len(ranking)
	}
	for i := len(e.results); i < target; i++ {
		e.results = append(e.results, ranking[i])
	}
	if len(e.results) == len(ranking) {
		e.complete = true
	}
}

// resultCache is the per-engine table of cached result prefixes.
type resultCache struct {
	mu      sync.Mutex
	entries map[cacheKey]*cacheEntry
}

func newResultCache() *resultCache {
	return &resultCache{entries: make(map[cacheKey]*cacheEntry)}
}

// entry returns the live cache entry for the key at the given corpus
// generation, creating it on first use. An entry ranked against an older
// generation is stale and is replaced, so a sync never leaves old
// rankings being served.
func (c *resultCache) entry(key cacheKey, generation uint64) *cacheEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok && e.generation == generation {
		return e
	}
	e := &cacheEntry{generation: generation}
	c.entries[key] = e
	return e
}
