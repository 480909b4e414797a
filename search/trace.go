package search

import "github.com/poiesic/scholarly/core"

// Trace provides hooks to observe a ranking computation. Implement it to
// inspect intermediate per-signal scores during search; hooks fire only
// when a ranking is actually computed, not on cache hits.
type Trace interface {
	Start(query string, tokens []string)
	Signals(sparse, probabilistic, semantic []float64)
	Fused(normalized []float64)
	Finish(ranking []core.SearchResult)
}

// noopTrace is a no-op implementation of Trace.
type noopTrace struct{}

var _ Trace = (*noopTrace)(nil)

func (noopTrace) Start(_ string, _ []string) {}

func (noopTrace) Signals(_, _, _ []float64) {}

func (noopTrace) Fused(_ []float64) {}

func (noopTrace) Finish(_ []core.SearchResult) {}
