package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/poiesic/scholarly/ai"
	"github.com/poiesic/scholarly/core"
	"github.com/poiesic/scholarly/corpus"
	"github.com/poiesic/scholarly/index"
	"github.com/poiesic/scholarly/textproc"
)

// Signal fusion weights: a fixed convex combination of the sparse,
// probabilistic and dense scores.
const (
	weightSparse        = 0.35
	weightProbabilistic = 0.35
	weightSemantic      = 0.30
)

// lexicalIndices is the pair of disposable lexical views, tagged with the
// corpus generation they were built against.
type lexicalIndices struct {
	tfidf      *index.TFIDF
	bm25       *index.BM25
	generation uint64
}

// Engine answers search, similarity and keyword-filter queries over the
// corpus. It never mutates the corpus; lexical indices are rebuilt lazily
// when the corpus generation moves past the one they were built against.
type Engine struct {
	corpus     *corpus.Store
	normalizer *textproc.Normalizer
	embedder   ai.Embedder

	mu      sync.RWMutex
	lexical *lexicalIndices

	cache  *resultCache
	trace  Trace
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithTrace sets a ranking trace hook. Default is a no-op.
func WithTrace(trace Trace) Option {
	return func(e *Engine) error {
		if trace == nil {
			trace = noopTrace{}
		}
		e.trace = trace
		return nil
	}
}

// NewEngine creates a query engine over the given corpus store.
func NewEngine(store *corpus.Store, normalizer *textproc.Normalizer, embedder ai.Embedder, opts ...Option) (*Engine, error) {
	if store == nil {
		return nil, ErrCorpusRequired
	}
	if normalizer == nil {
		return nil, ErrNormalizerRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	e := &Engine{
		corpus:     store,
		normalizer: normalizer,
		embedder:   embedder,
		cache:      newResultCache(),
		trace:      noopTrace{},
		logger:     slog.Default().With("component", "search"),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Search returns the requested page of the fused ranking for the query.
// Pages are 1-indexed, fixed-size windows over the ranking of the whole
// corpus; a page past the end is an empty result, not an error. Scores
// are normalized to [0, 1] with the top result at 1.0 whenever any signal
// fired.
func (e *Engine) Search(ctx context.Context, query string, page, pageSize int) ([]core.SearchResult, error) {
	if page < 1 || pageSize < 1 {
		return nil, fmt.Errorf("%w: page=%d pageSize=%d", core.ErrInvalidInput, page, pageSize)
	}

	view := e.corpus.View()
	if len(view.Papers) == 0 {
		return []core.SearchResult{}, nil
	}

	tokens := e.normalizer.Tokens(query)
	normalized := e.normalizer.Normalize(query)

	key := cacheKey{query: normalized, pageSize: pageSize}
	entry := e.cache.entry(key, view.Generation)
	if results, ok := entry.page(page, pageSize); ok {
		return results, nil
	}

	ranking, err := e.rank(ctx, view, normalized, tokens)
	if err != nil {
		return nil, err
	}

	entry.extend(ranking, page, pageSize)

	start := (page - 1) * pageSize
	if start >= len(ranking) {
		return []core.SearchResult{}, nil
	}
	end := start + pageSize
	if end > len(ranking) {
		end = len(ranking)
	}
	return append([]core.SearchResult(nil), ranking[start:end]...), nil
}

// rank computes the full fused ranking of the corpus view for the query.
func (e *Engine) rank(ctx context.Context, view corpus.View, normalized string, tokens []string) ([]core.SearchResult, error) {
	e.trace.Start(normalized, tokens)

	lexical := e.ensureLexical(view)
	sparse := lexical.tfidf.Score(tokens)
	probabilistic := lexical.bm25.Score(tokens)

	queryVector, err := e.embedder.EmbedText(ctx, normalized)
	if err != nil {
		e.logger.Error("error embedding query", "err", err)
		return nil, err
	}
	semantic := index.CosineScores(queryVector, view.Embeddings)
	e.trace.Signals(sparse, probabilistic, semantic)

	fused := make([]float64, len(view.Papers))
	var max float64
	for i := range fused {
		fused[i] = weightSparse*sparse[i] + weightProbabilistic*probabilistic[i] + weightSemantic*semantic[i]
		// A negative cosine can drag the fused score below zero when the
		// lexical signals are silent; scores are clamped so the ranking
		// stays in [0, 1] after normalization.
		if fused[i] < 0 {
			fused[i] = 0
		}
		if fused[i] > max {
			max = fused[i]
		}
	}
	// Normalize by the maximum fused score; an all-zero score vector is
	// left as-is.
	if max > 0 {
		for i := range fused {
			fused[i] /= max
		}
	}
	e.trace.Fused(fused)

	ranking := make([]core.SearchResult, len(view.Papers))
	for i, paper := range view.Papers {
		ranking[i] = core.SearchResult{Paper: paper, Score: fused[i]}
	}
	// Descending score; ties break on ascending id for determinism.
	sort.SliceStable(ranking, func(i, j int) bool {
		if ranking[i].Score != ranking[j].Score {
			return ranking[i].Score > ranking[j].Score
		}
		return ranking[i].Paper.Id < ranking[j].Paper.Id
	})

	e.trace.Finish(ranking)
	return ranking, nil
}

// ensureLexical returns lexical indices built against the view's
// generation, rebuilding them if the cached pair is stale. Readers see
// either the old or the new pair, never a partial rebuild.
func (e *Engine) ensureLexical(view corpus.View) *lexicalIndices {
	e.mu.RLock()
	lexical := e.lexical
	e.mu.RUnlock()
	if lexical != nil && lexical.generation == view.Generation {
		return lexical
	}

	docs := make([][]string, len(view.Papers))
	for i, paper := range view.Papers {
		docs[i] = e.normalizer.Tokens(paper.Document())
	}
	rebuilt := &lexicalIndices{
		tfidf:      index.NewTFIDF(docs),
		bm25:       index.NewBM25(docs),
		generation: view.Generation,
	}

	e.mu.Lock()
	// Another goroutine may have rebuilt meanwhile; the newest
	// generation wins the shared slot, but scoring always uses a pair
	// matching the caller's view.
	if e.lexical == nil || e.lexical.generation < rebuilt.generation {
		e.lexical = rebuilt
	}
	e.mu.Unlock()

	e.logger.Debug("lexical indices rebuilt", "generation", view.Generation, "documents", len(docs))
	return rebuilt
}
