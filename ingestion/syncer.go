package ingestion

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/scholarly/ai"
	"github.com/poiesic/scholarly/core"
	"github.com/poiesic/scholarly/corpus"
	"github.com/poiesic/scholarly/graphsource"
)

// Syncer pulls the authoritative record set from the graph store into the
// local corpus. Syncs are incremental: records whose identity key is
// already in the corpus are skipped, so repeated syncs against an
// unchanged upstream are no-ops.
type Syncer struct {
	source   graphsource.Source
	corpus   *corpus.Store
	embedder ai.Embedder

	pool   *ants.Pool
	mu     sync.Mutex // serializes whole syncs
	logger *slog.Logger
}

// Option configures a Syncer.
type Option func(*Syncer) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Syncer) error {
		if size < 1 {
			size = 1
		}

		if s.pool != nil {
			s.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		s.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Syncer) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSyncer creates a syncer from the graph source into the corpus store.
func NewSyncer(source graphsource.Source, store *corpus.Store, embedder ai.Embedder, opts ...Option) (*Syncer, error) {
	if source == nil {
		return nil, ErrSourceRequired
	}
	if store == nil {
		return nil, ErrCorpusRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	s := &Syncer{
		source:   source,
		corpus:   store,
		embedder: embedder,
		pool:     pool,
		logger:   slog.Default().With("component", "ingestion"),
	}
	for _, opt := range opts {
		if optErr := opt(s); optErr != nil {
			s.Release()
			return nil, optErr
		}
	}
	return s, nil
}

// Report summarizes one sync run.
type Report struct {
	Fetched int // records returned by the graph store
	Invalid int // records dropped by validation
	Known   int // records already present in the corpus
	Failed  int // new records dropped because embedding failed
	Added   int // records appended to the corpus
}

// Sync fetches the upstream record set and appends every new, valid paper
// to the corpus, then persists a snapshot. Only one sync runs at a time;
// concurrent calls queue behind the running one. A sync that finds nothing
// new does not touch the snapshot.
func (s *Syncer) Sync(ctx context.Context) (*Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.source.FetchAll(ctx)
	if err != nil {
		s.logger.Error("error fetching records from graph store", "err", err)
		return nil, err
	}
	report := &Report{Fetched: len(records)}

	papers := s.selectNew(records, report)
	if len(papers) == 0 {
		s.logger.Info("sync found nothing new", "fetched", report.Fetched, "known", report.Known)
		return report, nil
	}

	papers, vectors := s.embedAll(ctx, papers, report)
	if len(papers) == 0 {
		return report, nil
	}

	added, err := s.corpus.AppendBatch(papers, vectors)
	if err != nil {
		return nil, err
	}
	report.Added = added

	if err := s.corpus.Persist(ctx); err != nil {
		s.logger.Error("error persisting corpus snapshot", "err", err)
		return report, err
	}

	s.logger.Info("sync complete",
		"fetched", report.Fetched,
		"invalid", report.Invalid,
		"known", report.Known,
		"failed", report.Failed,
		"added", report.Added)
	return report, nil
}

// SyncAsync runs Sync on its own goroutine. Errors are logged, not
// returned; the worker pool is reserved for embedding so a queued sync
// can never starve the tasks it fans out.
func (s *Syncer) SyncAsync(ctx context.Context) {
	go func() {
		if _, err := s.Sync(ctx); err != nil {
			s.logger.Error("error during async sync", "err", err)
		}
	}()
}

// Reembed regenerates the embedding of every paper in the corpus and
// persists the result. Unlike Sync it is all-or-nothing: any embedding
// failure aborts without touching the stored vectors.
func (s *Syncer) Reembed(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := s.corpus.View()
	if len(view.Papers) == 0 {
		return nil
	}

	texts := make([]string, len(view.Papers))
	for i, paper := range view.Papers {
		texts[i] = paper.Document()
	}
	vectors, err := s.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		s.logger.Error("error reembedding corpus", "err", err)
		return err
	}

	if err := s.corpus.ReplaceEmbeddings(vectors); err != nil {
		return err
	}
	s.logger.Info("corpus reembedded", "papers", len(vectors))
	return s.corpus.Persist(ctx)
}

// Release releases the worker pool.
// The syncer should not be used after calling Release.
func (s *Syncer) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}

// selectNew converts raw records to papers, dropping invalid ones and
// papers the corpus (or an earlier record in the same batch) already
// holds. Upstream order is preserved.
func (s *Syncer) selectNew(records []graphsource.Record, report *Report) []*core.Paper {
	papers := make([]*core.Paper, 0, len(records))
	seen := make(map[core.IdentityKey]bool, len(records))

	for _, record := range records {
		paper, err := convertRecord(record)
		if err != nil {
			s.logger.Warn("skipping invalid record", "title", record.Title, "err", err)
			report.Invalid++
			continue
		}
		key := paper.Identity()
		if seen[key] {
			report.Known++
			continue
		}
		seen[key] = true
		if s.corpus.Contains(key) {
			report.Known++
			continue
		}
		papers = append(papers, paper)
	}
	return papers
}

// embedAll embeds the papers' composite documents concurrently and
// returns the papers whose embedding succeeded, with their vectors, in
// the original order. Failures are logged and counted but do not abort
// the batch.
func (s *Syncer) embedAll(ctx context.Context, papers []*core.Paper, report *Report) ([]*core.Paper, [][]float32) {
	vectors := make([][]float32, len(papers))
	failures := make([]error, len(papers))

	var wg sync.WaitGroup
	for i, paper := range papers {
		i, paper := i, paper
		wg.Add(1)
		submitErr := s.pool.Submit(func() {
			defer wg.Done()
			vector, err := s.embedder.EmbedText(ctx, paper.Document())
			if err != nil {
				failures[i] = err
				return
			}
			vectors[i] = vector
		})
		if submitErr != nil {
			failures[i] = submitErr
			wg.Done()
		}
	}
	wg.Wait()

	kept := papers[:0]
	keptVectors := vectors[:0]
	for i, paper := range papers {
		if failures[i] != nil {
			s.logger.Warn("skipping paper after embedding failure", "title", paper.Title, "err", failures[i])
			report.Failed++
			continue
		}
		kept = append(kept, paper)
		keptVectors = append(keptVectors, vectors[i])
	}
	return kept, keptVectors
}

// convertRecord builds a validated Paper from a raw graph store record.
// A record with an unparseable year keeps year zero rather than being
// dropped.
func convertRecord(record graphsource.Record) (*core.Paper, error) {
	year, err := core.ParseYear(record.Year)
	if err != nil {
		year = 0
	}

	paper := &core.Paper{
		Title:     record.Title,
		Abstract:  record.Abstract,
		Author:    record.Author,
		CoAuthors: record.CoAuthors,
		Keywords:  record.Keywords,
		Year:      year,
		Doi:       core.NormalizeDOI(record.Doi),
	}
	if err := core.ValidatePaper(paper); err != nil {
		return nil, err
	}
	return paper, nil
}
