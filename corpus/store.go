package corpus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/poiesic/scholarly/core"
	"github.com/poiesic/scholarly/storage"
)

// ErrSnapshotStoreRequired is returned when a snapshot store is not provided.
var ErrSnapshotStoreRequired = errors.New("snapshot store required")

// ErrBatchMismatch indicates an append batch whose paper and vector counts
// differ.
var ErrBatchMismatch = errors.New("papers and embeddings count mismatch")

// Store holds the corpus: an ordered, append-only paper list with a
// parallel embedding list. A paper's id is its position; ids are never
// reused or renumbered. Safe for concurrent use.
type Store struct {
	mu         sync.RWMutex
	papers     []*core.Paper
	embeddings [][]float32
	identities map[core.IdentityKey]int // identity key -> id
	generation uint64

	snapshots storage.SnapshotStore
	logger    *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// NewStore creates an empty corpus store backed by the given snapshot
// store.
func NewStore(snapshots storage.SnapshotStore, opts ...Option) (*Store, error) {
	if snapshots == nil {
		return nil, ErrSnapshotStoreRequired
	}

	s := &Store{
		identities: make(map[core.IdentityKey]int),
		snapshots:  snapshots,
		logger:     slog.Default().With("component", "corpus"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Load replaces the in-memory corpus with the persisted snapshot. An
// absent or undecodable snapshot leaves the corpus empty rather than
// failing startup; the next sync rebuilds it from upstream.
func (s *Store) Load(ctx context.Context) error {
	snapshot, err := s.snapshots.Load(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		s.logger.Info("no corpus snapshot found, starting empty")
		return nil
	}
	if errors.Is(err, storage.ErrSerializationFailed) {
		s.logger.Warn("corpus snapshot is malformed, starting empty", "err", err)
		return nil
	}
	if err != nil {
		return err
	}

	papers := make([]*core.Paper, len(snapshot.Papers))
	identities := make(map[core.IdentityKey]int, len(snapshot.Papers))
	for i := range snapshot.Papers {
		paper := snapshot.Papers[i]
		paper.Id = i
		papers[i] = &paper
		identities[paper.Identity()] = i
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.papers = papers
	s.embeddings = snapshot.Vectors
	s.identities = identities
	s.generation++

	s.logger.Info("corpus loaded from snapshot", "papers", len(papers), "generation", s.generation)
	return nil
}

// AppendBatch appends new papers and their embeddings in the given order,
// assigning each paper the next positional id. Papers whose identity key
// is already present are skipped along with their embedding. The whole
// batch becomes visible to readers at once; the generation is bumped only
// when at least one paper was added.
func (s *Store) AppendBatch(papers []*core.Paper, embeddings [][]float32) (int, error) {
	if len(papers) != len(embeddings) {
		return 0, fmt.Errorf("%w: %d papers, %d embeddings", ErrBatchMismatch, len(papers), len(embeddings))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for i, paper := range papers {
		key := paper.Identity()
		if _, exists := s.identities[key]; exists {
			s.logger.Warn("skipping duplicate paper in append batch", "title", paper.Title)
			continue
		}
		paper.Id = len(s.papers)
		s.papers = append(s.papers, paper)
		s.embeddings = append(s.embeddings, embeddings[i])
		s.identities[key] = paper.Id
		added++
	}

	if added > 0 {
		s.generation++
	}
	return added, nil
}

// Persist writes the current corpus to the snapshot store.
func (s *Store) Persist(ctx context.Context) error {
	s.mu.RLock()
	snapshot := &core.Snapshot{
		Papers:  make([]core.Paper, len(s.papers)),
		Vectors: make([][]float32, len(s.embeddings)),
	}
	for i, paper := range s.papers {
		snapshot.Papers[i] = *paper
	}
	copy(snapshot.Vectors, s.embeddings)
	s.mu.RUnlock()

	return s.snapshots.Save(ctx, snapshot)
}

// Contains reports whether a paper with the given identity key is already
// in the corpus.
func (s *Store) Contains(key core.IdentityKey) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.identities[key]
	return ok
}

// Get returns the paper with the given id.
func (s *Store) Get(id int) (*core.Paper, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id < 0 || id >= len(s.papers) {
		return nil, false
	}
	return s.papers[id], true
}

// Len returns the number of papers in the corpus.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.papers)
}

// Generation returns the current corpus generation. It increases on every
// mutation that adds or replaces records; derived indices compare it to
// the generation they were built against.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// View is a consistent read-only snapshot of the corpus at one generation.
// Papers and Embeddings are parallel; entries are never mutated after
// append, so a view stays valid while the corpus grows behind it.
type View struct {
	Papers     []*core.Paper
	Embeddings [][]float32
	Generation uint64
}

// View captures the current corpus state for index building and scoring.
func (s *Store) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return View{
		Papers:     s.papers[:len(s.papers):len(s.papers)],
		Embeddings: s.embeddings[:len(s.embeddings):len(s.embeddings)],
		Generation: s.generation,
	}
}

// ReplaceEmbeddings swaps every embedding for the corresponding paper, in
// corpus order. Used by reembedding; the count must match the corpus
// exactly and the swap is all-or-nothing.
func (s *Store) ReplaceEmbeddings(embeddings [][]float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(embeddings) != len(s.papers) {
		return fmt.Errorf("%w: %d papers, %d embeddings", ErrBatchMismatch, len(s.papers), len(embeddings))
	}
	s.embeddings = embeddings
	s.generation++
	return nil
}
