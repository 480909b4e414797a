package core

import (
	"encoding/binary"
	"io"
	"strconv"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// DoiNotAvailable is the sentinel DOI for papers without one.
const DoiNotAvailable = "N/A"

// Paper is a single academic paper in the corpus.
// Its Id equals its position in the corpus and is assigned at append time;
// ids are never reused or renumbered.
type Paper struct {
	Id        int
	Title     string
	Abstract  string
	Author    string
	CoAuthors []string
	Keywords  []string
	Year      int
	Doi       string // canonical resolver URL, or DoiNotAvailable
}

// IdentityKey is the dedup key for a paper. Two raw records describe the
// same paper iff their identity keys match.
type IdentityKey uint64

// Identity computes the paper's identity key from title, author, year,
// co-author list and case-insensitive DOI. Abstract and keywords are
// deliberately excluded so upstream enrichment of those fields does not
// create a duplicate record.
func (p *Paper) Identity() IdentityKey {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	io.WriteString(h, p.Title)
	h.Write([]byte{0})
	io.WriteString(h, p.Author)
	h.Write([]byte{0})
	io.WriteString(h, strconv.Itoa(p.Year))
	h.Write([]byte{0})
	for _, ca := range p.CoAuthors {
		io.WriteString(h, ca)
		h.Write([]byte{0x1f})
	}
	h.Write([]byte{0})
	io.WriteString(h, strings.ToLower(p.Doi))
	sum := h.Sum(nil)
	return IdentityKey(binary.LittleEndian.Uint64(sum))
}

// Composite document field weights. Keywords and title are repeated to
// bias lexical and semantic matches toward them.
const (
	WeightKeywords = 3
	WeightTitle    = 5
)

// Document builds the composite text the indices rank against:
// keywords repeated WeightKeywords times, title repeated WeightTitle
// times, then the abstract, space-joined.
func (p *Paper) Document() string {
	var sb strings.Builder
	keywords := strings.Join(p.Keywords, " ")
	for range WeightKeywords {
		sb.WriteString(keywords)
		sb.WriteByte(' ')
	}
	for range WeightTitle {
		sb.WriteString(p.Title)
		sb.WriteByte(' ')
	}
	sb.WriteString(p.Abstract)
	return sb.String()
}

// SearchResult is a ranked paper with its relevance score.
// For fused search the score is normalized to [0, 1]; for similarity
// lookups it is the raw cosine similarity.
type SearchResult struct {
	Paper *Paper
	Score float64
}

// Snapshot is the durable form of the corpus: the ordered paper list and
// the parallel embedding list. Invariant: len(Papers) == len(Vectors).
type Snapshot struct {
	Papers  []Paper
	Vectors [][]float32
}
