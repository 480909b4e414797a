package graphsource

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	falkordb "github.com/FalkorDB/falkordb-go/v2"
	"github.com/poiesic/scholarly/core"
)

// fetchQuery pulls every Paper node's fields in one read.
const fetchQuery = `MATCH (p:Paper) ` +
	`RETURN p.title, p.abstract, p.author, p.co_authors, p.keywords, p.year, p.doi ` +
	`ORDER BY id(p)`

// FalkorSource implements Source against a FalkorDB graph.
type FalkorSource struct {
	graph  *falkordb.Graph
	logger *slog.Logger
}

var _ Source = (*FalkorSource)(nil)

// NewFalkorSource connects to FalkorDB at url (e.g. "falkor://localhost:6379")
// and selects the named graph.
func NewFalkorSource(url, graphName string) (*FalkorSource, error) {
	db, err := falkordb.FromURL(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrUpstreamUnavailable, err)
	}
	graph := db.SelectGraph(graphName)
	return &FalkorSource{
		graph:  graph,
		logger: slog.Default().With("component", "falkor-source"),
	}, nil
}

// FetchAll returns every paper record in the graph, in node-id order so
// repeated fetches of an unchanged graph enumerate identically.
func (s *FalkorSource) FetchAll(ctx context.Context) ([]Record, error) {
	result, err := s.graph.Query(fetchQuery, nil, nil)
	if err != nil {
		s.logger.Error("graph fetch failed", "err", err)
		return nil, fmt.Errorf("%w: %w", core.ErrUpstreamUnavailable, err)
	}

	var records []Record
	for result.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row := result.Record()
		records = append(records, Record{
			Title:     toString(row.GetByIndex(0)),
			Abstract:  toString(row.GetByIndex(1)),
			Author:    toString(row.GetByIndex(2)),
			CoAuthors: toStringSlice(row.GetByIndex(3)),
			Keywords:  toStringSlice(row.GetByIndex(4)),
			Year:      row.GetByIndex(5),
			Doi:       toString(row.GetByIndex(6)),
		})
	}

	s.logger.Info("fetched records from graph store", "count", len(records))
	return records, nil
}

// toString coerces a graph property to a string. Missing properties come
// back as nil and map to "".
func toString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// toStringSlice coerces a graph property to a string list. Upstream stores
// list fields either as real arrays or as comma-joined strings.
func toStringSlice(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s := strings.TrimSpace(toString(item)); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, part := range parts {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{toString(v)}
	}
}
