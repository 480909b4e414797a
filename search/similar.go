package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/poiesic/scholarly/core"
	"github.com/poiesic/scholarly/index"
)

// FindSimilar ranks the corpus by dense cosine similarity to the paper
// with the given id, drops the paper itself and every id in excludeIds,
// and returns at most count results. An unknown id is a not-found error;
// having no candidates left after exclusion is an empty result, not an
// error.
func (e *Engine) FindSimilar(ctx context.Context, id, count int, excludeIds []int) ([]core.SearchResult, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: count=%d", core.ErrInvalidInput, count)
	}

	view := e.corpus.View()
	if id < 0 || id >= len(view.Papers) {
		return nil, fmt.Errorf("%w: id=%d", core.ErrPaperNotFound, id)
	}

	excluded := make(map[int]bool, len(excludeIds)+1)
	excluded[id] = true
	for _, ex := range excludeIds {
		excluded[ex] = true
	}

	scores := index.CosineScores(view.Embeddings[id], view.Embeddings)

	candidates := make([]core.SearchResult, 0, len(view.Papers))
	for i, paper := range view.Papers {
		if excluded[i] {
			continue
		}
		candidates = append(candidates, core.SearchResult{Paper: paper, Score: scores[i]})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Paper.Id < candidates[j].Paper.Id
	})

	if len(candidates) > count {
		candidates = candidates[:count]
	}
	return candidates, nil
}

// FilterByKeyword returns, in id order, every paper whose keyword list
// contains the given keyword as a case-insensitive substring.
func (e *Engine) FilterByKeyword(keyword string) []*core.Paper {
	needle := strings.ToLower(strings.TrimSpace(keyword))

	view := e.corpus.View()
	var matches []*core.Paper
	for _, paper := range view.Papers {
		haystack := strings.ToLower(strings.Join(paper.Keywords, " "))
		if strings.Contains(haystack, needle) {
			matches = append(matches, paper)
		}
	}
	return matches
}
