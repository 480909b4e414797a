package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/poiesic/scholarly/core"
)

// paperResponse is the JSON shape of a ranked or filtered paper.
type paperResponse struct {
	Id        int      `json:"id"`
	Title     string   `json:"title"`
	Keywords  []string `json:"keywords"`
	Author    string   `json:"author"`
	CoAuthors []string `json:"co_authors"`
	Year      int      `json:"year"`
	Doi       string   `json:"doi"`
	Score     *float64 `json:"score,omitempty"`
}

func toPaperResponse(paper *core.Paper, score *float64) paperResponse {
	return paperResponse{
		Id:        paper.Id,
		Title:     paper.Title,
		Keywords:  paper.Keywords,
		Author:    paper.Author,
		CoAuthors: paper.CoAuthors,
		Year:      paper.Year,
		Doi:       paper.Doi,
		Score:     score,
	}
}

func toResultResponses(results []core.SearchResult) []paperResponse {
	responses := make([]paperResponse, len(results))
	for i, result := range results {
		score := result.Score
		responses[i] = toPaperResponse(result.Paper, &score)
	}
	return responses
}

type searchResponse struct {
	Query    string          `json:"query"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
	Results  []paperResponse `json:"results"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	page, err := intParam(r, "page", 1)
	if err != nil {
		s.writeError(w, err)
		return
	}
	pageSize, err := intParam(r, "page_size", defaultPageSize)
	if err != nil {
		s.writeError(w, err)
		return
	}

	results, err := s.engine.Search(r.Context(), query, page, pageSize)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, searchResponse{
		Query:    query,
		Page:     page,
		PageSize: pageSize,
		Results:  toResultResponses(results),
	})
}

type similarResponse struct {
	Id      int             `json:"id"`
	Results []paperResponse `json:"results"`
}

func (s *Server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, fmt.Errorf("%w: id must be an integer", core.ErrInvalidInput))
		return
	}

	count, err := intParam(r, "count", defaultSimilarCount)
	if err != nil {
		s.writeError(w, err)
		return
	}
	excludeIds, err := intListParam(r, "exclude")
	if err != nil {
		s.writeError(w, err)
		return
	}

	results, err := s.engine.FindSimilar(r.Context(), id, count, excludeIds)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, similarResponse{
		Id:      id,
		Results: toResultResponses(results),
	})
}

type keywordResponse struct {
	Keyword string          `json:"keyword"`
	Results []paperResponse `json:"results"`
}

func (s *Server) handleKeywordSearch(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	if strings.TrimSpace(keyword) == "" {
		s.writeError(w, fmt.Errorf("%w: keyword is required", core.ErrInvalidInput))
		return
	}

	matches := s.engine.FilterByKeyword(keyword)
	responses := make([]paperResponse, len(matches))
	for i, paper := range matches {
		responses[i] = toPaperResponse(paper, nil)
	}

	s.writeJSON(w, http.StatusOK, keywordResponse{
		Keyword: keyword,
		Results: responses,
	})
}

type syncResponse struct {
	Fetched int `json:"fetched"`
	Invalid int `json:"invalid"`
	Known   int `json:"known"`
	Failed  int `json:"failed"`
	Added   int `json:"added"`
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("async") == "1" {
		// Detached from the request context so the sync outlives it.
		s.syncer.SyncAsync(context.Background())
		s.writeJSON(w, http.StatusAccepted, map[string]string{"status": "started"})
		return
	}

	report, err := s.syncer.Sync(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, syncResponse{
		Fetched: report.Fetched,
		Invalid: report.Invalid,
		Known:   report.Known,
		Failed:  report.Failed,
		Added:   report.Added,
	})
}

type healthzResponse struct {
	Status     string `json:"status"`
	Papers     int    `json:"papers"`
	Generation uint64 `json:"generation"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, healthzResponse{
		Status:     "ok",
		Papers:     s.corpus.Len(),
		Generation: s.corpus.Generation(),
	})
}

// intParam parses an optional integer query parameter.
func intParam(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", core.ErrInvalidInput, name)
	}
	return value, nil
}

// intListParam parses an optional comma-separated integer list parameter.
func intListParam(r *http.Request, name string) ([]int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	values := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		value, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be a comma-separated integer list", core.ErrInvalidInput, name)
		}
		values = append(values, value)
	}
	return values, nil
}
