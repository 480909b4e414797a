package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/poiesic/scholarly/core"
	"github.com/poiesic/scholarly/corpus"
	"github.com/poiesic/scholarly/ingestion"
	"github.com/poiesic/scholarly/search"
)

// Default query parameter values.
const (
	defaultPageSize     = 20
	defaultSimilarCount = 5
)

// Server routes HTTP requests to the engine and syncer.
type Server struct {
	engine *search.Engine
	syncer *ingestion.Syncer
	corpus *corpus.Store
	router chi.Router
	logger *slog.Logger
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewServer creates the HTTP layer over the given engine, syncer and
// corpus store.
func NewServer(engine *search.Engine, syncer *ingestion.Syncer, store *corpus.Store, opts ...Option) (*Server, error) {
	if engine == nil {
		return nil, ErrEngineRequired
	}
	if syncer == nil {
		return nil, ErrSyncerRequired
	}
	if store == nil {
		return nil, ErrCorpusRequired
	}

	s := &Server{
		engine: engine,
		syncer: syncer,
		corpus: store,
		logger: slog.Default().With("component", "server"),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	router.Route("/api", func(r chi.Router) {
		r.Get("/search", s.handleSearch)
		r.Get("/papers/{id}/similar", s.handleSimilar)
		r.Get("/keyword-search", s.handleKeywordSearch)
		r.Post("/sync", s.handleSync)
		r.Get("/healthz", s.handleHealthz)
	})

	s.router = router
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// errorResponse is the JSON body for every non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("error encoding response", "err", err)
	}
}

// writeError maps domain errors onto HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, core.ErrPaperNotFound):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrUpstreamUnavailable):
		status = http.StatusBadGateway
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}
