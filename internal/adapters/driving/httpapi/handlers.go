package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/custodia-labs/hadith-search/internal/core/domain"
	"github.com/custodia-labs/hadith-search/internal/logger"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := s.retrieval.Health(r.Context())
	status := http.StatusOK
	if health.Status == domain.HealthUnhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, toHealthResponse(health))
}

func (s *Server) handleSearchBody(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Errorf("%w: malformed body: %w", domain.ErrInvalidInput, err))
		return
	}

	query := domain.Query{
		Text:       req.Query,
		Language:   req.Language,
		TopK:       s.cfg.DefaultTopK,
		Collection: req.Collection,
	}
	if req.TopK != nil {
		query.TopK = *req.TopK
	}
	s.search(w, r, query)
}

func (s *Server) handleSearchQuery(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := domain.Query{
		Text:       params.Get("q"),
		Language:   params.Get("language"),
		TopK:       s.cfg.DefaultTopK,
		Collection: params.Get("collection"),
	}
	if v := params.Get("top_k"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, fmt.Errorf("%w: top_k must be an integer", domain.ErrInvalidInput))
			return
		}
		query.TopK = n
	}
	s.search(w, r, query)
}

func (s *Server) search(w http.ResponseWriter, r *http.Request, query domain.Query) {
	results, err := s.retrieval.Retrieve(r.Context(), query)
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}
	logger.Debug("request %s: %d results for %q", RequestIDFrom(r.Context()), len(results), query.Text)
	writeJSON(w, http.StatusOK, toSearchResponse(results))
}

// publicError hides provider details behind the sentinel for upstream failures.
func publicError(err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return err
	}
	for _, sentinel := range []error{domain.ErrEmbeddingUnavailable, domain.ErrVectorIndexUnavailable} {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}
	return err
}
