package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hadith-search/internal/core/domain"
)

type mockRetrievalService struct {
	results   []domain.Result
	err       error
	health    domain.Health
	lastQuery domain.Query
}

func (m *mockRetrievalService) Retrieve(_ context.Context, query domain.Query) ([]domain.Result, error) {
	m.lastQuery = query
	if m.err != nil {
		return nil, m.err
	}
	if query.TopK <= 0 {
		return nil, fmt.Errorf("%w: top_k must be positive", domain.ErrInvalidInput)
	}
	return m.results, nil
}

func (m *mockRetrievalService) Health(_ context.Context) domain.Health {
	return m.health
}

func sampleResults() []domain.Result {
	chapter := "Revelation"
	return []domain.Result{
		{
			Document: domain.Document{
				ID:         "1",
				SourceText: "انما الاعمال بالنيات",
				Translation: &domain.Translation{
					Narrator: "Narrated Umar:",
					Text:     "Actions are by intentions.",
				},
				ChapterID: 1,
			},
			CollectionID:    "bukhari",
			ChapterName:     &chapter,
			Score:           0.91,
			MatchedLanguage: domain.LanguageEnglish,
		},
		{
			Document:        domain.Document{ID: "2", SourceText: "الدين النصيحة", ChapterID: 4},
			CollectionID:    "muslim",
			Score:           0.52,
			MatchedLanguage: domain.LanguageArabic,
		},
	}
}

func newTestServer(t *testing.T, svc *mockRetrievalService) *Server {
	t.Helper()
	srv, err := NewServer(svc, Config{DefaultTopK: 5})
	require.NoError(t, err)
	return srv
}

func do(t *testing.T, srv http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestNewServer_RequiresRetrieval(t *testing.T) {
	_, err := NewServer(nil, Config{})
	assert.ErrorIs(t, err, ErrMissingRetrievalService)
}

func TestPostSearch(t *testing.T) {
	svc := &mockRetrievalService{results: sampleResults()}
	srv := newTestServer(t, svc)

	rec := do(t, srv, http.MethodPost, "/search",
		`{"query": "intentions", "language": "en", "top_k": 2, "collection": "bukhari"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	assert.Equal(t, domain.Query{Text: "intentions", Language: "en", TopK: 2, Collection: "bukhari"}, svc.lastQuery)

	var body struct {
		Results []map[string]any `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Results, 2)

	first := body.Results[0]
	assert.Equal(t, "1", first["document_id"])
	assert.Equal(t, "Actions are by intentions.", first["text"])
	assert.Equal(t, "انما الاعمال بالنيات", first["source_text"])
	assert.Equal(t, "Actions are by intentions.", first["translated_text"])
	assert.Equal(t, "Narrated Umar:", first["narrator"])
	assert.Equal(t, "bukhari", first["collection_id"])
	assert.Equal(t, float64(1), first["chapter_id"])
	assert.Equal(t, "Revelation", first["chapter_name"])
	assert.Equal(t, "english", first["language"])
	assert.InDelta(t, 0.91, first["score"], 1e-9)

	second := body.Results[1]
	assert.Equal(t, "الدين النصيحة", second["text"])
	assert.NotContains(t, second, "chapter_name")
	assert.NotContains(t, second, "translated_text")
	assert.NotContains(t, second, "narrator")
}

func TestPostSearch_DefaultTopK(t *testing.T) {
	svc := &mockRetrievalService{}
	srv := newTestServer(t, svc)

	rec := do(t, srv, http.MethodPost, "/search", `{"query": "prayer"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, svc.lastQuery.TopK)
	assert.JSONEq(t, `{"results": []}`, rec.Body.String())
}

func TestGetSearch(t *testing.T) {
	svc := &mockRetrievalService{results: sampleResults()[:1]}
	srv := newTestServer(t, svc)

	rec := do(t, srv, http.MethodGet, "/search?q=fasting&language=arabic&top_k=3&collection=muslim", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.Query{Text: "fasting", Language: "arabic", TopK: 3, Collection: "muslim"}, svc.lastQuery)
}

func TestSearch_Errors(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "malformed body",
			method:     http.MethodPost,
			target:     "/search",
			body:       `{"query": `,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "zero top_k",
			method:     http.MethodPost,
			target:     "/search",
			body:       `{"query": "x", "top_k": 0}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "non-numeric top_k",
			method:     http.MethodGet,
			target:     "/search?q=x&top_k=many",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "empty query",
			method:     http.MethodGet,
			target:     "/search?q=",
			err:        fmt.Errorf("%w: query is empty after normalisation", domain.ErrInvalidInput),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "embedding failure hides provider detail",
			method:     http.MethodPost,
			target:     "/search",
			body:       `{"query": "x"}`,
			err:        fmt.Errorf("%w: dial tcp 10.0.0.1:11434: connection refused", domain.ErrEmbeddingUnavailable),
			wantStatus: http.StatusBadGateway,
			wantError:  domain.ErrEmbeddingUnavailable.Error(),
		},
		{
			name:       "embedding timeout",
			method:     http.MethodPost,
			target:     "/search",
			body:       `{"query": "x"}`,
			err:        fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, context.DeadlineExceeded),
			wantStatus: http.StatusGatewayTimeout,
			wantError:  domain.ErrEmbeddingUnavailable.Error(),
		},
		{
			name:       "vector index failure hides backend detail",
			method:     http.MethodGet,
			target:     "/search?q=x",
			err:        fmt.Errorf("%w: rpc error: code = Unavailable desc = connection refused", domain.ErrVectorIndexUnavailable),
			wantStatus: http.StatusServiceUnavailable,
			wantError:  domain.ErrVectorIndexUnavailable.Error(),
		},
		{
			name:       "unexpected failure",
			method:     http.MethodPost,
			target:     "/search",
			body:       `{"query": "x"}`,
			err:        fmt.Errorf("boom"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, &mockRetrievalService{err: tt.err})
			rec := do(t, srv, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error)
			assert.NotEmpty(t, body.RequestID)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, body.Error)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		health     domain.Health
		wantStatus int
	}{
		{
			name: "healthy",
			health: domain.Health{Status: domain.HealthHealthy, Index: true, Mapping: true,
				Embedding: true, Enrichment: true, Vectors: 10, Mappings: 10, Documents: 5},
			wantStatus: http.StatusOK,
		},
		{
			name:       "degraded",
			health:     domain.Health{Status: domain.HealthDegraded, Index: true, Mapping: true, Embedding: true},
			wantStatus: http.StatusOK,
		},
		{
			name:       "unhealthy",
			health:     domain.Health{Status: domain.HealthUnhealthy},
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, &mockRetrievalService{health: tt.health})
			rec := do(t, srv, http.MethodGet, "/health", "")
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body healthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, toHealthResponse(tt.health), body)
		})
	}
}

func TestRequestID(t *testing.T) {
	srv := newTestServer(t, &mockRetrievalService{health: domain.Health{Status: domain.HealthHealthy}})

	rec := do(t, srv, http.MethodGet, "/health", "")
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "caller-id")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, "caller-id", rec.Header().Get(RequestIDHeader))
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer(t, &mockRetrievalService{})
	rec := do(t, srv, http.MethodDelete, "/search", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = do(t, srv, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
