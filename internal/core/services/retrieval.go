package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/hadith-search/internal/core/domain"
	"github.com/custodia-labs/hadith-search/internal/core/ports/driven"
	"github.com/custodia-labs/hadith-search/internal/core/ports/driving"
	"github.com/custodia-labs/hadith-search/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// Default orchestration settings.
const (
	DefaultEmbedTimeout      = 10 * time.Second
	DefaultEnrichTimeout     = 500 * time.Millisecond
	DefaultEnrichConcurrency = 8
)

// RetrievalConfig tunes the orchestrator.
type RetrievalConfig struct {
	// OverfetchFactor multiplies TopK to size the index fetch.
	// Values below domain.MinOverfetchFactor are raised to it.
	OverfetchFactor int

	// EmbedTimeout bounds the query embedding call. Zero means no extra bound.
	EmbedTimeout time.Duration

	// EnrichTimeout bounds each chapter lookup. Zero means no extra bound.
	EnrichTimeout time.Duration

	// EnrichConcurrency bounds parallel chapter lookups.
	EnrichConcurrency int
}

// DefaultRetrievalConfig returns the default orchestrator settings.
func DefaultRetrievalConfig() RetrievalConfig {
	return RetrievalConfig{
		OverfetchFactor:   domain.MinOverfetchFactor,
		EmbedTimeout:      DefaultEmbedTimeout,
		EnrichTimeout:     DefaultEnrichTimeout,
		EnrichConcurrency: DefaultEnrichConcurrency,
	}
}

// candidate is a selected document awaiting enrichment.
type candidate struct {
	doc   *domain.Document
	ref   domain.ChunkRef
	score float64
}

// RetrievalService turns a free-text query into ranked, distinct documents:
// normalise, embed, over-fetch from the index, resolve positions, dedup by
// parent, hydrate and enrich.
type RetrievalService struct {
	embedder    driven.EmbeddingService
	index       driven.VectorIndex
	chunks      driven.ChunkMap
	docs        driven.DocumentStore
	normalisers driven.NormaliserRegistry
	collections driven.CollectionResolver
	chapters    driven.ChapterStore
	cfg         RetrievalConfig
}

// NewRetrievalService creates a retrieval service over loaded resources.
// The chapter store is optional and set with SetChapterStore.
func NewRetrievalService(
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	chunks driven.ChunkMap,
	docs driven.DocumentStore,
	normalisers driven.NormaliserRegistry,
	collections driven.CollectionResolver,
	cfg RetrievalConfig,
) *RetrievalService {
	if cfg.OverfetchFactor < domain.MinOverfetchFactor {
		cfg.OverfetchFactor = domain.MinOverfetchFactor
	}
	if cfg.EnrichConcurrency <= 0 {
		cfg.EnrichConcurrency = DefaultEnrichConcurrency
	}
	return &RetrievalService{
		embedder:    embedder,
		index:       index,
		chunks:      chunks,
		docs:        docs,
		normalisers: normalisers,
		collections: collections,
		cfg:         cfg,
	}
}

// SetChapterStore enables chapter name enrichment.
func (s *RetrievalService) SetChapterStore(store driven.ChapterStore) {
	s.chapters = store
}

// Retrieve returns up to query.TopK distinct documents ordered by the score
// of their best-matching chunk.
func (s *RetrievalService) Retrieve(ctx context.Context, query domain.Query) ([]domain.Result, error) {
	logger.Section("Retrieval")
	logger.Debug("Query: %q (language hint %q, top_k %d, collection %q)",
		query.Text, query.Language, query.TopK, query.Collection)

	if query.TopK <= 0 {
		return nil, fmt.Errorf("%w: top_k must be positive, got %d", domain.ErrInvalidInput, query.TopK)
	}

	lang := domain.ResolveLanguage(query.Language, query.Text)
	text := strings.TrimSpace(s.normalisers.Normalise(lang, query.Text))
	if text == "" {
		return nil, fmt.Errorf("%w: query is empty after normalisation", domain.ErrInvalidInput)
	}
	logger.Debug("Language: %s, normalised: %q", lang, text)

	filter := ""
	if query.Collection != "" {
		filter, _ = s.collections.Canonical(query.Collection)
		logger.Debug("Collection filter: %s", filter)
	}

	vector, err := s.embedQuery(ctx, text)
	if err != nil {
		return nil, err
	}

	kFetch := query.TopK * s.cfg.OverfetchFactor
	hits, err := s.index.Search(ctx, vector, kFetch)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrVectorIndexUnavailable, err)
	}
	logger.Debug("Index returned %d hits for k=%d", len(hits), kFetch)

	selected := s.selectCandidates(ctx, hits, query.TopK, filter)
	results := s.enrich(ctx, selected)

	logger.Info("Retrieved %d of %d requested results", len(results), query.TopK)
	return results, nil
}

// embedQuery embeds text under the configured timeout and returns a unit vector.
func (s *RetrievalService) embedQuery(ctx context.Context, text string) ([]float32, error) {
	embedCtx := ctx
	if s.cfg.EmbedTimeout > 0 {
		var cancel context.CancelFunc
		embedCtx, cancel = context.WithTimeout(ctx, s.cfg.EmbedTimeout)
		defer cancel()
	}

	vector, err := s.embedder.Embed(embedCtx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}
	if dim := s.index.Dimensions(); dim > 0 && len(vector) != dim {
		return nil, fmt.Errorf("%w: %w: model returned %d dimensions, index has %d",
			domain.ErrEmbeddingUnavailable, domain.ErrDimensionMismatch, len(vector), dim)
	}
	vector = append([]float32(nil), vector...)
	if !Normalise(vector) {
		return nil, fmt.Errorf("%w: model returned a zero vector", domain.ErrEmbeddingUnavailable)
	}
	return vector, nil
}

// selectCandidates walks hits in rank order and keeps the first chunk of
// each resolvable, hydratable document until topK are found.
func (s *RetrievalService) selectCandidates(
	ctx context.Context, hits []driven.VectorHit, topK int, filter string,
) []candidate {
	seen := make(map[string]struct{}, topK)
	selected := make([]candidate, 0, topK)

	for _, hit := range hits {
		if len(selected) == topK {
			break
		}
		if hit.Position < 0 {
			continue
		}

		ref, err := s.chunks.Resolve(hit.Position)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				logger.Warn("Resolve position %d: %v", hit.Position, err)
			} else {
				logger.Debug("Position %d is not mapped", hit.Position)
			}
			continue
		}

		if filter != "" && ref.CollectionID != filter {
			continue
		}

		if _, dup := seen[ref.DocumentID]; dup {
			continue
		}
		seen[ref.DocumentID] = struct{}{}

		doc, err := s.docs.GetDocument(ctx, ref.DocumentID)
		if err != nil {
			logger.Warn("Hydrate document %s (position %d): %v", ref.DocumentID, hit.Position, err)
			continue
		}

		selected = append(selected, candidate{doc: doc, ref: ref, score: hit.Score})
	}
	return selected
}

// enrich builds results and looks up chapter names concurrently.
// Lookup failures leave ChapterName nil.
func (s *RetrievalService) enrich(ctx context.Context, selected []candidate) []domain.Result {
	results := make([]domain.Result, len(selected))
	for i, c := range selected {
		results[i] = domain.Result{
			Document:        *c.doc,
			CollectionID:    s.collectionID(c),
			Score:           c.score,
			MatchedLanguage: c.ref.Language,
		}
	}

	if s.chapters == nil {
		return results
	}

	// Lookups never fail the group; the context only bounds them.
	var g errgroup.Group
	g.SetLimit(s.cfg.EnrichConcurrency)
	for i := range results {
		g.Go(func() error {
			results[i].ChapterName = s.chapterName(ctx, results[i].CollectionID, results[i].Document.ChapterID)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// collectionID prefers the canonical form of the stored title and falls
// back to the id recorded in the chunk map.
func (s *RetrievalService) collectionID(c candidate) string {
	if c.doc.CollectionTitle != "" {
		if id, known := s.collections.Canonical(c.doc.CollectionTitle); known || c.ref.CollectionID == "" {
			return id
		}
	}
	return c.ref.CollectionID
}

func (s *RetrievalService) chapterName(ctx context.Context, collectionID string, chapterID int) *string {
	if collectionID == "" {
		return nil
	}

	lookupCtx := ctx
	if s.cfg.EnrichTimeout > 0 {
		var cancel context.CancelFunc
		lookupCtx, cancel = context.WithTimeout(ctx, s.cfg.EnrichTimeout)
		defer cancel()
	}

	name, err := s.chapters.ChapterName(lookupCtx, collectionID, chapterID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("Chapter lookup %s/%d: %v", collectionID, chapterID, err)
		}
		return nil
	}
	return &name
}

// Health reports which resources are loaded.
func (s *RetrievalService) Health(ctx context.Context) domain.Health {
	h := domain.Health{
		Index:     s.index != nil,
		Mapping:   s.chunks != nil,
		Embedding: s.embedder != nil,
	}
	if s.index != nil {
		h.Vectors = s.index.Len()
	}
	if s.chunks != nil {
		h.Mappings = s.chunks.Len()
	}
	if s.docs != nil {
		h.Documents = s.docs.Count()
	}
	if s.chapters != nil {
		if err := s.chapters.Ping(ctx); err != nil {
			logger.Warn("Chapter store ping failed: %v", err)
		} else {
			h.Enrichment = true
		}
	}
	h.Status = h.ComputeStatus()
	return h
}

// Normalise scales v to unit length in place. It returns false for a zero
// or non-finite vector, which cannot be normalised.
func Normalise(v []float32) bool {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	norm := math.Sqrt(sum)
	if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		return false
	}
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}
	return true
}
