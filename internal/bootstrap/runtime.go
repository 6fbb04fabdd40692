// Package bootstrap loads the resources a retrieval service needs and wires
// them into the core services. A Runtime is built once at startup and is
// read-only afterwards.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/hadith-search/internal/adapters/driven/ai"
	"github.com/custodia-labs/hadith-search/internal/adapters/driven/chunkmap"
	"github.com/custodia-labs/hadith-search/internal/adapters/driven/collections"
	"github.com/custodia-labs/hadith-search/internal/adapters/driven/storage/cache"
	"github.com/custodia-labs/hadith-search/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/hadith-search/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/hadith-search/internal/adapters/driven/vector/flat"
	"github.com/custodia-labs/hadith-search/internal/adapters/driven/vector/hnsw"
	"github.com/custodia-labs/hadith-search/internal/adapters/driven/vector/qdrant"
	"github.com/custodia-labs/hadith-search/internal/core/domain"
	"github.com/custodia-labs/hadith-search/internal/core/ports/driven"
	"github.com/custodia-labs/hadith-search/internal/core/services"
	"github.com/custodia-labs/hadith-search/internal/logger"
	"github.com/custodia-labs/hadith-search/internal/normalisers"
)

// enrichOpenTimeout bounds opening and pinging the chapter store.
const enrichOpenTimeout = 5 * time.Second

// Runtime holds every loaded resource and the services built on them.
type Runtime struct {
	Settings domain.AppSettings

	Embedder    driven.EmbeddingService
	Index       driven.VectorIndex
	Chunks      driven.ChunkMap
	Docs        driven.DocumentStore
	Chapters    driven.ChapterStore // nil when enrichment is disabled
	Resolver    driven.CollectionResolver
	Normalisers driven.NormaliserRegistry

	Retrieval *services.RetrievalService
	Catalogue *services.CatalogueService
	Documents *services.DocumentService
	Audit     *services.AuditService
}

// Option customises Load.
type Option func(*options)

type options struct {
	embedder driven.EmbeddingService
	resolver driven.CollectionResolver
}

// WithEmbeddingService uses svc instead of creating one from settings.
// The service is still pinged before it is accepted.
func WithEmbeddingService(svc driven.EmbeddingService) Option {
	return func(o *options) { o.embedder = svc }
}

// WithCollectionResolver replaces the embedded alias table.
func WithCollectionResolver(r driven.CollectionResolver) Option {
	return func(o *options) { o.resolver = r }
}

// Load builds a Runtime. It fails when the embedding provider, the vector
// index, the chunk map or the corpus cannot be loaded. A chapter store that
// cannot be opened is logged and enrichment is disabled.
func Load(ctx context.Context, settings domain.AppSettings, opts ...Option) (_ *Runtime, err error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	rt := &Runtime{Settings: settings}
	defer func() {
		if err != nil {
			_ = rt.Close()
		}
	}()

	logger.Section("Loading resources")

	rt.Resolver = o.resolver
	if rt.Resolver == nil {
		resolver, rerr := collections.New()
		if rerr != nil {
			return nil, rerr
		}
		rt.Resolver = resolver
	}
	rt.Normalisers = normalisers.NewDefaultRegistry()

	if rt.Embedder, err = loadEmbedder(ctx, &settings.Embedding, o.embedder); err != nil {
		return nil, err
	}
	logger.Info("embedding: %s (%d dims)", rt.Embedder.ModelName(), rt.Embedder.Dimensions())

	maxFetch := settings.Retrieval.DefaultTopK * settings.Retrieval.OverfetchFactor
	if rt.Index, err = loadIndex(ctx, &settings.Index, maxFetch); err != nil {
		return nil, err
	}
	logger.Info("index: %s backend, %d vectors, %d dims", settings.Index.Backend, rt.Index.Len(), rt.Index.Dimensions())

	if dims := rt.Embedder.Dimensions(); dims > 0 && dims != rt.Index.Dimensions() {
		return nil, fmt.Errorf("%w: embedding model %s produces %d dims, index has %d",
			domain.ErrDimensionMismatch, rt.Embedder.ModelName(), dims, rt.Index.Dimensions())
	}

	chunks, err := chunkmap.Load(settings.Mapping.Path, settings.Mapping.Schema)
	if err != nil {
		return nil, err
	}
	rt.Chunks = chunks
	logger.Info("mapping: %d entries", chunks.Len())
	if chunks.Len() != rt.Index.Len() {
		logger.Warn("mapping has %d entries but index has %d vectors; unmapped positions will be skipped",
			chunks.Len(), rt.Index.Len())
	}

	docs, err := memory.LoadCorpus(ctx, settings.Corpus.Path)
	if err != nil {
		return nil, err
	}
	rt.Docs = docs
	logger.Info("corpus: %d documents", docs.Count())

	rt.Chapters = loadChapters(ctx, &settings.Enrichment)

	rt.Retrieval = services.NewRetrievalService(
		rt.Embedder, rt.Index, rt.Chunks, rt.Docs, rt.Normalisers, rt.Resolver,
		services.RetrievalConfig{
			OverfetchFactor:   settings.Retrieval.OverfetchFactor,
			EmbedTimeout:      settings.Retrieval.EmbedTimeout,
			EnrichTimeout:     settings.Enrichment.Timeout,
			EnrichConcurrency: services.DefaultEnrichConcurrency,
		},
	)
	if rt.Chapters != nil {
		rt.Retrieval.SetChapterStore(rt.Chapters)
	}
	rt.Catalogue = services.NewCatalogueService(rt.Resolver, rt.Chapters)
	rt.Documents = services.NewDocumentService(rt.Docs, rt.Resolver, rt.Chapters, settings.Enrichment.Timeout)
	rt.Audit = services.NewAuditService(rt.Index, rt.Chunks, rt.Docs, rt.Resolver)

	return rt, nil
}

// Close releases every loaded resource. It is safe on a partly loaded Runtime.
func (r *Runtime) Close() error {
	if r == nil {
		return nil
	}
	var errs []error
	if r.Chapters != nil {
		errs = append(errs, r.Chapters.Close())
	}
	if r.Index != nil {
		errs = append(errs, r.Index.Close())
	}
	if r.Embedder != nil {
		errs = append(errs, r.Embedder.Close())
	}
	return errors.Join(errs...)
}

func loadEmbedder(ctx context.Context, settings *domain.EmbeddingSettings, injected driven.EmbeddingService) (driven.EmbeddingService, error) {
	if injected == nil {
		return ai.CreateAndValidateEmbeddingService(ctx, settings)
	}
	if err := injected.Ping(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}
	return injected, nil
}

// loadIndex opens the configured backend. maxFetch is the candidate count a
// default query asks for; the HNSW search list is sized for it once.
func loadIndex(ctx context.Context, settings *domain.IndexSettings, maxFetch int) (driven.VectorIndex, error) {
	switch settings.Backend {
	case domain.IndexBackendFlat:
		idx, err := flat.ReadFile(settings.Path)
		if err != nil {
			return nil, err
		}
		return idx, nil
	case domain.IndexBackendHNSW:
		src, err := flat.ReadFile(settings.Path)
		if err != nil {
			return nil, err
		}
		logger.Debug("building hnsw graph over %d vectors", src.Len())
		idx, err := hnsw.Build(ctx, src, hnsw.Config{
			M:        settings.HNSWM,
			EfSearch: settings.HNSWEfSearch,
			MaxK:     maxFetch,
		})
		if err != nil {
			return nil, err
		}
		return idx, nil
	case domain.IndexBackendQdrant:
		idx, err := qdrant.Dial(ctx, settings.QdrantAddr, settings.QdrantCollection)
		if err != nil {
			return nil, err
		}
		return idx, nil
	default:
		return nil, fmt.Errorf("%w: index backend %q", domain.ErrUnsupportedType, settings.Backend)
	}
}

// loadChapters opens the optional chapter store. Any failure disables enrichment.
func loadChapters(ctx context.Context, settings *domain.EnrichmentSettings) driven.ChapterStore {
	if !settings.IsConfigured() {
		logger.Info("enrichment: disabled (no enrichment.path)")
		return nil
	}

	openCtx, cancel := context.WithTimeout(ctx, enrichOpenTimeout)
	defer cancel()

	store, err := sqlite.Open(openCtx, settings.Path)
	if err != nil {
		logger.Warn("enrichment disabled: %v", err)
		return nil
	}
	if err := store.Ping(openCtx); err != nil {
		logger.Warn("enrichment disabled: %v", err)
		_ = store.Close()
		return nil
	}
	if settings.CacheSize <= 0 {
		logger.Info("enrichment: %s", store.Path())
		return store
	}

	cached, err := cache.NewChapterStore(store, settings.CacheSize)
	if err != nil {
		logger.Warn("chapter cache disabled: %v", err)
		return store
	}
	logger.Info("enrichment: %s (cache %d)", store.Path(), settings.CacheSize)
	return cached
}
