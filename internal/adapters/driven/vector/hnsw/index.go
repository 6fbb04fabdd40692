// Package hnsw provides approximate nearest-neighbour search over an
// in-memory HNSW graph built from a flat index at startup.
package hnsw

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/coder/hnsw"

	"github.com/custodia-labs/hadith-search/internal/adapters/driven/vector/flat"
	"github.com/custodia-labs/hadith-search/internal/core/domain"
	"github.com/custodia-labs/hadith-search/internal/core/ports/driven"
	"github.com/custodia-labs/hadith-search/internal/logger"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Default graph parameters.
const (
	DefaultM        = 16
	DefaultEfSearch = 64
)

// Config holds graph parameters.
type Config struct {
	// M is the maximum number of neighbours per node.
	M int

	// EfSearch is the candidate list size during search.
	EfSearch int

	// MaxK is the largest k searches are expected to ask for. EfSearch is
	// raised to it at build time and never changed afterwards.
	MaxK int
}

// Index wraps a coder/hnsw graph keyed by index position.
// The graph is read-only after Build, so searches run concurrently; mu only
// guards Close.
type Index struct {
	mu    sync.RWMutex
	graph *hnsw.Graph[int64]
	dim   int
}

// Build inserts every vector of src into a new graph.
func Build(ctx context.Context, src *flat.Index, cfg Config) (*Index, error) {
	if cfg.M <= 0 {
		cfg.M = DefaultM
	}
	if cfg.EfSearch <= 0 {
		cfg.EfSearch = DefaultEfSearch
	}
	cfg.EfSearch = max(cfg.EfSearch, cfg.MaxK)

	g := hnsw.NewGraph[int64]()
	g.M = cfg.M
	g.EfSearch = cfg.EfSearch
	g.Distance = hnsw.CosineDistance

	n := src.Len()
	logger.Info("Building HNSW graph over %d vectors (M=%d, ef=%d)", n, cfg.M, cfg.EfSearch)

	for pos := int64(0); pos < int64(n); pos++ {
		if pos%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		vec, err := src.Vector(pos)
		if err != nil {
			return nil, fmt.Errorf("%w: read vector %d: %w", domain.ErrVectorIndexUnavailable, pos, err)
		}
		g.Add(hnsw.MakeNode(pos, vec))
	}

	return &Index{
		graph: g,
		dim:   src.Dimensions(),
	}, nil
}

// Search returns up to k approximate nearest neighbours. A k above the
// build-time EfSearch may return fewer hits.
// Scores are exact inner products of the returned vectors.
func (x *Index) Search(ctx context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be at least 1", domain.ErrInvalidInput)
	}
	if len(query) != x.dim {
		return nil, fmt.Errorf("%w: query has %d dimensions, index has %d",
			domain.ErrDimensionMismatch, len(query), x.dim)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	x.mu.RLock()
	if x.graph == nil {
		x.mu.RUnlock()
		return nil, domain.ErrVectorIndexUnavailable
	}
	if x.graph.Len() == 0 {
		x.mu.RUnlock()
		return nil, nil
	}
	nodes := x.graph.Search(query, k)
	x.mu.RUnlock()

	hits := make([]driven.VectorHit, 0, len(nodes))
	for _, node := range nodes {
		hits = append(hits, driven.VectorHit{
			Position: node.Key,
			Score:    flat.Dot(query, node.Value),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Position < hits[j].Position
	})
	return hits, nil
}

// Len returns the number of vectors in the graph.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	if x.graph == nil {
		return 0
	}
	return x.graph.Len()
}

// Dimensions returns the vector size.
func (x *Index) Dimensions() int {
	return x.dim
}

// Close drops the graph.
func (x *Index) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.graph = nil
	return nil
}
