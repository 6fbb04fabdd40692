// Package qdrant serves vector search from a remote Qdrant collection
// whose point ids are index positions.
package qdrant

import (
	"context"
	"fmt"

	qdrantpb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/custodia-labs/hadith-search/internal/core/domain"
	"github.com/custodia-labs/hadith-search/internal/core/ports/driven"
	"github.com/custodia-labs/hadith-search/internal/logger"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// PointsSearcher is the subset of the generated points client used here.
type PointsSearcher interface {
	Search(ctx context.Context, in *qdrantpb.SearchPoints, opts ...grpc.CallOption) (*qdrantpb.SearchResponse, error)
}

// CollectionInspector is the subset of the generated collections client used here.
type CollectionInspector interface {
	Get(ctx context.Context, in *qdrantpb.GetCollectionInfoRequest, opts ...grpc.CallOption) (*qdrantpb.GetCollectionInfoResponse, error)
}

// Index is a VectorIndex backed by a Qdrant collection.
type Index struct {
	points     PointsSearcher
	collection string
	dim        int
	count      int
	closer     func() error
}

// Dial connects to Qdrant over gRPC and inspects the collection.
func Dial(ctx context.Context, addr, collection string) (*Index, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("%w: connect to qdrant at %s: %w", domain.ErrVectorIndexUnavailable, addr, err)
	}

	idx, err := New(ctx, qdrantpb.NewPointsClient(conn), qdrantpb.NewCollectionsClient(conn), collection)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	idx.closer = conn.Close

	logger.Info("Connected to qdrant at %s (collection %s, %d points, %d dims)", addr, collection, idx.count, idx.dim)
	return idx, nil
}

// New builds an Index from existing clients and reads the collection's
// point count and vector size.
func New(ctx context.Context, points PointsSearcher, collections CollectionInspector, collection string) (*Index, error) {
	if collection == "" {
		return nil, fmt.Errorf("%w: qdrant collection name is required", domain.ErrVectorIndexUnavailable)
	}

	info, err := collections.Get(ctx, &qdrantpb.GetCollectionInfoRequest{CollectionName: collection})
	if err != nil {
		return nil, fmt.Errorf("%w: inspect collection %s: %w", domain.ErrVectorIndexUnavailable, collection, err)
	}

	result := info.GetResult()
	dim := int(result.GetConfig().GetParams().GetVectorsConfig().GetParams().GetSize())
	if dim <= 0 {
		return nil, fmt.Errorf("%w: collection %s has no single unnamed vector config",
			domain.ErrVectorIndexUnavailable, collection)
	}

	return &Index{
		points:     points,
		collection: collection,
		dim:        dim,
		count:      int(result.GetPointsCount()),
	}, nil
}

// Search returns up to k nearest points ordered by descending score.
func (x *Index) Search(ctx context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be at least 1", domain.ErrInvalidInput)
	}
	if len(query) != x.dim {
		return nil, fmt.Errorf("%w: query has %d dimensions, collection has %d",
			domain.ErrDimensionMismatch, len(query), x.dim)
	}

	resp, err := x.points.Search(ctx, &qdrantpb.SearchPoints{
		CollectionName: x.collection,
		Vector:         query,
		Limit:          uint64(k),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: search %s: %w", domain.ErrVectorIndexUnavailable, x.collection, err)
	}

	hits := make([]driven.VectorHit, 0, len(resp.GetResult()))
	for _, point := range resp.GetResult() {
		position := driven.InvalidPosition
		if id := point.GetId(); id != nil {
			if _, ok := id.GetPointIdOptions().(*qdrantpb.PointId_Num); ok {
				position = int64(id.GetNum())
			}
		}
		hits = append(hits, driven.VectorHit{
			Position: position,
			Score:    float64(point.GetScore()),
		})
	}
	return hits, nil
}

// Len returns the point count read when the index was opened.
func (x *Index) Len() int {
	return x.count
}

// Dimensions returns the collection's vector size.
func (x *Index) Dimensions() int {
	return x.dim
}

// Close releases the gRPC connection when the index owns one.
func (x *Index) Close() error {
	if x.closer == nil {
		return nil
	}
	err := x.closer()
	x.closer = nil
	return err
}
