package qdrant

import (
	"context"
	"errors"
	"testing"

	qdrantpb "github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"github.com/custodia-labs/hadith-search/internal/core/domain"
	"github.com/custodia-labs/hadith-search/internal/core/ports/driven"
)

type mockPoints struct {
	resp    *qdrantpb.SearchResponse
	err     error
	lastReq *qdrantpb.SearchPoints
}

func (m *mockPoints) Search(_ context.Context, in *qdrantpb.SearchPoints, _ ...grpc.CallOption) (*qdrantpb.SearchResponse, error) {
	m.lastReq = in
	return m.resp, m.err
}

type mockCollections struct {
	size  uint64
	count uint64
	err   error
}

func (m *mockCollections) Get(_ context.Context, in *qdrantpb.GetCollectionInfoRequest, _ ...grpc.CallOption) (*qdrantpb.GetCollectionInfoResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	count := m.count
	return &qdrantpb.GetCollectionInfoResponse{
		Result: &qdrantpb.CollectionInfo{
			PointsCount: &count,
			Config: &qdrantpb.CollectionConfig{
				Params: &qdrantpb.CollectionParams{
					VectorsConfig: &qdrantpb.VectorsConfig{
						Config: &qdrantpb.VectorsConfig_Params{
							Params: &qdrantpb.VectorParams{Size: m.size, Distance: qdrantpb.Distance_Cosine},
						},
					},
				},
			},
		},
	}, nil
}

func scored(id uint64, score float32) *qdrantpb.ScoredPoint {
	return &qdrantpb.ScoredPoint{
		Id:    &qdrantpb.PointId{PointIdOptions: &qdrantpb.PointId_Num{Num: id}},
		Score: score,
	}
}

func TestNew(t *testing.T) {
	idx, err := New(context.Background(), &mockPoints{}, &mockCollections{size: 3, count: 42}, "hadiths")
	require.NoError(t, err)

	assert.Equal(t, 3, idx.Dimensions())
	assert.Equal(t, 42, idx.Len())
	assert.NoError(t, idx.Close())
}

func TestNew_Errors(t *testing.T) {
	_, err := New(context.Background(), &mockPoints{}, &mockCollections{size: 3}, "")
	assert.ErrorIs(t, err, domain.ErrVectorIndexUnavailable)

	_, err = New(context.Background(), &mockPoints{}, &mockCollections{err: errors.New("not found")}, "hadiths")
	assert.ErrorIs(t, err, domain.ErrVectorIndexUnavailable)

	_, err = New(context.Background(), &mockPoints{}, &mockCollections{size: 0}, "hadiths")
	assert.ErrorIs(t, err, domain.ErrVectorIndexUnavailable)
}

func TestSearch(t *testing.T) {
	points := &mockPoints{resp: &qdrantpb.SearchResponse{
		Result: []*qdrantpb.ScoredPoint{
			scored(7, 0.9),
			scored(2, 0.5),
			{Id: &qdrantpb.PointId{PointIdOptions: &qdrantpb.PointId_Uuid{Uuid: "not-a-position"}}, Score: 0.4},
		},
	}}
	idx, err := New(context.Background(), points, &mockCollections{size: 2, count: 10}, "hadiths")
	require.NoError(t, err)

	hits, err := idx.Search(context.Background(), []float32{1, 0}, 3)
	require.NoError(t, err)

	require.Len(t, hits, 3)
	assert.Equal(t, int64(7), hits[0].Position)
	assert.InDelta(t, 0.9, hits[0].Score, 1e-6)
	assert.Equal(t, int64(2), hits[1].Position)
	assert.Equal(t, driven.InvalidPosition, hits[2].Position)

	require.NotNil(t, points.lastReq)
	assert.Equal(t, "hadiths", points.lastReq.CollectionName)
	assert.Equal(t, uint64(3), points.lastReq.Limit)
	assert.Equal(t, []float32{1, 0}, points.lastReq.Vector)
}

func TestSearch_Errors(t *testing.T) {
	points := &mockPoints{err: errors.New("unavailable")}
	idx, err := New(context.Background(), points, &mockCollections{size: 2}, "hadiths")
	require.NoError(t, err)

	_, err = idx.Search(context.Background(), []float32{1, 0}, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = idx.Search(context.Background(), []float32{1}, 1)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)

	_, err = idx.Search(context.Background(), []float32{1, 0}, 1)
	assert.ErrorIs(t, err, domain.ErrVectorIndexUnavailable)
}
