package mcp

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hadith-search/internal/core/domain"
)

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns search results", func(t *testing.T) {
		chapter := "Revelation"
		mockRetrieval := &mockRetrievalService{
			results: []domain.Result{
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
					Score:           0.95,
					MatchedLanguage: domain.LanguageEnglish,
				},
			},
		}

		server, err := NewServer(&Ports{Retrieval: mockRetrieval})
		require.NoError(t, err)

		input := SearchInput{Query: "intentions", Language: "en", TopK: 3, Collection: "bukhari"}
		_, output, err := server.handleSearch(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, domain.Query{Text: "intentions", Language: "en", TopK: 3, Collection: "bukhari"},
			mockRetrieval.lastQuery)
		assert.Equal(t, 1, output.Count)
		require.Len(t, output.Results, 1)
		assert.Equal(t, SearchResultOutput{
			DocumentID:     "1",
			Text:           "Actions are by intentions.",
			SourceText:     "انما الاعمال بالنيات",
			TranslatedText: "Actions are by intentions.",
			Narrator:       "Narrated Umar:",
			CollectionID:   "bukhari",
			ChapterID:      1,
			ChapterName:    "Revelation",
			Language:       "english",
			Score:          0.95,
		}, output.Results[0])
	})

	t.Run("default top_k", func(t *testing.T) {
		mockRetrieval := &mockRetrievalService{}
		server, err := NewServer(&Ports{Retrieval: mockRetrieval, DefaultTopK: 7})
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "prayer"})

		require.NoError(t, err)
		assert.Equal(t, 0, output.Count)
		assert.Equal(t, 7, mockRetrieval.lastQuery.TopK)
	})

	t.Run("returns error on retrieval failure", func(t *testing.T) {
		mockRetrieval := &mockRetrievalService{
			err: fmt.Errorf("%w: connection refused", domain.ErrEmbeddingUnavailable),
		}

		server, err := NewServer(&Ports{Retrieval: mockRetrieval})
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{Query: "test"})

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrEmbeddingUnavailable))
	})
}

func TestServer_handleHealth(t *testing.T) {
	health := domain.Health{
		Status: domain.HealthDegraded, Index: true, Mapping: true, Embedding: true,
		Vectors: 12, Mappings: 12, Documents: 6,
	}
	server, err := NewServer(&Ports{Retrieval: &mockRetrievalService{health: health}})
	require.NoError(t, err)

	_, output, err := server.handleHealth(context.Background(), nil, HealthInput{})
	require.NoError(t, err)
	assert.Equal(t, HealthOutput{
		Status: "degraded", Index: true, Mapping: true, Embedding: true,
		Vectors: 12, Mappings: 12, Documents: 6,
	}, output)
}
