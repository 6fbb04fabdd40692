package mcp

import (
	"context"

	"github.com/custodia-labs/hadith-search/internal/core/domain"
	"github.com/custodia-labs/hadith-search/internal/core/ports/driving"
)

// mockRetrievalService is a mock implementation of driving.RetrievalService.
type mockRetrievalService struct {
	results   []domain.Result
	err       error
	health    domain.Health
	lastQuery domain.Query
}

func (m *mockRetrievalService) Retrieve(_ context.Context, query domain.Query) ([]domain.Result, error) {
	m.lastQuery = query
	return m.results, m.err
}

func (m *mockRetrievalService) Health(_ context.Context) domain.Health {
	return m.health
}

// mockCatalogueService is a mock implementation of driving.CatalogueService.
type mockCatalogueService struct {
	collections []domain.Collection
	err         error
}

func (m *mockCatalogueService) Collections(_ context.Context) ([]domain.Collection, error) {
	return m.collections, m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	details *driving.DocumentDetails
	err     error
	lastID  string
}

func (m *mockDocumentService) Get(_ context.Context, id string) (*domain.Document, error) {
	m.lastID = id
	if m.err != nil {
		return nil, m.err
	}
	return &m.details.Document, nil
}

func (m *mockDocumentService) GetDetails(_ context.Context, id string) (*driving.DocumentDetails, error) {
	m.lastID = id
	return m.details, m.err
}
