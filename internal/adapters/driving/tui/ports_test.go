package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/hadith-search/internal/core/domain"
)

// MockRetrievalService implements driving.RetrievalService for testing.
type MockRetrievalService struct {
	RetrieveFunc func(ctx context.Context, query domain.Query) ([]domain.Result, error)
	HealthValue  domain.Health
}

func (m *MockRetrievalService) Retrieve(ctx context.Context, query domain.Query) ([]domain.Result, error) {
	if m.RetrieveFunc != nil {
		return m.RetrieveFunc(ctx, query)
	}
	return nil, nil
}

func (m *MockRetrievalService) Health(_ context.Context) domain.Health {
	return m.HealthValue
}

// MockCatalogueService implements driving.CatalogueService for testing.
type MockCatalogueService struct {
	Items []domain.Collection
}

func (m *MockCatalogueService) Collections(_ context.Context) ([]domain.Collection, error) {
	return m.Items, nil
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ports   *Ports
		wantErr error
	}{
		{name: "nil ports", ports: nil, wantErr: ErrInvalidPorts},
		{name: "missing retrieval", ports: &Ports{Catalogue: &MockCatalogueService{}}, wantErr: ErrMissingRetrievalService},
		{name: "retrieval only", ports: &Ports{Retrieval: &MockRetrievalService{}}},
		{name: "all ports", ports: &Ports{Retrieval: &MockRetrievalService{}, Catalogue: &MockCatalogueService{}, DefaultTopK: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
