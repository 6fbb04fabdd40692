package driving

import (
	"context"

	"github.com/custodia-labs/hadith-search/internal/core/domain"
)

// RetrievalService provides semantic hadith retrieval to external actors.
type RetrievalService interface {
	// Retrieve returns up to query.TopK distinct documents ranked by their
	// best-matching chunk. Returns domain.ErrInvalidInput for a non-positive
	// TopK or a query that normalises to nothing.
	Retrieve(ctx context.Context, query domain.Query) ([]domain.Result, error)

	// Health reports whether the mandatory resources are loaded.
	Health(ctx context.Context) domain.Health
}

// CatalogueService lists the collections available for filtering.
type CatalogueService interface {
	// Collections returns known collections. Falls back to the alias table
	// when the chapter store is unavailable.
	Collections(ctx context.Context) ([]domain.Collection, error)
}
