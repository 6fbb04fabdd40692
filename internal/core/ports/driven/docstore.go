package driven

import (
	"context"

	"github.com/custodia-labs/hadith-search/internal/core/domain"
)

// DocumentStore is the authoritative lookup from document ID to content.
type DocumentStore interface {
	// GetDocument retrieves a document by ID.
	// Returns domain.ErrNotFound if the ID is not in the corpus.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// Count returns the number of documents.
	Count() int
}
