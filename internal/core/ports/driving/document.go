package driving

import (
	"context"

	"github.com/custodia-labs/hadith-search/internal/core/domain"
)

// DocumentService looks up single documents from the corpus.
type DocumentService interface {
	// Get retrieves a document by ID.
	// Returns domain.ErrNotFound if the ID is not in the corpus.
	Get(ctx context.Context, documentID string) (*domain.Document, error)

	// GetDetails returns the document with its canonical collection id and,
	// when enrichment is available, its chapter name.
	GetDetails(ctx context.Context, documentID string) (*DocumentDetails, error)
}

// DocumentDetails is a document resolved for display.
type DocumentDetails struct {
	// Document is the corpus record.
	Document domain.Document

	// CollectionID is the canonical collection id.
	CollectionID string

	// ChapterName is nil unless enrichment succeeded.
	ChapterName *string
}
