package driven

import (
	"context"

	"github.com/custodia-labs/hadith-search/internal/core/domain"
)

// ChapterStore supplies chapter names for result enrichment.
// It is optional and every failure is treated as a miss by callers.
type ChapterStore interface {
	// ChapterName returns the English chapter name.
	// Returns domain.ErrNotFound when the chapter is unknown.
	ChapterName(ctx context.Context, collectionID string, chapterID int) (string, error)

	// Collections lists the collections the store knows about.
	Collections(ctx context.Context) ([]domain.Collection, error)

	// Ping checks the store is readable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
