package services

import (
	"context"

	"github.com/custodia-labs/hadith-search/internal/core/domain"
	"github.com/custodia-labs/hadith-search/internal/core/ports/driven"
	"github.com/custodia-labs/hadith-search/internal/core/ports/driving"
	"github.com/custodia-labs/hadith-search/internal/logger"
)

// Ensure CatalogueService implements the interface.
var _ driving.CatalogueService = (*CatalogueService)(nil)

// CatalogueService lists collections from the chapter store, or from the
// alias table when the store is absent or fails.
type CatalogueService struct {
	collections driven.CollectionResolver
	chapters    driven.ChapterStore
}

// NewCatalogueService creates a catalogue service. chapters may be nil.
func NewCatalogueService(collections driven.CollectionResolver, chapters driven.ChapterStore) *CatalogueService {
	return &CatalogueService{collections: collections, chapters: chapters}
}

// Collections returns the known collections sorted by id.
func (s *CatalogueService) Collections(ctx context.Context) ([]domain.Collection, error) {
	if s.chapters != nil {
		collections, err := s.chapters.Collections(ctx)
		switch {
		case err != nil:
			logger.Warn("Listing collections from chapter store failed, using alias table: %v", err)
		case len(collections) > 0:
			return collections, nil
		}
	}
	return s.collections.Collections(), nil
}
