package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/hadith-search/internal/core/domain"
	"github.com/custodia-labs/hadith-search/internal/core/ports/driven"
	"github.com/custodia-labs/hadith-search/internal/core/ports/driving"
	"github.com/custodia-labs/hadith-search/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService resolves single documents for display.
type DocumentService struct {
	docs          driven.DocumentStore
	collections   driven.CollectionResolver
	chapters      driven.ChapterStore
	enrichTimeout time.Duration
}

// NewDocumentService creates a document service. chapters may be nil.
func NewDocumentService(
	docs driven.DocumentStore,
	collections driven.CollectionResolver,
	chapters driven.ChapterStore,
	enrichTimeout time.Duration,
) *DocumentService {
	return &DocumentService{
		docs:          docs,
		collections:   collections,
		chapters:      chapters,
		enrichTimeout: enrichTimeout,
	}
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, documentID string) (*domain.Document, error) {
	id := strings.TrimSpace(documentID)
	if id == "" {
		return nil, fmt.Errorf("%w: document id is required", domain.ErrInvalidInput)
	}
	return s.docs.GetDocument(ctx, id)
}

// GetDetails returns the document with its collection id and chapter name.
func (s *DocumentService) GetDetails(ctx context.Context, documentID string) (*driving.DocumentDetails, error) {
	doc, err := s.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}

	details := &driving.DocumentDetails{Document: *doc}
	details.CollectionID, _ = s.collections.Canonical(doc.CollectionTitle)

	if s.chapters == nil || details.CollectionID == "" {
		return details, nil
	}

	lookupCtx := ctx
	if s.enrichTimeout > 0 {
		var cancel context.CancelFunc
		lookupCtx, cancel = context.WithTimeout(ctx, s.enrichTimeout)
		defer cancel()
	}
	name, err := s.chapters.ChapterName(lookupCtx, details.CollectionID, doc.ChapterID)
	if err != nil {
		logger.Debug("No chapter name for %s/%d: %v", details.CollectionID, doc.ChapterID, err)
		return details, nil
	}
	details.ChapterName = &name
	return details, nil
}
