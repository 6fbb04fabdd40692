package driven

import "github.com/custodia-labs/hadith-search/internal/core/domain"

// CollectionResolver turns free-form collection titles into canonical ids.
// The same resolver must back index building and query-time enrichment.
type CollectionResolver interface {
	// Canonical returns the canonical id for title.
	// Unknown titles degrade to their cleaned form and known is false.
	Canonical(title string) (id string, known bool)

	// IsCanonical reports whether id is one of the canonical ids.
	IsCanonical(id string) bool

	// IDs returns every canonical id, sorted.
	IDs() []string

	// Collections returns the collections described by the table, sorted by id.
	Collections() []domain.Collection
}
