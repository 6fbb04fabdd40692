package driven

import "github.com/custodia-labs/hadith-search/internal/core/domain"

// ChunkMap resolves vector index positions to their parent documents.
// It is built together with the index and is read-only at serve time.
type ChunkMap interface {
	// Resolve returns the chunk at position.
	// Returns domain.ErrNotFound for negative or unmapped positions.
	Resolve(position int64) (domain.ChunkRef, error)

	// Len returns the number of entries.
	Len() int

	// Entries returns every entry in position order.
	Entries() []domain.ChunkRef
}
