package driven

import "context"

// InvalidPosition marks an empty slot in a search result.
// It must be filtered, never resolved.
const InvalidPosition int64 = -1

// VectorIndex provides semantic similarity search over unit-normalised chunk vectors.
// The index is read-only at query time.
type VectorIndex interface {
	// Search returns at most k hits ordered by descending inner product.
	// k must be at least 1.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Len returns the number of vectors in the index.
	Len() int

	// Dimensions returns the vector size.
	Dimensions() int

	// Close releases resources.
	Close() error
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// Position is the vector's slot in the index, or InvalidPosition.
	Position int64

	// Score is the inner product of the query and the stored vector, in [-1, 1].
	Score float64
}
