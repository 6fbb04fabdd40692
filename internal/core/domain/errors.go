package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown provider, backend or schema.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured
	// or could not produce a vector.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrVectorIndexUnavailable indicates the vector index could not be loaded or searched.
	ErrVectorIndexUnavailable = errors.New("vector index unavailable")

	// ErrChunkMapUnavailable indicates the chunk map could not be loaded.
	ErrChunkMapUnavailable = errors.New("chunk map unavailable")

	// ErrCorpusUnavailable indicates the document corpus could not be loaded.
	ErrCorpusUnavailable = errors.New("document corpus unavailable")

	// ErrEnrichmentUnavailable indicates the chapter store is not loaded.
	// Results are returned without chapter names.
	ErrEnrichmentUnavailable = errors.New("enrichment store unavailable")

	// ErrDimensionMismatch indicates a vector does not match the index dimension.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
