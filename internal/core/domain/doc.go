// Package domain defines the core business entities for hadith-search.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A hadith with its source text, translation and structure
//   - ChunkRef: The parent identity behind one vector index position
//   - Query: A free-text retrieval request
//   - Result: One distinct document surfaced for a query
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
