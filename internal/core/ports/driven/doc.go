// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the service to start:
//
//   - EmbeddingService: Turns query text into a vector (Ollama or OpenAI)
//   - VectorIndex: Inner-product search over chunk vectors (flat, HNSW, Qdrant)
//   - ChunkMap: Resolves an index position to its parent document
//   - DocumentStore: Hydrates documents by ID
//   - NormaliserRegistry: Canonicalises query text per language
//   - CollectionResolver: Maps collection titles to canonical ids
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the service degrades gracefully:
//
//   - ChapterStore: Chapter names for result enrichment. Without it,
//     results carry no chapter name.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
