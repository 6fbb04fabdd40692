// Package vector groups the VectorIndex adapters:
//
//   - flat: exact inner-product search over a FAISS IndexFlatIP file
//   - hnsw: approximate search over an in-memory graph built from the flat file
//   - qdrant: search against a remote Qdrant collection
//
// All adapters expect unit-normalised vectors so that inner product equals
// cosine similarity.
package vector
