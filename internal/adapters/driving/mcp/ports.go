package mcp

import (
	"github.com/custodia-labs/hadith-search/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Retrieval runs semantic search.
	Retrieval driving.RetrievalService

	// Catalogue lists collections. Optional.
	Catalogue driving.CatalogueService

	// Documents resolves single documents. Optional.
	Documents driving.DocumentService

	// DefaultTopK is used when a tool call does not set top_k.
	DefaultTopK int
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	return nil
}
