// Package tui provides an interactive terminal interface for hadith search.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/hadith-search/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the TUI.
type Ports struct {
	// Retrieval answers queries and reports health. Required.
	Retrieval driving.RetrievalService

	// Catalogue lists collections for the filter. Optional.
	Catalogue driving.CatalogueService

	// DefaultTopK is the number of results per query.
	DefaultTopK int
}

// Validate ensures the required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	return nil
}
