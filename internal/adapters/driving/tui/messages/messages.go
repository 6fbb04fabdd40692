// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/hadith-search/internal/core/domain"
)

// SearchCompleted carries retrieval results back to the model.
// Query is echoed so stale responses can be recognised.
type SearchCompleted struct {
	Query   domain.Query
	Results []domain.Result
	Err     error
}

// HealthLoaded carries a health report.
type HealthLoaded struct {
	Health domain.Health
}

// CollectionsLoaded carries the collections available for filtering.
type CollectionsLoaded struct {
	Collections []domain.Collection
	Err         error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
