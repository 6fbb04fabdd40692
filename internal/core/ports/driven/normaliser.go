package driven

import "github.com/custodia-labs/hadith-search/internal/core/domain"

// TextNormaliser maps raw text to its canonical matching form.
// Normalise must be deterministic, total and idempotent.
type TextNormaliser interface {
	// Language returns the language this normaliser handles.
	Language() domain.Language

	// Normalise returns the canonical form of text. Empty input yields "".
	Normalise(text string) string
}
