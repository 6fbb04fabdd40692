package driven

import "github.com/custodia-labs/hadith-search/internal/core/domain"

// NormaliserRegistry selects the normaliser for a language.
type NormaliserRegistry interface {
	// Normalise applies the normaliser registered for lang.
	// Unknown languages fall back to the registry default.
	Normalise(lang domain.Language, text string) string

	// Register adds a normaliser, replacing any for the same language.
	Register(normaliser TextNormaliser)

	// Languages returns the registered languages.
	Languages() []domain.Language
}
