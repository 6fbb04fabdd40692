// Package plaintext normalises Latin script text for matching.
package plaintext

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/hadith-search/internal/core/domain"
	"github.com/custodia-labs/hadith-search/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.TextNormaliser = (*Normaliser)(nil)

// Normaliser composes Unicode and collapses whitespace.
// Case is preserved.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Language returns domain.LanguageEnglish.
func (n *Normaliser) Language() domain.Language {
	return domain.LanguageEnglish
}

// Normalise returns the canonical form of text.
func (n *Normaliser) Normalise(text string) string {
	return Normalise(text)
}

// Normalise converts text to NFC and joins its words with single spaces.
func Normalise(text string) string {
	if text == "" {
		return ""
	}
	return strings.Join(strings.Fields(norm.NFC.String(text)), " ")
}
