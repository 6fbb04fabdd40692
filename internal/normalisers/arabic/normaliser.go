// Package arabic normalises Arabic script text for matching.
package arabic

import (
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/custodia-labs/hadith-search/internal/core/domain"
	"github.com/custodia-labs/hadith-search/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.TextNormaliser = (*Normaliser)(nil)

const (
	tatweel         = '\u0640'
	superscriptAlef = '\u0670'
)

// Normaliser strips diacritics and elongation and folds letter variants.
type Normaliser struct{}

// New creates a new Arabic normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Language returns domain.LanguageArabic.
func (n *Normaliser) Language() domain.Language {
	return domain.LanguageArabic
}

// Normalise returns the canonical form of text.
func (n *Normaliser) Normalise(text string) string {
	return Normalise(text)
}

// Normalise applies the Arabic matching rules:
// drop harakat (U+064B..U+065F) and the superscript alef, fold hamzated
// alefs to bare alef, alef maqsura to ya, ta marbuta to ha, drop tatweel,
// then trim.
func Normalise(text string) string {
	if text == "" {
		return ""
	}

	// Transformers carry state, so the chain is built per call.
	t := transform.Chain(
		runes.Remove(runes.Predicate(isStripped)),
		runes.Map(fold),
	)
	out, _, err := transform.String(t, text)
	if err != nil {
		out = text
	}
	return strings.TrimSpace(out)
}

func isStripped(r rune) bool {
	return (r >= '\u064B' && r <= '\u065F') || r == superscriptAlef || r == tatweel
}

func fold(r rune) rune {
	switch r {
	case 'أ', 'إ', 'آ':
		return 'ا'
	case 'ى':
		return 'ي'
	case 'ة':
		return 'ه'
	default:
		return r
	}
}
