package domain

import "strings"

// Language identifies the script a text is written in.
type Language string

// Supported languages.
const (
	// LanguageArabic is the source language of the corpus.
	LanguageArabic Language = "arabic"

	// LanguageEnglish is the translation language.
	LanguageEnglish Language = "english"
)

// IsValid returns true if the language is recognised.
func (l Language) IsValid() bool {
	return l == LanguageArabic || l == LanguageEnglish
}

// String returns the string representation.
func (l Language) String() string {
	return string(l)
}

// ParseLanguage converts a user-supplied hint into a Language.
// It accepts full names and ISO 639-1 codes, case-insensitively.
// The second return value is false for empty or unknown hints.
func ParseLanguage(hint string) (Language, bool) {
	switch strings.ToLower(strings.TrimSpace(hint)) {
	case "arabic", "ar":
		return LanguageArabic, true
	case "english", "en":
		return LanguageEnglish, true
	default:
		return "", false
	}
}

// IsArabicRune reports whether r belongs to one of the Arabic Unicode blocks.
func IsArabicRune(r rune) bool {
	switch {
	case r >= 0x0600 && r <= 0x06FF: // Arabic
		return true
	case r >= 0x0750 && r <= 0x077F: // Arabic Supplement
		return true
	case r >= 0x08A0 && r <= 0x08FF: // Arabic Extended-A
		return true
	case r >= 0xFB50 && r <= 0xFDFF: // Presentation Forms-A
		return true
	case r >= 0xFE70 && r <= 0xFEFF: // Presentation Forms-B
		return true
	default:
		return false
	}
}

// DetectLanguage infers the language of text from its character ranges.
// Any Arabic rune makes the text Arabic.
func DetectLanguage(text string) Language {
	for _, r := range text {
		if IsArabicRune(r) {
			return LanguageArabic
		}
	}
	return LanguageEnglish
}

// ResolveLanguage returns the hinted language when it is valid and
// falls back to detection otherwise.
func ResolveLanguage(hint, text string) Language {
	if lang, ok := ParseLanguage(hint); ok {
		return lang
	}
	return DetectLanguage(text)
}
