package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocument_TranslatedText(t *testing.T) {
	var nilDoc *Document
	assert.Empty(t, nilDoc.TranslatedText())

	doc := &Document{ID: "1", SourceText: "انما الاعمال بالنيات"}
	assert.Empty(t, doc.TranslatedText())

	doc.Translation = &Translation{Narrator: "Narrated Umar:", Text: "Actions are by intentions."}
	assert.Equal(t, "Actions are by intentions.", doc.TranslatedText())
}

func TestDocument_TextFor(t *testing.T) {
	doc := &Document{
		SourceText:  "انما الاعمال بالنيات",
		Translation: &Translation{Text: "Actions are by intentions."},
	}

	assert.Equal(t, "انما الاعمال بالنيات", doc.TextFor(LanguageArabic))
	assert.Equal(t, "Actions are by intentions.", doc.TextFor(LanguageEnglish))
	assert.Equal(t, "انما الاعمال بالنيات", doc.TextFor(""))
}
