package domain

// Document is a single hadith as stored in the corpus.
// Documents are loaded once and never mutated during serving.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// SourceText is the text in the source language (Arabic).
	SourceText string

	// Translation is the English rendering, nil when the corpus has none.
	Translation *Translation

	// ChapterID is the chapter within the collection.
	ChapterID int

	// BookID is the book within the collection.
	BookID int

	// CollectionTitle is the free-form collection name supplied by the data source.
	// Use a CollectionResolver to turn it into a canonical collection id.
	CollectionTitle string
}

// Translation is the translated text of a document.
type Translation struct {
	// Narrator is the chain attribution, e.g. "Narrated Abu Huraira:".
	Narrator string

	// Text is the translated body.
	Text string
}

// TranslatedText returns the translation body or "" if there is none.
func (d *Document) TranslatedText() string {
	if d == nil || d.Translation == nil {
		return ""
	}
	return d.Translation.Text
}

// TextFor returns the text that was embedded for the given language.
func (d *Document) TextFor(lang Language) string {
	if d == nil {
		return ""
	}
	if lang == LanguageEnglish {
		return d.TranslatedText()
	}
	return d.SourceText
}

// ChunkRef identifies the parent of one vector in the index.
// Several chunks may share a DocumentID. Positions are permanent once assigned.
type ChunkRef struct {
	// Position is the vector's slot in the index.
	Position int64

	// DocumentID is the parent document.
	DocumentID string

	// Ordinal is the chunk's position within the parent document.
	Ordinal int

	// CollectionID is the canonical collection id recorded at build time.
	CollectionID string

	// Language is the language of the embedded chunk text.
	Language Language
}

// Collection describes one hadith collection in the relational store.
type Collection struct {
	// ID is the canonical collection id, e.g. "bukhari".
	ID string

	// Name is the display name.
	Name string

	// Author is the compiler of the collection.
	Author string
}
