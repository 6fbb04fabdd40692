package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/custodia-labs/hadith-search/internal/core/domain"
	"github.com/custodia-labs/hadith-search/internal/logger"
)

// corpusRecord is one hadith in hadiths.json.
type corpusRecord struct {
	ID        flexID         `json:"id"`
	Arabic    string         `json:"arabic"`
	English   *englishRecord `json:"english"`
	Title     string         `json:"title"`
	ChapterID int            `json:"chapterId"`
	BookID    int            `json:"bookId"`
}

type englishRecord struct {
	Narrator string `json:"narrator"`
	Text     string `json:"text"`
}

// flexID accepts ids written as JSON numbers or strings.
type flexID string

// UnmarshalJSON implements json.Unmarshaler.
func (f *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		*f = flexID(strconv.FormatInt(i, 10))
		return nil
	}
	*f = flexID(n.String())
	return nil
}

// LoadCorpus reads a hadiths.json corpus into a new store.
// Records without an id are skipped with a warning; a repeated id is an error.
func LoadCorpus(ctx context.Context, path string) (*DocumentStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCorpusUnavailable, err)
	}
	defer f.Close()

	var records []corpusRecord
	if err := json.NewDecoder(f).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", domain.ErrCorpusUnavailable, path, err)
	}

	store := NewDocumentStore()
	skipped := 0
	for i, rec := range records {
		if rec.ID == "" {
			skipped++
			continue
		}
		if store.Has(string(rec.ID)) {
			return nil, fmt.Errorf("%w: duplicate document id %q at record %d",
				domain.ErrCorpusUnavailable, rec.ID, i)
		}
		doc := rec.toDocument()
		if err := store.SaveDocument(ctx, &doc); err != nil {
			return nil, err
		}
	}

	if skipped > 0 {
		logger.Warn("corpus %s: skipped %d records without id", path, skipped)
	}
	logger.Info("Loaded %d documents from %s", store.Count(), path)
	return store, nil
}

func (r corpusRecord) toDocument() domain.Document {
	doc := domain.Document{
		ID:              string(r.ID),
		SourceText:      r.Arabic,
		ChapterID:       r.ChapterID,
		BookID:          r.BookID,
		CollectionTitle: r.Title,
	}
	if r.English != nil && (r.English.Text != "" || r.English.Narrator != "") {
		doc.Translation = &domain.Translation{
			Narrator: r.English.Narrator,
			Text:     r.English.Text,
		}
	}
	return doc
}
