package httpapi

import (
	"github.com/custodia-labs/hadith-search/internal/core/domain"
)

// searchRequest is the POST /search body.
type searchRequest struct {
	Query      string `json:"query"`
	Language   string `json:"language,omitempty"`
	TopK       *int   `json:"top_k,omitempty"`
	Collection string `json:"collection,omitempty"`
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	DocumentID     string  `json:"document_id"`
	Text           string  `json:"text,omitempty"`
	SourceText     string  `json:"source_text,omitempty"`
	TranslatedText string  `json:"translated_text,omitempty"`
	Narrator       string  `json:"narrator,omitempty"`
	CollectionID   string  `json:"collection_id"`
	ChapterID      int     `json:"chapter_id"`
	ChapterName    *string `json:"chapter_name,omitempty"`
	Language       string  `json:"language"`
	Score          float64 `json:"score"`
}

type healthResponse struct {
	Status     domain.HealthStatus `json:"status"`
	Index      bool                `json:"index"`
	Mapping    bool                `json:"mapping"`
	Embedding  bool                `json:"embedding"`
	Enrichment bool                `json:"enrichment"`
	Vectors    int                 `json:"vectors"`
	Mappings   int                 `json:"mappings"`
	Documents  int                 `json:"documents"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func toSearchResponse(results []domain.Result) searchResponse {
	out := searchResponse{Results: make([]searchResult, 0, len(results))}
	for i := range results {
		r := &results[i]
		item := searchResult{
			DocumentID:     r.Document.ID,
			Text:           r.DisplayText(),
			SourceText:     r.Document.SourceText,
			TranslatedText: r.Document.TranslatedText(),
			CollectionID:   r.CollectionID,
			ChapterID:      r.Document.ChapterID,
			ChapterName:    r.ChapterName,
			Language:       r.MatchedLanguage.String(),
			Score:          r.Score,
		}
		if r.Document.Translation != nil {
			item.Narrator = r.Document.Translation.Narrator
		}
		out.Results = append(out.Results, item)
	}
	return out
}

func toHealthResponse(h domain.Health) healthResponse {
	return healthResponse{
		Status:     h.Status,
		Index:      h.Index,
		Mapping:    h.Mapping,
		Embedding:  h.Embedding,
		Enrichment: h.Enrichment,
		Vectors:    h.Vectors,
		Mappings:   h.Mappings,
		Documents:  h.Documents,
	}
}
