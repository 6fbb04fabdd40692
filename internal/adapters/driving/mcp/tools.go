package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/hadith-search/internal/core/domain"
)

// SearchInput is the input schema for the search_hadith tool.
type SearchInput struct {
	Query      string `json:"query" jsonschema:"the question or phrase to search for, in Arabic or English"`
	Language   string `json:"language,omitempty" jsonschema:"query language: arabic or english (detected when omitted)"`
	TopK       int    `json:"top_k,omitempty" jsonschema:"maximum number of distinct hadiths to return"`
	Collection string `json:"collection,omitempty" jsonschema:"restrict results to one collection id, e.g. bukhari"`
}

// SearchOutput is the output schema for the search_hadith tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	DocumentID     string  `json:"document_id"`
	Text           string  `json:"text"`
	SourceText     string  `json:"source_text,omitempty"`
	TranslatedText string  `json:"translated_text,omitempty"`
	Narrator       string  `json:"narrator,omitempty"`
	CollectionID   string  `json:"collection_id"`
	ChapterID      int     `json:"chapter_id"`
	ChapterName    string  `json:"chapter_name,omitempty"`
	Language       string  `json:"language"`
	Score          float64 `json:"score"`
}

// HealthInput is the (empty) input schema for the health tool.
type HealthInput struct{}

// HealthOutput is the output schema for the health tool.
type HealthOutput struct {
	Status     string `json:"status"`
	Index      bool   `json:"index"`
	Mapping    bool   `json:"mapping"`
	Embedding  bool   `json:"embedding"`
	Enrichment bool   `json:"enrichment"`
	Vectors    int    `json:"vectors"`
	Mappings   int    `json:"mappings"`
	Documents  int    `json:"documents"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_hadith",
		Description: "Semantic search over the hadith corpus; returns distinct hadiths ranked by similarity",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "health",
		Description: "Report whether the index, mapping, embedding model and chapter store are loaded",
	}, s.handleHealth)
}

// handleSearch handles the search_hadith tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	topK := input.TopK
	if topK <= 0 {
		topK = s.ports.DefaultTopK
	}

	results, err := s.ports.Retrieval.Retrieve(ctx, domain.Query{
		Text:       input.Query,
		Language:   input.Language,
		TopK:       topK,
		Collection: input.Collection,
	})
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		r := &results[i]
		out := SearchResultOutput{
			DocumentID:     r.Document.ID,
			Text:           r.DisplayText(),
			SourceText:     r.Document.SourceText,
			TranslatedText: r.Document.TranslatedText(),
			CollectionID:   r.CollectionID,
			ChapterID:      r.Document.ChapterID,
			Language:       r.MatchedLanguage.String(),
			Score:          r.Score,
		}
		if r.Document.Translation != nil {
			out.Narrator = r.Document.Translation.Narrator
		}
		if r.ChapterName != nil {
			out.ChapterName = *r.ChapterName
		}
		output.Results[i] = out
	}

	return nil, output, nil
}

// handleHealth handles the health tool invocation.
func (s *Server) handleHealth(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ HealthInput,
) (*mcp.CallToolResult, HealthOutput, error) {
	h := s.ports.Retrieval.Health(ctx)
	return nil, HealthOutput{
		Status:     string(h.Status),
		Index:      h.Index,
		Mapping:    h.Mapping,
		Embedding:  h.Embedding,
		Enrichment: h.Enrichment,
		Vectors:    h.Vectors,
		Mappings:   h.Mappings,
		Documents:  h.Documents,
	}, nil
}
