package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/hadith-search/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for hadith-search resources.
	uriScheme = "hadith://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing collections.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "collections",
		Name:        "collections",
		Description: "Hadith collections available for filtering",
		MIMEType:    "application/json",
	}, s.handleCollectionsResource)

	// Template for a single hadith.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}",
		Name:        "hadith",
		Description: "A single hadith with its collection and chapter",
		MIMEType:    "application/json",
	}, s.handleDocumentResource)
}

// handleCollectionsResource returns the collection catalogue.
func (s *Server) handleCollectionsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Catalogue == nil {
		return jsonResult(req.Params.URI, []struct{}{})
	}

	collections, err := s.ports.Catalogue.Collections(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}

	type collectionInfo struct {
		ID     string `json:"id"`
		Name   string `json:"name,omitempty"`
		Author string `json:"author,omitempty"`
	}

	infos := make([]collectionInfo, len(collections))
	for i, c := range collections {
		infos[i] = collectionInfo{ID: c.ID, Name: c.Name, Author: c.Author}
	}

	return jsonResult(req.Params.URI, infos)
}

// handleDocumentResource returns one hadith.
func (s *Server) handleDocumentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Documents == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract documentId from URI: hadith://documents/{documentId}
	docID := extractDocumentID(req.Params.URI)
	if docID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	details, err := s.ports.Documents.GetDetails(ctx, docID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting document: %w", err)
	}

	type documentInfo struct {
		ID             string `json:"id"`
		SourceText     string `json:"source_text"`
		TranslatedText string `json:"translated_text,omitempty"`
		Narrator       string `json:"narrator,omitempty"`
		CollectionID   string `json:"collection_id"`
		BookID         int    `json:"book_id"`
		ChapterID      int    `json:"chapter_id"`
		ChapterName    string `json:"chapter_name,omitempty"`
	}

	doc := &details.Document
	info := documentInfo{
		ID:             doc.ID,
		SourceText:     doc.SourceText,
		TranslatedText: doc.TranslatedText(),
		CollectionID:   details.CollectionID,
		BookID:         doc.BookID,
		ChapterID:      doc.ChapterID,
	}
	if doc.Translation != nil {
		info.Narrator = doc.Translation.Narrator
	}
	if details.ChapterName != nil {
		info.ChapterName = *details.ChapterName
	}

	return jsonResult(req.Params.URI, info)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractDocumentID extracts the document ID from a URI like hadith://documents/{documentId}.
func extractDocumentID(uri string) string {
	const prefix = uriScheme + "documents/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
