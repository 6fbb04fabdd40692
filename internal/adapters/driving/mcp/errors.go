// Package mcp provides an MCP (Model Context Protocol) server adapter for hadith-search.
// It lets AI assistants run semantic hadith retrieval and read the collection catalogue.
package mcp

import "errors"

// ErrMissingRetrievalService is returned when the retrieval service is not provided.
var ErrMissingRetrievalService = errors.New("mcp: retrieval service is required")
