// Package chunkmap loads the position-to-document map written next to the
// vector index and resolves search hits to their parent documents.
package chunkmap

import (
	"fmt"
	"os"
	"sort"

	"github.com/custodia-labs/hadith-search/internal/core/domain"
	"github.com/custodia-labs/hadith-search/internal/core/ports/driven"
	"github.com/custodia-labs/hadith-search/internal/logger"
)

// Ensure Map implements the interface.
var _ driven.ChunkMap = (*Map)(nil)

// Map is an immutable position-to-chunk lookup.
type Map struct {
	byPosition map[int64]domain.ChunkRef
	ordered    []domain.ChunkRef
}

// New builds a map from entries. Positions must be non-negative and unique.
func New(entries []domain.ChunkRef) (*Map, error) {
	m := &Map{
		byPosition: make(map[int64]domain.ChunkRef, len(entries)),
		ordered:    make([]domain.ChunkRef, 0, len(entries)),
	}

	for _, e := range entries {
		if e.Position < 0 {
			return nil, fmt.Errorf("%w: negative position %d", domain.ErrInvalidInput, e.Position)
		}
		if e.DocumentID == "" {
			return nil, fmt.Errorf("%w: position %d has no document id", domain.ErrInvalidInput, e.Position)
		}
		if _, dup := m.byPosition[e.Position]; dup {
			return nil, fmt.Errorf("%w: position %d assigned twice", domain.ErrInvalidInput, e.Position)
		}
		m.byPosition[e.Position] = e
		m.ordered = append(m.ordered, e)
	}

	sort.Slice(m.ordered, func(i, j int) bool { return m.ordered[i].Position < m.ordered[j].Position })
	return m, nil
}

// Load reads a mapping file written in the given schema.
// MappingSchemaAuto picks the schema from the first entry.
func Load(path string, schema domain.MappingSchema) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrChunkMapUnavailable, err)
	}

	dec, err := decoderFor(schema, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrChunkMapUnavailable, path, err)
	}

	entries, err := dec.decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrChunkMapUnavailable, path, err)
	}

	m, err := New(entries)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrChunkMapUnavailable, path, err)
	}

	logger.Info("Loaded %d map entries from %s (%s schema)", m.Len(), path, dec.schema())
	return m, nil
}

// Resolve returns the chunk at position.
func (m *Map) Resolve(position int64) (domain.ChunkRef, error) {
	if position < 0 {
		return domain.ChunkRef{}, domain.ErrNotFound
	}
	ref, ok := m.byPosition[position]
	if !ok {
		return domain.ChunkRef{}, domain.ErrNotFound
	}
	return ref, nil
}

// Len returns the number of entries.
func (m *Map) Len() int {
	return len(m.ordered)
}

// Entries returns every entry in position order. The slice must not be modified.
func (m *Map) Entries() []domain.ChunkRef {
	return m.ordered
}
