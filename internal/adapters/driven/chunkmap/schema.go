package chunkmap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"github.com/custodia-labs/hadith-search/internal/core/domain"
)

// decoder turns a mapping file into entries.
type decoder interface {
	schema() domain.MappingSchema
	decode(data []byte) ([]domain.ChunkRef, error)
}

// decoderFor selects the decoder for schema, sniffing the first entry for auto.
// Both schemas accept a JSON array or an object keyed by integer position.
func decoderFor(schema domain.MappingSchema, data []byte) (decoder, error) {
	switch schema {
	case domain.MappingSchemaRecord:
		return recordDecoder{}, nil
	case domain.MappingSchemaChunk:
		return chunkDecoder{}, nil
	case domain.MappingSchemaAuto, "":
		return sniff(data)
	default:
		return nil, fmt.Errorf("%w: mapping schema %q", domain.ErrUnsupportedType, schema)
	}
}

func sniff(data []byte) (decoder, error) {
	entries, _, err := decodeEntries[map[string]json.RawMessage](data)
	if err != nil {
		return nil, fmt.Errorf("decode mapping: %w", err)
	}
	if len(entries) == 0 {
		return recordDecoder{}, nil
	}
	first := entries[0]
	if hasAny(first, "original_index", "id") {
		return recordDecoder{}, nil
	}
	if hasAny(first, "position", "document_id") {
		return chunkDecoder{}, nil
	}
	return nil, fmt.Errorf("%w: cannot detect mapping schema", domain.ErrUnsupportedType)
}

func hasAny(entry map[string]json.RawMessage, keys ...string) bool {
	for _, k := range keys {
		if _, ok := entry[k]; ok {
			return true
		}
	}
	return false
}

// decodeEntries reads either a JSON array of entries or an object keyed by
// integer position. For the keyed form the entries come back in position
// order and keys holds each entry's position; for arrays keys is nil.
func decodeEntries[T any](data []byte) (entries []T, keys []int64, err error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, nil, err
		}
		return entries, nil, nil
	}

	var keyed map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &keyed); err != nil {
		return nil, nil, err
	}
	keys = make([]int64, 0, len(keyed))
	raw := make(map[int64]json.RawMessage, len(keyed))
	for k, v := range keyed {
		pos, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("key %q is not an integer position", k)
		}
		keys = append(keys, pos)
		raw[pos] = v
	}
	slices.Sort(keys)

	entries = make([]T, len(keys))
	for i, pos := range keys {
		if err := json.Unmarshal(raw[pos], &entries[i]); err != nil {
			return nil, nil, fmt.Errorf("entry %d: %w", pos, err)
		}
	}
	return entries, keys, nil
}

// position picks the entry's position from the object key or its own field.
func position(i int, keys []int64, field *int64, name string) (int64, error) {
	if keys == nil {
		if field == nil {
			return 0, fmt.Errorf("entry %d: missing %s", i, name)
		}
		return *field, nil
	}
	if field != nil && *field != keys[i] {
		return 0, fmt.Errorf("entry %d: %s %d disagrees with its key", keys[i], name, *field)
	}
	return keys[i], nil
}

// recordDecoder reads one entry per document language:
// {"original_index": 0, "id": 1, "language": "arabic", "collection": "bukhari"}.
type recordDecoder struct{}

type recordEntry struct {
	OriginalIndex *int64 `json:"original_index"`
	ID            flexID `json:"id"`
	Language      string `json:"language"`
	Collection    string `json:"collection"`
}

func (recordDecoder) schema() domain.MappingSchema { return domain.MappingSchemaRecord }

func (recordDecoder) decode(data []byte) ([]domain.ChunkRef, error) {
	raw, keys, err := decodeEntries[recordEntry](data)
	if err != nil {
		return nil, fmt.Errorf("decode record mapping: %w", err)
	}

	// Ordinals count a document's entries in file order, or position order
	// for the keyed form.
	seen := make(map[string]int)
	out := make([]domain.ChunkRef, 0, len(raw))
	for i, e := range raw {
		pos, err := position(i, keys, e.OriginalIndex, "original_index")
		if err != nil {
			return nil, err
		}
		lang, _ := domain.ParseLanguage(e.Language)
		out = append(out, domain.ChunkRef{
			Position:     pos,
			DocumentID:   string(e.ID),
			Ordinal:      seen[string(e.ID)],
			CollectionID: e.Collection,
			Language:     lang,
		})
		seen[string(e.ID)]++
	}
	return out, nil
}

// chunkDecoder reads one entry per chunk:
// {"position": 0, "document_id": "1", "chunk": 0, "collection": "bukhari", "language": "english"}.
type chunkDecoder struct{}

type chunkEntry struct {
	Position   *int64 `json:"position"`
	DocumentID flexID `json:"document_id"`
	Chunk      int    `json:"chunk"`
	Collection string `json:"collection"`
	Language   string `json:"language"`
}

func (chunkDecoder) schema() domain.MappingSchema { return domain.MappingSchemaChunk }

func (chunkDecoder) decode(data []byte) ([]domain.ChunkRef, error) {
	raw, keys, err := decodeEntries[chunkEntry](data)
	if err != nil {
		return nil, fmt.Errorf("decode chunk mapping: %w", err)
	}

	out := make([]domain.ChunkRef, 0, len(raw))
	for i, e := range raw {
		pos, err := position(i, keys, e.Position, "position")
		if err != nil {
			return nil, err
		}
		lang, _ := domain.ParseLanguage(e.Language)
		out = append(out, domain.ChunkRef{
			Position:     pos,
			DocumentID:   string(e.DocumentID),
			Ordinal:      e.Chunk,
			CollectionID: e.Collection,
			Language:     lang,
		})
	}
	return out, nil
}

// flexID accepts document ids written as JSON numbers or strings.
type flexID string

// UnmarshalJSON implements json.Unmarshaler.
func (f *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = ""
		return nil
	case len(data) > 0 && data[0] == '"':
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
