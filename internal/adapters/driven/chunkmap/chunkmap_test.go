package chunkmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hadith-search/internal/core/domain"
)

func writeMapping(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index_mapping.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

const recordMapping = `[
  {"original_index": 0, "id": 1, "language": "arabic", "collection": "bukhari"},
  {"original_index": 1, "id": 1, "language": "english", "collection": "bukhari"},
  {"original_index": 2, "id": "7", "language": "arabic", "collection": "muslim"}
]`

const chunkMapping = `[
  {"position": 5, "document_id": "a", "chunk": 1, "collection": "malik", "language": "en"},
  {"position": 3, "document_id": "a", "chunk": 0, "collection": "malik"},
  {"position": 4, "document_id": 9, "chunk": 0, "collection": "nasai", "language": "ar"}
]`

func TestLoad_RecordSchema(t *testing.T) {
	for _, schema := range []domain.MappingSchema{domain.MappingSchemaRecord, domain.MappingSchemaAuto} {
		t.Run(string(schema), func(t *testing.T) {
			m, err := Load(writeMapping(t, recordMapping), schema)
			require.NoError(t, err)
			assert.Equal(t, 3, m.Len())

			ref, err := m.Resolve(1)
			require.NoError(t, err)
			assert.Equal(t, domain.ChunkRef{
				Position:     1,
				DocumentID:   "1",
				Ordinal:      1,
				CollectionID: "bukhari",
				Language:     domain.LanguageEnglish,
			}, ref)

			ref, err = m.Resolve(2)
			require.NoError(t, err)
			assert.Equal(t, "7", ref.DocumentID)
			assert.Equal(t, 0, ref.Ordinal)
			assert.Equal(t, domain.LanguageArabic, ref.Language)
		})
	}
}

func TestLoad_ChunkSchema(t *testing.T) {
	for _, schema := range []domain.MappingSchema{domain.MappingSchemaChunk, domain.MappingSchemaAuto} {
		t.Run(string(schema), func(t *testing.T) {
			m, err := Load(writeMapping(t, chunkMapping), schema)
			require.NoError(t, err)

			entries := m.Entries()
			require.Len(t, entries, 3)
			assert.Equal(t, []int64{3, 4, 5}, []int64{entries[0].Position, entries[1].Position, entries[2].Position})

			ref, err := m.Resolve(5)
			require.NoError(t, err)
			assert.Equal(t, "a", ref.DocumentID)
			assert.Equal(t, 1, ref.Ordinal)
			assert.Equal(t, domain.LanguageEnglish, ref.Language)

			ref, err = m.Resolve(3)
			require.NoError(t, err)
			assert.Equal(t, domain.Language(""), ref.Language)

			ref, err = m.Resolve(4)
			require.NoError(t, err)
			assert.Equal(t, "9", ref.DocumentID)
		})
	}
}

const keyedMapping = `{
  "10": {"id": 1, "language": "english", "collection": "bukhari"},
  "2":  {"id": 1, "language": "arabic", "collection": "bukhari"},
  "7":  {"original_index": 7, "id": "7", "language": "arabic", "collection": "muslim"}
}`

func TestLoad_KeyedByPosition(t *testing.T) {
	for _, schema := range []domain.MappingSchema{domain.MappingSchemaRecord, domain.MappingSchemaAuto} {
		t.Run(string(schema), func(t *testing.T) {
			m, err := Load(writeMapping(t, keyedMapping), schema)
			require.NoError(t, err)
			assert.Equal(t, 3, m.Len())

			ref, err := m.Resolve(2)
			require.NoError(t, err)
			assert.Equal(t, domain.ChunkRef{
				Position:     2,
				DocumentID:   "1",
				Ordinal:      0,
				CollectionID: "bukhari",
				Language:     domain.LanguageArabic,
			}, ref)

			ref, err = m.Resolve(10)
			require.NoError(t, err)
			assert.Equal(t, 1, ref.Ordinal)
			assert.Equal(t, domain.LanguageEnglish, ref.Language)

			ref, err = m.Resolve(7)
			require.NoError(t, err)
			assert.Equal(t, "7", ref.DocumentID)
		})
	}
}

func TestLoad_KeyedChunkSchema(t *testing.T) {
	m, err := Load(writeMapping(t, `{"4": {"document_id": "a", "chunk": 2, "collection": "malik"}}`), domain.MappingSchemaAuto)
	require.NoError(t, err)

	ref, err := m.Resolve(4)
	require.NoError(t, err)
	assert.Equal(t, "a", ref.DocumentID)
	assert.Equal(t, 2, ref.Ordinal)
}

func TestResolve_NotFound(t *testing.T) {
	m, err := Load(writeMapping(t, recordMapping), domain.MappingSchemaAuto)
	require.NoError(t, err)

	for _, pos := range []int64{-1, 3, 1 << 40} {
		_, err := m.Resolve(pos)
		assert.ErrorIs(t, err, domain.ErrNotFound, "position %d", pos)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		schema  domain.MappingSchema
	}{
		{name: "not json", content: "{", schema: domain.MappingSchemaAuto},
		{name: "unknown layout", content: `[{"foo": 1}]`, schema: domain.MappingSchemaAuto},
		{name: "unknown schema", content: recordMapping, schema: "csv"},
		{name: "duplicate position", content: `[
			{"original_index": 0, "id": 1}, {"original_index": 0, "id": 2}]`, schema: domain.MappingSchemaRecord},
		{name: "negative position", content: `[{"position": -2, "document_id": "a"}]`, schema: domain.MappingSchemaChunk},
		{name: "missing position", content: `[{"document_id": "a"}]`, schema: domain.MappingSchemaChunk},
		{name: "missing index", content: `[{"id": 1}]`, schema: domain.MappingSchemaRecord},
		{name: "missing document id", content: `[{"original_index": 0}]`, schema: domain.MappingSchemaRecord},
		{name: "bad id type", content: `[{"original_index": 0, "id": [1]}]`, schema: domain.MappingSchemaRecord},
		{name: "non-integer key", content: `{"first": {"id": 1}}`, schema: domain.MappingSchemaAuto},
		{name: "key disagrees with entry", content: `{"3": {"original_index": 4, "id": 1}}`, schema: domain.MappingSchemaRecord},
		{name: "negative key", content: `{"-1": {"document_id": "a"}}`, schema: domain.MappingSchemaChunk},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeMapping(t, tt.content), tt.schema)
			assert.ErrorIs(t, err, domain.ErrChunkMapUnavailable)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"), domain.MappingSchemaAuto)
	assert.ErrorIs(t, err, domain.ErrChunkMapUnavailable)
}

func TestLoad_EmptyArray(t *testing.T) {
	m, err := Load(writeMapping(t, "[]"), domain.MappingSchemaAuto)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())
}

func TestNew_Validation(t *testing.T) {
	_, err := New([]domain.ChunkRef{{Position: 0, DocumentID: "a"}, {Position: 0, DocumentID: "b"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	m, err := New([]domain.ChunkRef{{Position: 2, DocumentID: "a"}, {Position: 0, DocumentID: "b"}})
	require.NoError(t, err)
	assert.Equal(t, int64(0), m.Entries()[0].Position)
}
