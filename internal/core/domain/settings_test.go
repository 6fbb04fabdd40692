package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAIProvider_IsValid tests recognised and unknown providers
func TestAIProvider_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		provider AIProvider
		expected bool
	}{
		{name: "ollama is valid", provider: AIProviderOllama, expected: true},
		{name: "openai is valid", provider: AIProviderOpenAI, expected: true},
		{name: "empty is invalid", provider: AIProvider(""), expected: false},
		{name: "anthropic is invalid", provider: AIProvider("anthropic"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.provider.IsValid())
		})
	}
}

func TestAIProvider_Traits(t *testing.T) {
	assert.True(t, AIProviderOpenAI.RequiresAPIKey())
	assert.False(t, AIProviderOllama.RequiresAPIKey())
	assert.True(t, AIProviderOllama.IsLocal())
	assert.False(t, AIProviderOpenAI.IsLocal())
	assert.Equal(t, "Ollama (local)", AIProviderOllama.Description())
	assert.Equal(t, unknownDescription, AIProvider("x").Description())
}

func TestEmbeddingSettings_IsConfigured(t *testing.T) {
	assert.False(t, EmbeddingSettings{}.IsConfigured())
	assert.True(t, EmbeddingSettings{Provider: AIProviderOllama}.IsConfigured())
	assert.False(t, EmbeddingSettings{Provider: AIProviderOpenAI}.IsConfigured())
	assert.True(t, EmbeddingSettings{Provider: AIProviderOpenAI, APIKey: "sk"}.IsConfigured())
}

func TestIndexBackend(t *testing.T) {
	assert.True(t, IndexBackendFlat.IsValid())
	assert.True(t, IndexBackendHNSW.IsValid())
	assert.True(t, IndexBackendQdrant.IsValid())
	assert.False(t, IndexBackend("faiss").IsValid())
	assert.True(t, IndexBackendQdrant.IsRemote())
	assert.False(t, IndexBackendHNSW.IsRemote())
}

func TestMappingSchema_IsValid(t *testing.T) {
	assert.True(t, MappingSchemaAuto.IsValid())
	assert.True(t, MappingSchemaRecord.IsValid())
	assert.True(t, MappingSchemaChunk.IsValid())
	assert.False(t, MappingSchema("csv").IsValid())
}

func TestDefaultAppSettings(t *testing.T) {
	settings := DefaultAppSettings()

	require.NoError(t, settings.Validate())
	assert.Equal(t, AIProviderOllama, settings.Embedding.Provider)
	assert.Equal(t, IndexBackendFlat, settings.Index.Backend)
	assert.Equal(t, MappingSchemaAuto, settings.Mapping.Schema)
	assert.Equal(t, MinOverfetchFactor, settings.Retrieval.OverfetchFactor)
	assert.Equal(t, DefaultTopK, settings.Retrieval.DefaultTopK)
	assert.False(t, settings.Enrichment.IsConfigured())
}

func TestAppSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppSettings)
		wantErr error
	}{
		{
			name:    "unknown provider",
			mutate:  func(s *AppSettings) { s.Embedding.Provider = "nope" },
			wantErr: ErrUnsupportedType,
		},
		{
			name:    "unknown backend",
			mutate:  func(s *AppSettings) { s.Index.Backend = "nope" },
			wantErr: ErrUnsupportedType,
		},
		{
			name:    "unknown schema",
			mutate:  func(s *AppSettings) { s.Mapping.Schema = "nope" },
			wantErr: ErrUnsupportedType,
		},
		{
			name:    "missing index path",
			mutate:  func(s *AppSettings) { s.Index.Path = "" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing mapping path",
			mutate:  func(s *AppSettings) { s.Mapping.Path = "" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing corpus path",
			mutate:  func(s *AppSettings) { s.Corpus.Path = "" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "zero default top k",
			mutate:  func(s *AppSettings) { s.Retrieval.DefaultTopK = 0 },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "zero batch size",
			mutate:  func(s *AppSettings) { s.Embedding.BatchSize = 0 },
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultAppSettings()
			tt.mutate(&settings)
			assert.ErrorIs(t, settings.Validate(), tt.wantErr)
		})
	}
}

func TestAppSettings_Validate_RemoteBackendNeedsNoPath(t *testing.T) {
	settings := DefaultAppSettings()
	settings.Index.Backend = IndexBackendQdrant
	settings.Index.Path = ""

	assert.NoError(t, settings.Validate())
}

func TestEmbeddingDimensions(t *testing.T) {
	dims := EmbeddingDimensions()
	assert.Equal(t, 768, dims["nomic-embed-text"])
	assert.Equal(t, 1536, dims["text-embedding-3-small"])
	assert.Zero(t, dims["unknown-model"])
}
