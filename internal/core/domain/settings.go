package domain

import (
	"fmt"
	"time"
)

const unknownDescription = "Unknown"

// AIProvider identifies an embedding service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI API or any compatible endpoint.
	AIProviderOpenAI AIProvider = "openai"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (remote)"
	default:
		return unknownDescription
	}
}

// IndexBackend selects the vector index implementation.
type IndexBackend string

// Available index backends.
const (
	// IndexBackendFlat is exact inner-product search over a FAISS flat index file.
	IndexBackendFlat IndexBackend = "flat"

	// IndexBackendHNSW is approximate search over an in-memory graph built from the flat file.
	IndexBackendHNSW IndexBackend = "hnsw"

	// IndexBackendQdrant is a remote Qdrant collection.
	IndexBackendQdrant IndexBackend = "qdrant"
)

// IsValid returns true if the backend is recognised.
func (b IndexBackend) IsValid() bool {
	switch b {
	case IndexBackendFlat, IndexBackendHNSW, IndexBackendQdrant:
		return true
	default:
		return false
	}
}

// IsRemote returns true if the backend does not read a local index file.
func (b IndexBackend) IsRemote() bool {
	return b == IndexBackendQdrant
}

// MappingSchema selects the chunk map file layout.
type MappingSchema string

// Available mapping schemas.
const (
	// MappingSchemaAuto inspects the first entry to pick a schema.
	MappingSchemaAuto MappingSchema = "auto"

	// MappingSchemaRecord is one entry per document language:
	// {"original_index", "id", "language", "collection"}.
	MappingSchemaRecord MappingSchema = "record"

	// MappingSchemaChunk is one entry per chunk:
	// {"position", "document_id", "chunk", "collection", "language"}.
	MappingSchemaChunk MappingSchema = "chunk"
)

// IsValid returns true if the schema is recognised.
func (s MappingSchema) IsValid() bool {
	switch s {
	case MappingSchemaAuto, MappingSchemaRecord, MappingSchemaChunk:
		return true
	default:
		return false
	}
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint.
	BaseURL string

	// APIKey is the API key (for OpenAI). Never read from the config file.
	APIKey string

	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv string

	// Dimensions overrides the model's known dimension. Zero means use the known value.
	Dimensions int

	// BatchSize is the maximum number of texts per provider call.
	BatchSize int

	// Timeout bounds a single provider call.
	Timeout time.Duration

	// RequestsPerSecond throttles remote calls. Zero disables throttling.
	RequestsPerSecond float64
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// IndexSettings holds vector index configuration.
type IndexSettings struct {
	// Backend is the index implementation.
	Backend IndexBackend

	// Path is the FAISS flat index file (flat and hnsw backends).
	Path string

	// QdrantAddr is the Qdrant gRPC address (qdrant backend).
	QdrantAddr string

	// QdrantCollection is the Qdrant collection name (qdrant backend).
	QdrantCollection string

	// HNSWM is the maximum number of neighbours per graph node.
	HNSWM int

	// HNSWEfSearch is the candidate list size during search.
	HNSWEfSearch int
}

// MappingSettings holds chunk map configuration.
type MappingSettings struct {
	Path   string
	Schema MappingSchema
}

// CorpusSettings holds document corpus configuration.
type CorpusSettings struct {
	Path string
}

// EnrichmentSettings holds chapter store configuration.
type EnrichmentSettings struct {
	// Path is the SQLite database. Empty disables enrichment.
	Path string

	// Timeout bounds a single chapter lookup.
	Timeout time.Duration

	// CacheSize is the number of chapter names kept in memory. Zero disables caching.
	CacheSize int
}

// IsConfigured returns true if a chapter store path is set.
func (e EnrichmentSettings) IsConfigured() bool {
	return e.Path != ""
}

// RetrievalSettings holds orchestrator tuning.
type RetrievalSettings struct {
	// DefaultTopK is used when a query does not set TopK.
	DefaultTopK int

	// OverfetchFactor multiplies TopK to size the candidate fetch. Minimum 3.
	OverfetchFactor int

	// EmbedTimeout bounds the query embedding call.
	EmbedTimeout time.Duration
}

// ServerSettings holds HTTP server configuration.
type ServerSettings struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// AppSettings holds all application settings.
type AppSettings struct {
	Embedding  EmbeddingSettings
	Index      IndexSettings
	Mapping    MappingSettings
	Corpus     CorpusSettings
	Enrichment EnrichmentSettings
	Retrieval  RetrievalSettings
	Server     ServerSettings
}

// MinOverfetchFactor is the smallest allowed over-fetch multiplier.
const MinOverfetchFactor = 3

// DefaultAppSettings returns settings with sensible defaults.
// Paths point at the files the offline index builder writes.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Embedding: EmbeddingSettings{
			Provider:          AIProviderOllama,
			Model:             DefaultEmbeddingModels()[AIProviderOllama],
			APIKeyEnv:         "OPENAI_API_KEY",
			BatchSize:         64,
			Timeout:           30 * time.Second,
			RequestsPerSecond: 0,
		},
		Index: IndexSettings{
			Backend:          IndexBackendFlat,
			Path:             "hadith_index.faiss",
			QdrantAddr:       "localhost:6334",
			QdrantCollection: "hadiths",
			HNSWM:            16,
			HNSWEfSearch:     64,
		},
		Mapping: MappingSettings{
			Path:   "index_mapping.json",
			Schema: MappingSchemaAuto,
		},
		Corpus: CorpusSettings{
			Path: "hadiths.json",
		},
		Enrichment: EnrichmentSettings{
			Path:      "",
			Timeout:   500 * time.Millisecond,
			CacheSize: 1024,
		},
		Retrieval: RetrievalSettings{
			DefaultTopK:     DefaultTopK,
			OverfetchFactor: MinOverfetchFactor,
			EmbedTimeout:    10 * time.Second,
		},
		Server: ServerSettings{
			Addr:         ":8000",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}
}

// Validate checks the settings needed to start serving.
func (s AppSettings) Validate() error {
	if !s.Embedding.Provider.IsValid() {
		return fmt.Errorf("%w: embedding provider %q", ErrUnsupportedType, s.Embedding.Provider)
	}
	if !s.Index.Backend.IsValid() {
		return fmt.Errorf("%w: index backend %q", ErrUnsupportedType, s.Index.Backend)
	}
	if !s.Mapping.Schema.IsValid() {
		return fmt.Errorf("%w: mapping schema %q", ErrUnsupportedType, s.Mapping.Schema)
	}
	if !s.Index.Backend.IsRemote() && s.Index.Path == "" {
		return fmt.Errorf("%w: index.path is required for the %s backend", ErrInvalidInput, s.Index.Backend)
	}
	if s.Mapping.Path == "" {
		return fmt.Errorf("%w: mapping.path is required", ErrInvalidInput)
	}
	if s.Corpus.Path == "" {
		return fmt.Errorf("%w: corpus.path is required", ErrInvalidInput)
	}
	if s.Retrieval.DefaultTopK <= 0 {
		return fmt.Errorf("%w: retrieval.default_top_k must be positive", ErrInvalidInput)
	}
	if s.Embedding.BatchSize <= 0 {
		return fmt.Errorf("%w: embedding.batch_size must be positive", ErrInvalidInput)
	}
	return nil
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "nomic-embed-text",
		AIProviderOpenAI: "text-embedding-3-small",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Ollama models
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		"all-minilm":        384,
		"bge-m3":            1024,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
		// Sentence-transformers checkpoints served behind an OpenAI-compatible endpoint
		"LaBSE": 768,
	}
}
