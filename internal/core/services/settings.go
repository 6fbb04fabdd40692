package services

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/custodia-labs/hadith-search/internal/core/domain"
	"github.com/custodia-labs/hadith-search/internal/core/ports/driven"
	"github.com/custodia-labs/hadith-search/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyEmbedProvider  = "embedding.provider"
	keyEmbedModel     = "embedding.model"
	keyEmbedBaseURL   = "embedding.base_url"
	keyEmbedAPIKeyEnv = "embedding.api_key_env"
	keyEmbedDims      = "embedding.dimensions"
	keyEmbedBatchSize = "embedding.batch_size"
	keyEmbedTimeout   = "embedding.timeout"
	keyEmbedRPS       = "embedding.requests_per_second"

	keyIndexBackend     = "index.backend"
	keyIndexPath        = "index.path"
	keyQdrantAddr       = "index.qdrant_addr"
	keyQdrantCollection = "index.qdrant_collection"
	keyHNSWM            = "index.hnsw_m"
	keyHNSWEfSearch     = "index.hnsw_ef_search"

	keyMappingPath   = "mapping.path"
	keyMappingSchema = "mapping.schema"
	keyCorpusPath    = "corpus.path"

	keyEnrichPath      = "enrichment.path"
	keyEnrichTimeout   = "enrichment.timeout"
	keyEnrichCacheSize = "enrichment.cache_size"

	keyDefaultTopK     = "retrieval.default_top_k"
	keyOverfetchFactor = "retrieval.overfetch_factor"
	keyEmbedQTimeout   = "retrieval.embed_timeout"

	keyServerAddr         = "server.addr"
	keyServerReadTimeout  = "server.read_timeout"
	keyServerWriteTimeout = "server.write_timeout"
)

type keyKind int

const (
	kindString keyKind = iota
	kindInt
	kindFloat
	kindDuration
)

// knownKeys lists every settable key and how its value is parsed.
var knownKeys = map[string]keyKind{
	keyEmbedProvider:      kindString,
	keyEmbedModel:         kindString,
	keyEmbedBaseURL:       kindString,
	keyEmbedAPIKeyEnv:     kindString,
	keyEmbedDims:          kindInt,
	keyEmbedBatchSize:     kindInt,
	keyEmbedTimeout:       kindDuration,
	keyEmbedRPS:           kindFloat,
	keyIndexBackend:       kindString,
	keyIndexPath:          kindString,
	keyQdrantAddr:         kindString,
	keyQdrantCollection:   kindString,
	keyHNSWM:              kindInt,
	keyHNSWEfSearch:       kindInt,
	keyMappingPath:        kindString,
	keyMappingSchema:      kindString,
	keyCorpusPath:         kindString,
	keyEnrichPath:         kindString,
	keyEnrichTimeout:      kindDuration,
	keyEnrichCacheSize:    kindInt,
	keyDefaultTopK:        kindInt,
	keyOverfetchFactor:    kindInt,
	keyEmbedQTimeout:      kindDuration,
	keyServerAddr:         kindString,
	keyServerReadTimeout:  kindDuration,
	keyServerWriteTimeout: kindDuration,
}

// KnownSettingKeys returns every key accepted by Set, sorted.
func KnownSettingKeys() []string {
	keys := make([]string, 0, len(knownKeys))
	for k := range knownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		lookupEnv:   os.Getenv,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	provider := s.getProvider(defaults.Embedding.Provider)
	model := s.getString(keyEmbedModel, domain.DefaultEmbeddingModels()[provider])
	apiKeyEnv := s.getString(keyEmbedAPIKeyEnv, defaults.Embedding.APIKeyEnv)

	settings := &domain.AppSettings{
		Embedding: domain.EmbeddingSettings{
			Provider:          provider,
			Model:             model,
			BaseURL:           s.configStore.GetString(keyEmbedBaseURL), // Empty selects the adapter default
			APIKey:            s.lookupEnv(apiKeyEnv),
			APIKeyEnv:         apiKeyEnv,
			Dimensions:        s.configStore.GetInt(keyEmbedDims),
			BatchSize:         s.getInt(keyEmbedBatchSize, defaults.Embedding.BatchSize),
			Timeout:           s.getDuration(keyEmbedTimeout, defaults.Embedding.Timeout),
			RequestsPerSecond: s.getFloat(keyEmbedRPS, defaults.Embedding.RequestsPerSecond),
		},
		Index: domain.IndexSettings{
			Backend:          domain.IndexBackend(s.getString(keyIndexBackend, string(defaults.Index.Backend))),
			Path:             s.getString(keyIndexPath, defaults.Index.Path),
			QdrantAddr:       s.getString(keyQdrantAddr, defaults.Index.QdrantAddr),
			QdrantCollection: s.getString(keyQdrantCollection, defaults.Index.QdrantCollection),
			HNSWM:            s.getInt(keyHNSWM, defaults.Index.HNSWM),
			HNSWEfSearch:     s.getInt(keyHNSWEfSearch, defaults.Index.HNSWEfSearch),
		},
		Mapping: domain.MappingSettings{
			Path:   s.getString(keyMappingPath, defaults.Mapping.Path),
			Schema: domain.MappingSchema(s.getString(keyMappingSchema, string(defaults.Mapping.Schema))),
		},
		Corpus: domain.CorpusSettings{
			Path: s.getString(keyCorpusPath, defaults.Corpus.Path),
		},
		Enrichment: domain.EnrichmentSettings{
			Path:      s.configStore.GetString(keyEnrichPath), // Empty disables enrichment
			Timeout:   s.getDuration(keyEnrichTimeout, defaults.Enrichment.Timeout),
			CacheSize: s.getInt(keyEnrichCacheSize, defaults.Enrichment.CacheSize),
		},
		Retrieval: domain.RetrievalSettings{
			DefaultTopK:     s.getInt(keyDefaultTopK, defaults.Retrieval.DefaultTopK),
			OverfetchFactor: s.getInt(keyOverfetchFactor, defaults.Retrieval.OverfetchFactor),
			EmbedTimeout:    s.getDuration(keyEmbedQTimeout, defaults.Retrieval.EmbedTimeout),
		},
		Server: domain.ServerSettings{
			Addr:         s.getString(keyServerAddr, defaults.Server.Addr),
			ReadTimeout:  s.getDuration(keyServerReadTimeout, defaults.Server.ReadTimeout),
			WriteTimeout: s.getDuration(keyServerWriteTimeout, defaults.Server.WriteTimeout),
		},
	}

	if settings.Retrieval.OverfetchFactor < domain.MinOverfetchFactor {
		settings.Retrieval.OverfetchFactor = domain.MinOverfetchFactor
	}

	return settings, nil
}

// Set parses value according to key and persists it.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := knownKeys[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	var parsed any
	switch kind {
	case kindInt:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		parsed = n
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		parsed = f
	case kindDuration:
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("%w: %s must be a duration such as 500ms", domain.ErrInvalidInput, key)
		}
		parsed = value
	default:
		parsed = value
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Validate checks the current settings are sufficient to serve.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if err := settings.Validate(); err != nil {
		return err
	}

	if !settings.Embedding.IsConfigured() {
		return fmt.Errorf("%w: %s requires an API key in $%s",
			domain.ErrEmbeddingUnavailable, settings.Embedding.Provider, settings.Embedding.APIKeyEnv)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetDuration(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getProvider(defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(keyEmbedProvider)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
