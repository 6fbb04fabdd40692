package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	store.lookup = func(string) (string, bool) { return "", false }
	return store
}

func TestNewConfigStore_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	store, err := NewConfigStore(path)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, path, store.Path())
	assert.Empty(t, store.Keys())
}

func TestNewConfigStore_DefaultPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	store, err := NewConfigStore("")
	if err != nil {
		t.Skipf("existing user config is not readable: %v", err)
	}

	assert.Equal(t, filepath.Join(home, ".hadith-search", "config.toml"), store.Path())
}

func TestNewConfigStore_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[embedding\nprovider ="), 0600))

	_, err := NewConfigStore(path)
	assert.Error(t, err)
}

func TestConfigStore_LoadNestedTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[embedding]
provider = "openai"
batch_size = 32
requests_per_second = 2.5

[enrichment]
timeout = "250ms"

[server]
debug = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	store, err := NewConfigStore(path)
	require.NoError(t, err)
	store.lookup = func(string) (string, bool) { return "", false }

	assert.Equal(t, "openai", store.GetString("embedding.provider"))
	assert.Equal(t, 32, store.GetInt("embedding.batch_size"))
	assert.InDelta(t, 2.5, store.GetFloat("embedding.requests_per_second"), 1e-9)
	assert.Equal(t, 250*time.Millisecond, store.GetDuration("enrichment.timeout"))
	assert.True(t, store.GetBool("server.debug"))
	assert.Equal(t, []string{
		"embedding.batch_size",
		"embedding.provider",
		"embedding.requests_per_second",
		"enrichment.timeout",
		"server.debug",
	}, store.Keys())
}

func TestConfigStore_SetPersistsAsTables(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("index.backend", "hnsw"))
	require.NoError(t, store.Set("index.hnsw_m", int64(24)))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[index]")

	reloaded, err := NewConfigStore(store.Path())
	require.NoError(t, err)
	reloaded.lookup = func(string) (string, bool) { return "", false }
	assert.Equal(t, "hnsw", reloaded.GetString("index.backend"))
	assert.Equal(t, 24, reloaded.GetInt("index.hnsw_m"))
}

func TestConfigStore_WrongTypes(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("a.int", int64(5)))
	require.NoError(t, store.Set("a.str", "five"))

	assert.Equal(t, "", store.GetString("a.int"))
	assert.Equal(t, 0, store.GetInt("a.str"))
	assert.Zero(t, store.GetFloat("a.str"))
	assert.False(t, store.GetBool("a.int"))
	assert.Zero(t, store.GetDuration("a.str"))
	assert.Equal(t, "", store.GetString("missing"))
	assert.Equal(t, 0, store.GetInt("missing"))
}

func TestConfigStore_EnvironmentOverrides(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("embedding.provider", "ollama"))

	env := map[string]string{
		"HADITH_SEARCH_EMBEDDING_PROVIDER":      "openai",
		"HADITH_SEARCH_RETRIEVAL_DEFAULT_TOP_K": "7",
		"HADITH_SEARCH_EMBEDDING_TIMEOUT":       "2s",
		"HADITH_SEARCH_SERVER_DEBUG":            "true",
	}
	store.lookup = func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	assert.Equal(t, "openai", store.GetString("embedding.provider"))
	assert.Equal(t, 7, store.GetInt("retrieval.default_top_k"))
	assert.Equal(t, 2*time.Second, store.GetDuration("embedding.timeout"))
	assert.True(t, store.GetBool("server.debug"))
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "HADITH_SEARCH_EMBEDDING_API_KEY_ENV", EnvKey("embedding.api_key_env"))
	assert.Equal(t, "HADITH_SEARCH_INDEX_QDRANT_ADDR", EnvKey("index.qdrant-addr"))
}

func TestFlattenAndNest(t *testing.T) {
	nested := map[string]any{
		"a": map[string]any{"b": 1, "c": map[string]any{"d": "x"}},
		"e": true,
	}

	flat := flattenMap(nested, "")
	assert.Equal(t, map[string]any{"a.b": 1, "a.c.d": "x", "e": true}, flat)
	assert.Equal(t, nested, nestMap(flat))
}
