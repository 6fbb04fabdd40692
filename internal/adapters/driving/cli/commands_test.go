package cli

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hadith-search/internal/adapters/driving/mcp"
	"github.com/custodia-labs/hadith-search/internal/adapters/driving/tui"
	"github.com/custodia-labs/hadith-search/internal/core/domain"
	"github.com/custodia-labs/hadith-search/internal/core/ports/driving"
)

func TestHealthCmd(t *testing.T) {
	tests := []struct {
		name    string
		health  domain.Health
		want    []string
		wantErr error
	}{
		{
			name: "healthy",
			health: domain.Health{Status: domain.HealthHealthy, Index: true, Mapping: true, Embedding: true,
				Enrichment: true, Vectors: 12345, Mappings: 12345, Documents: 6000},
			want: []string{"Status: healthy", "12,345 vectors", "6,000 documents"},
		},
		{
			name:   "degraded",
			health: domain.Health{Status: domain.HealthDegraded, Index: true, Mapping: true, Embedding: true},
			want:   []string{"Status: degraded", "Chapter names:  unavailable"},
		},
		{
			name:    "unhealthy",
			health:  domain.Health{Status: domain.HealthUnhealthy},
			want:    []string{"Status: unhealthy"},
			wantErr: errUnhealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.app.retrieval = &mockRetrievalService{health: tt.health}

			out, err := execute(t, "health")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestHealthCmd_JSON(t *testing.T) {
	env := newTestEnv(t)
	env.app.retrieval = &mockRetrievalService{health: domain.Health{
		Status: domain.HealthDegraded, Index: true, Mapping: true, Embedding: true, Vectors: 4, Mappings: 4, Documents: 2,
	}}

	out, err := execute(t, "health", "--json")
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, true, body["index"])
	assert.Equal(t, false, body["enrichment"])
	assert.Equal(t, float64(2), body["documents"])
}

func TestCollectionsCmd(t *testing.T) {
	env := newTestEnv(t)
	env.app.catalogue = &mockCatalogueService{collections: []domain.Collection{
		{ID: "bukhari", Name: "Sahih al-Bukhari", Author: "Imam Bukhari"},
		{ID: "muslim", Name: "Sahih Muslim"},
	}}

	out, err := execute(t, "collections")
	require.NoError(t, err)
	assert.Contains(t, out, "bukhari")
	assert.Contains(t, out, "Sahih al-Bukhari")
	assert.Contains(t, out, "Imam Bukhari")
	assert.Contains(t, out, "muslim")

	out, err = execute(t, "collections", "--json")
	require.NoError(t, err)
	var items []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "bukhari", items[0]["id"])
	assert.NotContains(t, items[1], "author")
}

func TestCollectionsCmd_Empty(t *testing.T) {
	newTestEnv(t)

	out, err := execute(t, "collections")
	require.NoError(t, err)
	assert.Contains(t, out, "No collections found.")
}

func TestCollectionsCmd_Error(t *testing.T) {
	env := newTestEnv(t)
	env.app.catalogue = &mockCatalogueService{err: errBoom}

	_, err := execute(t, "collections")
	assert.ErrorIs(t, err, errBoom)
}

func TestDocumentCmd(t *testing.T) {
	env := newTestEnv(t)
	chapter := "Revelation"
	env.app.documents = &mockDocumentService{docs: map[string]driving.DocumentDetails{
		"1": {
			Document: domain.Document{
				ID:              "1",
				SourceText:      "انما الاعمال بالنيات",
				Translation:     &domain.Translation{Narrator: "Narrated Umar:", Text: "Actions are by intentions."},
				ChapterID:       1,
				CollectionTitle: "Sahih al-Bukhari",
			},
			CollectionID: "bukhari",
			ChapterName:  &chapter,
		},
	}}

	out, err := execute(t, "document", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "bukhari #1 · Revelation")
	assert.Contains(t, out, "Sahih al-Bukhari")
	assert.Contains(t, out, "انما الاعمال بالنيات")
	assert.Contains(t, out, "Actions are by intentions.")

	out, err = execute(t, "doc", "--json", "1")
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, "bukhari", body["collection_id"])
	assert.Equal(t, "Revelation", body["chapter_name"])
	assert.Equal(t, "Narrated Umar:", body["narrator"])

	_, err = execute(t, "document", "404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVerifyCmd(t *testing.T) {
	t.Run("consistent", func(t *testing.T) {
		env := newTestEnv(t)
		env.app.audit = &mockAuditService{report: domain.AuditReport{Entries: 3, Vectors: 3, Documents: 2}}

		out, err := execute(t, "verify")
		require.NoError(t, err)
		assert.Contains(t, out, "all checks passed")
	})

	t.Run("problems", func(t *testing.T) {
		env := newTestEnv(t)
		env.app.audit = &mockAuditService{report: domain.AuditReport{
			Entries:                 12,
			Vectors:                 11,
			DuplicatePositions:      []int64{3},
			OutOfRange:              []int64{11},
			MissingDocuments:        []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11"},
			NonCanonicalCollections: []string{"Bukhari"},
			CollectionMismatches: []domain.CollectionMismatch{
				{MapID: "bukhari", TitleID: "muslim", DocumentID: "7"},
			},
		}}

		out, err := execute(t, "verify")
		assert.ErrorIs(t, err, errAuditFailed)
		assert.Contains(t, out, "chunk map and index sizes differ")
		assert.Contains(t, out, "1 duplicate positions: 3")
		assert.Contains(t, out, "1 positions outside the index: 11")
		assert.Contains(t, out, "11 document ids missing from the corpus: 1, 2")
		assert.Contains(t, out, ", ...")
		assert.Contains(t, out, "1 non-canonical collection ids: Bukhari")
		assert.Contains(t, out, "1 chunk map collection ids that disagree with the document title: bukhari != muslim (document 7)")
		assert.NotContains(t, out, "all checks passed")
	})

	t.Run("collection mismatch alone fails", func(t *testing.T) {
		env := newTestEnv(t)
		env.app.audit = &mockAuditService{report: domain.AuditReport{
			Entries: 2, Vectors: 2, Documents: 2,
			CollectionMismatches: []domain.CollectionMismatch{{MapID: "bukhari", TitleID: "muslim", DocumentID: "2"}},
		}}

		out, err := execute(t, "verify")
		assert.ErrorIs(t, err, errAuditFailed)
		assert.Contains(t, out, "bukhari != muslim (document 2)")
	})

	t.Run("audit error", func(t *testing.T) {
		env := newTestEnv(t)
		env.app.audit = &mockAuditService{err: errBoom}

		_, err := execute(t, "verify")
		assert.ErrorIs(t, err, errBoom)
	})
}

func TestServeCmd_StopsWhenContextIsCancelled(t *testing.T) {
	env := newTestEnv(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rootCmd.SetArgs([]string{"serve", "--addr", "127.0.0.1:0"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	})
	require.NoError(t, rootCmd.ExecuteContext(ctx))
	assert.Equal(t, 1, env.closer.closed)
}

func TestServeCmd_RequiresRetrieval(t *testing.T) {
	env := newTestEnv(t)
	env.app.retrieval = nil

	_, err := execute(t, "serve")
	assert.Error(t, err)
}

func TestMCPServeCmd_RequiresRetrieval(t *testing.T) {
	env := newTestEnv(t)
	env.app.retrieval = nil

	_, err := execute(t, "mcp", "serve")
	assert.ErrorIs(t, err, mcp.ErrMissingRetrievalService)

	port := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, port)
	assert.Equal(t, "p", port.Shorthand)
}

func TestTUICmd_RequiresRetrieval(t *testing.T) {
	env := newTestEnv(t)
	env.app.retrieval = nil

	_, err := execute(t, "tui")
	assert.ErrorIs(t, err, tui.ErrMissingRetrievalService)
	assert.Contains(t, err.Error(), "failed to create TUI")
}
