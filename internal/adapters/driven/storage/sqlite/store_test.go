package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hadith-search/internal/core/domain"
)

var fixtureStatements = []string{
	`CREATE TABLE collections (id TEXT PRIMARY KEY, name TEXT, author TEXT, initial TEXT)`,
	`CREATE TABLE chapters (
		id INTEGER NOT NULL,
		collection_id TEXT NOT NULL,
		book_id INTEGER,
		english_name TEXT,
		arabic_name TEXT,
		PRIMARY KEY (collection_id, id)
	)`,
	`INSERT INTO collections (id, name, author) VALUES
		('bukhari', 'Sahih al-Bukhari', 'Imam Bukhari'),
		('muslim', 'Sahih Muslim', NULL)`,
	`INSERT INTO chapters (id, collection_id, book_id, english_name) VALUES
		(1, 'bukhari', 1, 'Revelation'),
		(2, 'bukhari', 2, '  '),
		(1, 'muslim', 1, 'The Book of Faith')`,
}

func newTestDB(t *testing.T, statements []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hadith.db")

	db, err := sqlx.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	for _, stmt := range statements {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	return path
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), newTestDB(t, fixtureStatements))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpen(t *testing.T) {
	store := openTestStore(t)

	assert.NoError(t, store.Ping(context.Background()))
	assert.Equal(t, "hadith.db", filepath.Base(store.Path()))
}

func TestOpen_Errors(t *testing.T) {
	_, err := Open(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrEnrichmentUnavailable)

	_, err = Open(context.Background(), filepath.Join(t.TempDir(), "missing.db"))
	assert.ErrorIs(t, err, domain.ErrEnrichmentUnavailable)

	noChapters := newTestDB(t, []string{`CREATE TABLE other (id INTEGER)`})
	_, err = Open(context.Background(), noChapters)
	assert.ErrorIs(t, err, domain.ErrEnrichmentUnavailable)
}

func TestChapterName(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	name, err := store.ChapterName(ctx, "bukhari", 1)
	require.NoError(t, err)
	assert.Equal(t, "Revelation", name)

	name, err = store.ChapterName(ctx, "muslim", 1)
	require.NoError(t, err)
	assert.Equal(t, "The Book of Faith", name)

	_, err = store.ChapterName(ctx, "bukhari", 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.ChapterName(ctx, "bukhari", 2)
	assert.ErrorIs(t, err, domain.ErrNotFound, "blank names count as missing")
}

func TestCollections(t *testing.T) {
	store := openTestStore(t)

	collections, err := store.Collections(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []domain.Collection{
		{ID: "bukhari", Name: "Sahih al-Bukhari", Author: "Imam Bukhari"},
		{ID: "muslim", Name: "Sahih Muslim"},
	}, collections)
}

func TestStore_ReadOnly(t *testing.T) {
	store := openTestStore(t)

	_, err := store.db.Exec(`INSERT INTO collections (id) VALUES ('x')`)
	assert.Error(t, err)
}

func TestStore_Closed(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Close())

	_, err := store.ChapterName(context.Background(), "bukhari", 1)
	assert.ErrorIs(t, err, domain.ErrEnrichmentUnavailable)

	var nilStore *Store
	assert.NoError(t, nilStore.Close())
	assert.ErrorIs(t, nilStore.Ping(context.Background()), domain.ErrEnrichmentUnavailable)
}
