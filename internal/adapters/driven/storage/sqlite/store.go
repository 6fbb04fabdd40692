package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/hadith-search/internal/core/domain"
	"github.com/custodia-labs/hadith-search/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ChapterStore = (*Store)(nil)

// Default connection settings.
const (
	DefaultBusyTimeout  = 5 * time.Second
	DefaultMaxOpenConns = 8
)

// Store reads chapter and collection metadata.
type Store struct {
	db   *sqlx.DB
	path string
}

// chapterRow maps the chapters query.
type chapterRow struct {
	EnglishName sql.NullString `db:"english_name"`
}

// collectionRow maps the collections table.
type collectionRow struct {
	ID     string         `db:"id"`
	Name   sql.NullString `db:"name"`
	Author sql.NullString `db:"author"`
}

// Open opens the database at path read-only and pings it.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: sqlite path required", domain.ErrEnrichmentUnavailable)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve sqlite path: %w", domain.ErrEnrichmentUnavailable, err)
	}
	// mode=ro would otherwise surface a missing file only on first query.
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEnrichmentUnavailable, err)
	}

	dsn := fmt.Sprintf("file:%s?mode=ro&_pragma=busy_timeout(%d)&_pragma=query_only(1)",
		abs, DefaultBusyTimeout.Milliseconds())
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite: %w", domain.ErrEnrichmentUnavailable, err)
	}
	db.SetMaxOpenConns(DefaultMaxOpenConns)

	s := &Store{db: db, path: abs}
	if err := s.Ping(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// ChapterName returns the English chapter name, or ErrNotFound when the
// chapter is missing or unnamed.
func (s *Store) ChapterName(ctx context.Context, collectionID string, chapterID int) (string, error) {
	if s == nil || s.db == nil {
		return "", domain.ErrEnrichmentUnavailable
	}

	var row chapterRow
	err := s.db.GetContext(ctx, &row,
		`SELECT english_name FROM chapters WHERE collection_id = ? AND id = ?`, collectionID, chapterID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: select chapter: %w", domain.ErrEnrichmentUnavailable, err)
	}

	name := strings.TrimSpace(row.EnglishName.String)
	if name == "" {
		return "", domain.ErrNotFound
	}
	return name, nil
}

// Collections lists the collections table ordered by id.
func (s *Store) Collections(ctx context.Context) ([]domain.Collection, error) {
	if s == nil || s.db == nil {
		return nil, domain.ErrEnrichmentUnavailable
	}

	rows := []collectionRow{}
	if err := s.db.SelectContext(ctx, &rows, `SELECT id, name, author FROM collections ORDER BY id`); err != nil {
		return nil, fmt.Errorf("%w: select collections: %w", domain.ErrEnrichmentUnavailable, err)
	}

	collections := make([]domain.Collection, 0, len(rows))
	for _, r := range rows {
		collections = append(collections, domain.Collection{
			ID:     r.ID,
			Name:   r.Name.String,
			Author: r.Author.String,
		})
	}
	return collections, nil
}

// Ping checks the database answers and has the chapters table.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return domain.ErrEnrichmentUnavailable
	}
	var n int
	if err := s.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'chapters'`); err != nil {
		return fmt.Errorf("%w: ping sqlite: %w", domain.ErrEnrichmentUnavailable, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s has no chapters table", domain.ErrEnrichmentUnavailable, s.path)
	}
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
