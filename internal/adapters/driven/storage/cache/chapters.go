// Package cache provides an in-memory LRU decorator for the chapter store.
package cache

import (
	"context"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/custodia-labs/hadith-search/internal/core/domain"
	"github.com/custodia-labs/hadith-search/internal/core/ports/driven"
)

// Ensure ChapterStore implements the interface.
var _ driven.ChapterStore = (*ChapterStore)(nil)

type chapterKey struct {
	collectionID string
	chapterID    int
}

// entry caches a name, or a confirmed miss when found is false.
type entry struct {
	name  string
	found bool
}

// ChapterStore caches ChapterName lookups, including misses. Store errors
// other than ErrNotFound are never cached.
type ChapterStore struct {
	next  driven.ChapterStore
	names *lru.Cache[chapterKey, entry]
}

// NewChapterStore wraps next with an LRU of the given size.
func NewChapterStore(next driven.ChapterStore, size int) (*ChapterStore, error) {
	if next == nil {
		return nil, fmt.Errorf("%w: chapter store is nil", domain.ErrInvalidInput)
	}
	names, err := lru.New[chapterKey, entry](size)
	if err != nil {
		return nil, fmt.Errorf("%w: cache size %d: %w", domain.ErrInvalidInput, size, err)
	}
	return &ChapterStore{next: next, names: names}, nil
}

// ChapterName returns a cached name or asks the wrapped store.
func (c *ChapterStore) ChapterName(ctx context.Context, collectionID string, chapterID int) (string, error) {
	key := chapterKey{collectionID: collectionID, chapterID: chapterID}
	if e, ok := c.names.Get(key); ok {
		if !e.found {
			return "", domain.ErrNotFound
		}
		return e.name, nil
	}

	name, err := c.next.ChapterName(ctx, collectionID, chapterID)
	switch {
	case err == nil:
		c.names.Add(key, entry{name: name, found: true})
	case errors.Is(err, domain.ErrNotFound):
		c.names.Add(key, entry{})
	}
	return name, err
}

// Collections is not cached.
func (c *ChapterStore) Collections(ctx context.Context) ([]domain.Collection, error) {
	return c.next.Collections(ctx)
}

// Ping delegates to the wrapped store.
func (c *ChapterStore) Ping(ctx context.Context) error {
	return c.next.Ping(ctx)
}

// Len returns the number of cached lookups.
func (c *ChapterStore) Len() int {
	return c.names.Len()
}

// Close purges the cache and closes the wrapped store.
func (c *ChapterStore) Close() error {
	c.names.Purge()
	return c.next.Close()
}
