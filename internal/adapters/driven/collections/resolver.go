// Package collections resolves free-form collection titles to canonical ids
// using a single alias table shared with the offline index builder.
package collections

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/hadith-search/internal/core/domain"
	"github.com/custodia-labs/hadith-search/internal/core/ports/driven"
)

// Ensure Resolver implements the interface.
var _ driven.CollectionResolver = (*Resolver)(nil)

//go:embed aliases.yaml
var defaultTable []byte

// table is the YAML layout of the alias file.
type table struct {
	Collections []entry `yaml:"collections"`
}

type entry struct {
	ID      string   `yaml:"id"`
	Name    string   `yaml:"name"`
	Author  string   `yaml:"author"`
	Aliases []string `yaml:"aliases"`
}

// Resolver maps cleaned titles to canonical ids. It is immutable after construction.
type Resolver struct {
	aliases     map[string]string
	collections map[string]domain.Collection
}

// New loads the embedded alias table.
func New() (*Resolver, error) {
	return Parse(defaultTable)
}

// MustNew loads the embedded alias table and panics if it is malformed.
func MustNew() *Resolver {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// Parse builds a resolver from a YAML alias table.
// An alias claimed by two different ids is an error.
func Parse(data []byte) (*Resolver, error) {
	var t table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse alias table: %w", err)
	}

	r := &Resolver{
		aliases:     make(map[string]string),
		collections: make(map[string]domain.Collection, len(t.Collections)),
	}

	for _, e := range t.Collections {
		id := Clean(e.ID)
		if id == "" {
			return nil, fmt.Errorf("%w: alias table entry without id", domain.ErrInvalidInput)
		}
		r.collections[id] = domain.Collection{ID: id, Name: e.Name, Author: e.Author}

		for _, alias := range append([]string{id}, e.Aliases...) {
			key := Clean(alias)
			if existing, ok := r.aliases[key]; ok && existing != id {
				return nil, fmt.Errorf("%w: alias %q maps to both %q and %q",
					domain.ErrInvalidInput, key, existing, id)
			}
			r.aliases[key] = id
		}
	}

	return r, nil
}

// Clean lower-cases title and removes whitespace, hyphens and apostrophes.
func Clean(title string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' || r == '\'' || r == '’' {
			return -1
		}
		return r
	}, strings.ToLower(title))
}

// Canonical returns the canonical id for title.
func (r *Resolver) Canonical(title string) (string, bool) {
	cleaned := Clean(title)
	if id, ok := r.aliases[cleaned]; ok {
		return id, true
	}
	return cleaned, false
}

// IsCanonical reports whether id is one of the canonical ids.
func (r *Resolver) IsCanonical(id string) bool {
	_, ok := r.collections[id]
	return ok
}

// IDs returns every canonical id, sorted.
func (r *Resolver) IDs() []string {
	ids := make([]string, 0, len(r.collections))
	for id := range r.collections {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Collections returns the collections described by the table, sorted by id.
func (r *Resolver) Collections() []domain.Collection {
	ids := r.IDs()
	out := make([]domain.Collection, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.collections[id])
	}
	return out
}
