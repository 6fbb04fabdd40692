package normalisers

import (
	"sort"
	"sync"

	"github.com/custodia-labs/hadith-search/internal/core/domain"
	"github.com/custodia-labs/hadith-search/internal/core/ports/driven"
	"github.com/custodia-labs/hadith-search/internal/normalisers/arabic"
	"github.com/custodia-labs/hadith-search/internal/normalisers/plaintext"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry dispatches normalisation by language.
type Registry struct {
	mu          sync.RWMutex
	normalisers map[domain.Language]driven.TextNormaliser
	fallback    driven.TextNormaliser
}

// NewRegistry creates an empty registry that falls back to fallback
// for unregistered languages.
func NewRegistry(fallback driven.TextNormaliser) *Registry {
	return &Registry{
		normalisers: make(map[domain.Language]driven.TextNormaliser),
		fallback:    fallback,
	}
}

// NewDefaultRegistry creates a registry with the Arabic and plain text normalisers.
func NewDefaultRegistry() *Registry {
	r := NewRegistry(plaintext.New())
	r.Register(arabic.New())
	r.Register(plaintext.New())
	return r
}

// Register adds a normaliser, replacing any for the same language.
func (r *Registry) Register(normaliser driven.TextNormaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.normalisers[normaliser.Language()] = normaliser
}

// Normalise applies the normaliser registered for lang.
func (r *Registry) Normalise(lang domain.Language, text string) string {
	r.mu.RLock()
	n, ok := r.normalisers[lang]
	r.mu.RUnlock()

	if !ok {
		if r.fallback == nil {
			return text
		}
		n = r.fallback
	}
	return n.Normalise(text)
}

// Languages returns the registered languages, sorted.
func (r *Registry) Languages() []domain.Language {
	r.mu.RLock()
	defer r.mu.RUnlock()

	langs := make([]domain.Language, 0, len(r.normalisers))
	for lang := range r.normalisers {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i] < langs[j] })
	return langs
}
