package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/custodia-labs/hadith-search/internal/core/domain"
	"github.com/custodia-labs/hadith-search/internal/core/ports/driven"
	"github.com/custodia-labs/hadith-search/internal/core/ports/driving"
)

// Ensure AuditService implements the interface.
var _ driving.AuditService = (*AuditService)(nil)

// AuditService checks that the artifacts loaded at startup agree with each other.
type AuditService struct {
	index       driven.VectorIndex
	chunks      driven.ChunkMap
	docs        driven.DocumentStore
	collections driven.CollectionResolver
}

// NewAuditService creates an audit service.
func NewAuditService(
	index driven.VectorIndex,
	chunks driven.ChunkMap,
	docs driven.DocumentStore,
	collections driven.CollectionResolver,
) *AuditService {
	return &AuditService{index: index, chunks: chunks, docs: docs, collections: collections}
}

// Audit walks every chunk map entry. Each missing document, non-canonical
// collection id and disagreeing pair of map and title ids is reported once.
func (s *AuditService) Audit(ctx context.Context) (domain.AuditReport, error) {
	entries := s.chunks.Entries()
	report := domain.AuditReport{
		Entries:   len(entries),
		Vectors:   s.index.Len(),
		Documents: s.docs.Count(),
	}

	positions := make(map[int64]int, len(entries))
	missing := make(map[string]struct{})
	aliases := make(map[string]struct{})
	// titleIDs holds the canonical title id of each document found, "" when
	// the title is empty or unknown to the alias table.
	titleIDs := make(map[string]string)
	mismatches := make(map[[2]string]string)

	for i, ref := range entries {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return report, err
			}
		}

		positions[ref.Position]++
		if positions[ref.Position] == 2 {
			report.DuplicatePositions = append(report.DuplicatePositions, ref.Position)
		}
		if ref.Position < 0 || ref.Position >= int64(report.Vectors) {
			report.OutOfRange = append(report.OutOfRange, ref.Position)
		}

		if ref.CollectionID != "" && !s.collections.IsCanonical(ref.CollectionID) {
			aliases[ref.CollectionID] = struct{}{}
		}

		titleID, found, err := s.titleID(ctx, ref.DocumentID, titleIDs, missing)
		if err != nil {
			return report, err
		}
		if !found || titleID == "" || ref.CollectionID == "" || ref.CollectionID == titleID {
			continue
		}
		pair := [2]string{ref.CollectionID, titleID}
		if _, seen := mismatches[pair]; !seen {
			mismatches[pair] = ref.DocumentID
		}
	}

	report.MissingDocuments = sortedKeys(missing)
	report.NonCanonicalCollections = sortedKeys(aliases)
	report.CollectionMismatches = sortedMismatches(mismatches)
	return report, nil
}

// titleID looks a document up once and caches the canonical id of its
// collection title. found is false for documents missing from the corpus.
func (s *AuditService) titleID(
	ctx context.Context, documentID string, cache map[string]string, missing map[string]struct{},
) (id string, found bool, err error) {
	if id, ok := cache[documentID]; ok {
		return id, true, nil
	}
	if _, ok := missing[documentID]; ok {
		return "", false, nil
	}

	doc, err := s.docs.GetDocument(ctx, documentID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return "", false, fmt.Errorf("look up document %s: %w", documentID, err)
		}
		missing[documentID] = struct{}{}
		return "", false, nil
	}

	if doc.CollectionTitle != "" {
		if canonical, known := s.collections.Canonical(doc.CollectionTitle); known {
			id = canonical
		}
	}
	cache[documentID] = id
	return id, true, nil
}

func sortedMismatches(pairs map[[2]string]string) []domain.CollectionMismatch {
	if len(pairs) == 0 {
		return nil
	}
	out := make([]domain.CollectionMismatch, 0, len(pairs))
	for pair, docID := range pairs {
		out = append(out, domain.CollectionMismatch{MapID: pair[0], TitleID: pair[1], DocumentID: docID})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MapID != out[j].MapID {
			return out[i].MapID < out[j].MapID
		}
		return out[i].TitleID < out[j].TitleID
	})
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
