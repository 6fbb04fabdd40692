package domain

// AuditReport describes the consistency of the chunk map against the
// vector index, the corpus and the collection table.
type AuditReport struct {
	// Entries is the number of chunk map entries.
	Entries int

	// Vectors is the number of vectors in the index.
	Vectors int

	// Documents is the number of documents in the corpus.
	Documents int

	// DuplicatePositions lists positions mapped more than once.
	DuplicatePositions []int64

	// OutOfRange lists mapped positions the index does not hold.
	OutOfRange []int64

	// MissingDocuments lists referenced document ids absent from the corpus.
	MissingDocuments []string

	// NonCanonicalCollections lists collection ids in the map that are not
	// canonical ids of the alias table.
	NonCanonicalCollections []string

	// CollectionMismatches lists map collection ids that disagree with the
	// canonical id of the document's collection title.
	CollectionMismatches []CollectionMismatch
}

// CollectionMismatch is one distinct pair of disagreeing collection ids.
type CollectionMismatch struct {
	// MapID is the collection id recorded in the chunk map.
	MapID string

	// TitleID is the canonical id of the document's collection title.
	TitleID string

	// DocumentID is the first document seen with this pair.
	DocumentID string
}

// SizeMismatch reports whether the map and index disagree on size.
func (r AuditReport) SizeMismatch() bool {
	return r.Entries != r.Vectors
}

// OK reports whether the audit found no problems.
func (r AuditReport) OK() bool {
	return !r.SizeMismatch() &&
		len(r.DuplicatePositions) == 0 &&
		len(r.OutOfRange) == 0 &&
		len(r.MissingDocuments) == 0 &&
		len(r.NonCanonicalCollections) == 0 &&
		len(r.CollectionMismatches) == 0
}
