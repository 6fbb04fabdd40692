package domain

// DefaultTopK is the number of results returned when a query does not say.
const DefaultTopK = 5

// Query is a single retrieval request. It is never persisted.
type Query struct {
	// Text is the raw query text.
	Text string

	// Language is an optional hint ("arabic", "english", "ar", "en").
	// Empty means detect from the text.
	Language string

	// TopK is the maximum number of distinct documents to return.
	TopK int

	// Collection restricts results to one canonical collection id.
	// Empty means all collections.
	Collection string
}

// Result is one distinct document surfaced for a query.
type Result struct {
	// Document is the hydrated document.
	Document Document

	// CollectionID is the canonical collection id of the document.
	CollectionID string

	// ChapterName is set only when enrichment succeeded.
	ChapterName *string

	// Score is the inner product of the query and the best-matching chunk.
	// Higher is more similar.
	Score float64

	// MatchedLanguage is the language of the best-matching chunk.
	MatchedLanguage Language
}

// DisplayText returns the document text in the language that matched.
func (r Result) DisplayText() string {
	return r.Document.TextFor(r.MatchedLanguage)
}

// HealthStatus summarises whether the service can answer queries.
type HealthStatus string

// Health states.
const (
	// HealthHealthy means every resource, including enrichment, is loaded.
	HealthHealthy HealthStatus = "healthy"

	// HealthDegraded means the mandatory resources are loaded but enrichment is not.
	HealthDegraded HealthStatus = "degraded"

	// HealthUnhealthy means a mandatory resource is missing.
	HealthUnhealthy HealthStatus = "unhealthy"
)

// Health reports the state of the loaded resources.
type Health struct {
	Status     HealthStatus
	Index      bool
	Mapping    bool
	Embedding  bool
	Enrichment bool
	Vectors    int
	Mappings   int
	Documents  int
}

// Ready returns true when the mandatory resources are loaded.
func (h Health) Ready() bool {
	return h.Index && h.Mapping && h.Embedding
}

// ComputeStatus derives the status from the individual flags.
func (h Health) ComputeStatus() HealthStatus {
	switch {
	case !h.Ready():
		return HealthUnhealthy
	case !h.Enrichment:
		return HealthDegraded
	default:
		return HealthHealthy
	}
}
