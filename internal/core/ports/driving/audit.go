package driving

import (
	"context"

	"github.com/custodia-labs/hadith-search/internal/core/domain"
)

// AuditService cross-checks the loaded artifacts for consistency.
type AuditService interface {
	// Audit reports size mismatches, duplicate or out-of-range positions,
	// dangling document ids and non-canonical collection ids.
	Audit(ctx context.Context) (domain.AuditReport, error)
}
