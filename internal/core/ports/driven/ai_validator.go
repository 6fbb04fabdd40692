package driven

import (
	"context"

	"github.com/custodia-labs/hadith-search/internal/core/domain"
)

// AIConfigValidator validates embedding provider configurations by testing
// connectivity to the provider.
type AIConfigValidator interface {
	// ValidateEmbedding builds a provider from config and pings it.
	ValidateEmbedding(ctx context.Context, config *domain.EmbeddingSettings) error
}
