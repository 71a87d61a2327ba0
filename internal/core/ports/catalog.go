package ports

import (
	"context"

	"github.com/ewilliams-labs/moodquiz/internal/core/domain"
)

// CatalogSearcher queries the external music catalog for one (query, country)
// pair. Implementations return the raw, unfiltered result set; admission
// filtering stays in the core. A failed call should surface as an error so
// the fetcher can degrade it to zero results for that pair.
type CatalogSearcher interface {
	Search(ctx context.Context, query, country string, limit int) ([]domain.Candidate, error)
}
