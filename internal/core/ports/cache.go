package ports

import (
	"context"

	"github.com/ewilliams-labs/moodquiz/internal/core/domain"
)

// SearchCache stores raw catalog responses keyed by (country, query) so
// repeated mood texts do not re-hammer the catalog API. Entries expire; a
// stale or missing entry reports ok=false. The cache holds pre-admission
// results, so hits never change filtering semantics.
type SearchCache interface {
	Get(ctx context.Context, country, query string) (results []domain.Candidate, ok bool, err error)
	Put(ctx context.Context, country, query string, results []domain.Candidate) error
}
