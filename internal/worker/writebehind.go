package worker

import (
	"context"

	"github.com/ewilliams-labs/moodquiz/internal/core/domain"
	"github.com/ewilliams-labs/moodquiz/internal/core/ports"
)

// WriteBehind decorates a cache so that writes go through the pool instead
// of blocking the request path. Reads hit the underlying cache directly.
type WriteBehind struct {
	cache ports.SearchCache
	pool  *Pool
}

// compile-time interface assertion
var _ ports.SearchCache = (*WriteBehind)(nil)

// NewWriteBehind wraps cache with asynchronous writes via pool.
func NewWriteBehind(cache ports.SearchCache, pool *Pool) *WriteBehind {
	return &WriteBehind{cache: cache, pool: pool}
}

func (w *WriteBehind) Get(ctx context.Context, country, query string) ([]domain.Candidate, bool, error) {
	return w.cache.Get(ctx, country, query)
}

func (w *WriteBehind) Put(_ context.Context, country, query string, results []domain.Candidate) error {
	w.pool.Submit(Job{Country: country, Query: query, Results: results})
	return nil
}
