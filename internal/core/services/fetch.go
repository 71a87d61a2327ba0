package services

import (
	"context"
	"log"

	"github.com/ewilliams-labs/moodquiz/internal/core/domain"
	"github.com/ewilliams-labs/moodquiz/internal/core/ports"
)

const (
	perQueryLimit    = 200
	admittedSoftCap  = 600
	fallbackCountry  = "US"
	secondaryCountry = "IN"
)

// FetchFilters are the admission parameters applied to raw catalog results.
type FetchFilters struct {
	AllowExplicit bool
	Decade        *domain.DecadeRange
}

// Fetcher aggregates raw catalog hits across a prioritized country list and
// admits only previewable, deduplicated candidates. The cache is optional.
type Fetcher struct {
	catalog ports.CatalogSearcher
	cache   ports.SearchCache
}

// NewFetcher constructs a Fetcher. cache may be nil.
func NewFetcher(catalog ports.CatalogSearcher, cache ports.SearchCache) *Fetcher {
	return &Fetcher{catalog: catalog, cache: cache}
}

// Fetch iterates countries in fixed priority order, then queries in builder
// order, admitting results that pass the preview, explicitness, dedup and
// decade filters. The soft cap is checked after each query's batch so one
// batch may push the total past it; a failed call for a pair degrades to
// zero results and never aborts the rest of the fetch.
func (f *Fetcher) Fetch(ctx context.Context, queries []string, primaryCountry string, filters FetchFilters) []domain.Candidate {
	if primaryCountry == "" {
		primaryCountry = fallbackCountry
	}
	countries := []string{primaryCountry, fallbackCountry, secondaryCountry}

	seen := make(map[int]struct{})
	var admitted []domain.Candidate

	for _, country := range countries {
		for _, query := range queries {
			results := f.search(ctx, query, country)
			for _, c := range results {
				if !admissible(c, filters, seen) {
					continue
				}
				seen[c.CatalogID] = struct{}{}
				admitted = append(admitted, c)
			}
			if len(admitted) > admittedSoftCap {
				return admitted
			}
		}
	}
	return admitted
}

func (f *Fetcher) search(ctx context.Context, query, country string) []domain.Candidate {
	if f.cache != nil {
		if cached, ok, err := f.cache.Get(ctx, country, query); err != nil {
			log.Printf("WARN fetcher: cache read failed for %s/%q: %v", country, query, err)
		} else if ok {
			return cached
		}
	}

	results, err := f.catalog.Search(ctx, query, country, perQueryLimit)
	if err != nil {
		log.Printf("WARN fetcher: search failed for %s/%q: %v", country, query, err)
		return nil
	}

	if f.cache != nil {
		if err := f.cache.Put(ctx, country, query, results); err != nil {
			log.Printf("WARN fetcher: cache write failed for %s/%q: %v", country, query, err)
		}
	}
	return results
}

func admissible(c domain.Candidate, filters FetchFilters, seen map[int]struct{}) bool {
	if c.PreviewURL == "" {
		return false
	}
	if c.Explicit && !filters.AllowExplicit {
		return false
	}
	if _, dup := seen[c.CatalogID]; dup {
		return false
	}
	// Candidates with an unknown year bypass the decade filter.
	if filters.Decade != nil && c.Year != 0 {
		if c.Year < filters.Decade.From || c.Year > filters.Decade.To {
			return false
		}
	}
	return true
}
