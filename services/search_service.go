package services

import (
	"context"
	"time"

	"github.com/guelo0987/gigante-storefront/cache"
	"github.com/guelo0987/gigante-storefront/catalog"
	"github.com/guelo0987/gigante-storefront/models"
	"github.com/guelo0987/gigante-storefront/observability"
)

// SearchService answers type-ahead queries from the cached catalog.
type SearchService struct {
	catalog *CatalogService
	results *cache.SearchCache
	metrics *observability.StoreMetrics
}

func NewSearchService(catalogSvc *CatalogService, results *cache.SearchCache, metrics *observability.StoreMetrics) *SearchService {
	return &SearchService{catalog: catalogSvc, results: results, metrics: metrics}
}

// Search ranks the catalog for query. Queries below the minimum length
// return an empty list without touching the cache or the backend. A
// backend failure returns empty results with the error, and the empty
// result is not cached.
func (s *SearchService) Search(ctx context.Context, query string) (models.SearchResults, error) {
	out := models.SearchResults{Query: query, Results: []models.StorefrontRankedProduct{}}
	if catalog.QueryTooShort(query) {
		return out, nil
	}

	if ranked, tier, ok := s.results.Get(ctx, query); ok {
		s.metrics.RecordSearchLookup(tier)
		out.Results = s.shape(ranked)
		out.Cached = true
		return out, nil
	}
	s.metrics.RecordSearchLookup(observability.CacheTierMiss)

	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		out.UpstreamError = true
		return out, err
	}

	timing := observability.StartTiming(ctx, "rank")
	start := time.Now()
	ranked := catalog.RankSearch(snap.Products, query)
	s.metrics.ObserveEngine("rank", time.Since(start))
	timing.Stop()

	s.results.Set(ctx, query, ranked)
	out.Results = s.shape(ranked)
	return out, nil
}

func (s *SearchService) shape(ranked []catalog.RankedProduct) []models.StorefrontRankedProduct {
	out := make([]models.StorefrontRankedProduct, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, models.StorefrontRankedProduct{
			StorefrontProduct: s.catalog.ToStorefront(r.Product),
			Relevance:         r.Relevance,
		})
	}
	return out
}
