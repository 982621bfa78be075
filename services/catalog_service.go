package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/guelo0987/gigante-storefront/cache"
	"github.com/guelo0987/gigante-storefront/catalog"
	"github.com/guelo0987/gigante-storefront/models"
	"github.com/guelo0987/gigante-storefront/observability"
)

// Backend is the part of the upstream API the catalog reads from.
type Backend interface {
	GetProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, code string) (models.Product, error)
	GetCategories(ctx context.Context) ([]models.Category, error)
}

// CatalogService serves the catalog from a cached snapshot of the backend.
// When the backend is unreachable every read sees an empty catalog and the
// fetch error is returned next to the (empty) result.
type CatalogService struct {
	backend   Backend
	snapshots *cache.CatalogCache
	images    ImageResolver
	metrics   *observability.StoreMetrics
}

func NewCatalogService(backend Backend, ttl time.Duration, images ImageResolver, metrics *observability.StoreMetrics) *CatalogService {
	s := &CatalogService{
		backend: backend,
		images:  images,
		metrics: metrics,
	}
	s.snapshots = cache.NewCatalogCache(ttl, s.loadSnapshot)
	return s
}

func (s *CatalogService) loadSnapshot(ctx context.Context) (cache.Snapshot, error) {
	var snap cache.Snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		products, err := s.backend.GetProducts(gctx)
		if err != nil {
			return fmt.Errorf("fetch products: %w", err)
		}
		snap.Products = products
		return nil
	})
	g.Go(func() error {
		categories, err := s.backend.GetCategories(gctx)
		if err != nil {
			return fmt.Errorf("fetch categories: %w", err)
		}
		snap.Categories = categories
		return nil
	})

	if err := g.Wait(); err != nil {
		s.metrics.RecordCatalogLoad(observability.OutcomeError, 0)
		zap.L().Error("catalog snapshot load failed", zap.Error(err))
		return cache.Snapshot{}, err
	}

	s.metrics.RecordCatalogLoad(observability.OutcomeOK, len(snap.Products))
	zap.L().Info("catalog snapshot loaded",
		zap.Int("products", len(snap.Products)),
		zap.Int("categories", len(snap.Categories)),
	)
	return snap, nil
}

// Snapshot returns the current catalog. On failure it returns an empty
// snapshot together with the error.
func (s *CatalogService) Snapshot(ctx context.Context) (cache.Snapshot, error) {
	timing := observability.StartTiming(ctx, "catalog-load")
	defer timing.Stop()

	snap, err := s.snapshots.Get(ctx)
	if err != nil {
		return cache.Snapshot{Products: []models.Product{}, Categories: []models.Category{}}, err
	}
	return snap, nil
}

// Invalidate forces the next read to refetch from the backend.
func (s *CatalogService) Invalidate() {
	s.snapshots.Invalidate()
}

// Filter runs the catalog filter engine over the current snapshot.
func (s *CatalogService) Filter(ctx context.Context, state catalog.FilterState) (catalog.Result, string, error) {
	snap, err := s.Snapshot(ctx)

	timing := observability.StartTiming(ctx, "filter")
	start := time.Now()
	result := catalog.FilterCatalog(snap.Products, state)
	s.metrics.ObserveEngine("filter", time.Since(start))
	timing.Stop()

	return result, snap.Version, err
}

// Facets returns the sidebar options for the current snapshot.
func (s *CatalogService) Facets(ctx context.Context) (models.FilterMetadata, error) {
	snap, err := s.Snapshot(ctx)
	facets := catalog.BuildFacets(snap.Products, snap.Categories)

	return models.FilterMetadata{
		Categories:    s.storefrontCategories(facets.Categories),
		Brands:        filterOptions(facets.Brands),
		CeramicBrands: filterOptions(facets.CeramicBrands),
		Measures:      filterOptions(facets.Measures),
		Availability: &models.AvailabilityData{
			InStock:    facets.InStock,
			OutOfStock: facets.OutOfStock,
		},
		UpstreamError: err != nil,
	}, err
}

// Categories returns the category tree with product counts.
func (s *CatalogService) Categories(ctx context.Context) ([]models.StorefrontCategory, error) {
	snap, err := s.Snapshot(ctx)
	counts := catalog.BuildFacets(snap.Products, snap.Categories).Categories
	return s.storefrontCategories(counts), err
}

// Featured returns highlighted products, either ceramics or everything else.
func (s *CatalogService) Featured(ctx context.Context, ceramics bool) ([]models.StorefrontProduct, error) {
	snap, err := s.Snapshot(ctx)
	return s.ToStorefrontList(catalog.Featured(snap.Products, ceramics)), err
}

// Product looks code up in the snapshot and falls back to the backend, so
// a product added after the snapshot was taken is still reachable.
func (s *CatalogService) Product(ctx context.Context, code string) (models.StorefrontProduct, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return models.StorefrontProduct{}, ErrNotFound
	}

	if snap, err := s.Snapshot(ctx); err == nil {
		if p, ok := catalog.FindByCode(snap.Products, code); ok {
			return s.ToStorefront(p), nil
		}
	}

	p, err := s.backend.GetProduct(ctx, code)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			zap.L().Warn("product lookup failed", zap.String("code", code), zap.Error(err))
		}
		return models.StorefrontProduct{}, err
	}
	return s.ToStorefront(p), nil
}

// Lookup resolves codes against the snapshot. Codes that are not in the
// catalog are returned in missing, in request order.
func (s *CatalogService) Lookup(ctx context.Context, codes []string) (map[string]models.Product, []string, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}

	found := make(map[string]models.Product, len(codes))
	var missing []string
	for _, code := range codes {
		p, ok := catalog.FindByCode(snap.Products, code)
		if !ok {
			missing = append(missing, code)
			continue
		}
		found[strings.TrimSpace(code)] = p
	}
	return found, missing, nil
}

// ToStorefront shapes a product for the browser.
func (s *CatalogService) ToStorefront(p models.Product) models.StorefrontProduct {
	return models.StorefrontProduct{
		Code:        p.Code.String(),
		Slug:        slug.Make(p.Name),
		Name:        p.Name,
		Description: p.Description,
		Brand:       p.Brand,
		Measure:     p.Measure,
		Stock:       p.Stock,
		InStock:     p.InStock(),
		Image:       s.images.Resolve(p.ImageRef),
		Category:    p.CategoryName(),
		Subcategory: p.SubcategoryName(),
	}
}

func (s *CatalogService) ToStorefrontList(products []models.Product) []models.StorefrontProduct {
	out := make([]models.StorefrontProduct, 0, len(products))
	for _, p := range products {
		out = append(out, s.ToStorefront(p))
	}
	return out
}

func (s *CatalogService) storefrontCategories(counts []catalog.CategoryCount) []models.StorefrontCategory {
	out := make([]models.StorefrontCategory, 0, len(counts))
	for _, c := range counts {
		var subs []models.StorefrontCategory
		if len(c.Subcategories) > 0 {
			subs = s.storefrontCategories(c.Subcategories)
		}
		out = append(out, models.StorefrontCategory{
			ID:            c.ID,
			Name:          c.Name,
			Slug:          slug.Make(c.Name),
			ProductCount:  c.Count,
			Subcategories: subs,
		})
	}
	return out
}

func filterOptions(options []catalog.Option) []models.FilterOption {
	out := make([]models.FilterOption, 0, len(options))
	for _, o := range options {
		out = append(out, models.FilterOption{Label: o.Value, Value: o.Value, Count: o.Count})
	}
	return out
}
