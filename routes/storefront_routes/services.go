package storefront_routes

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/guelo0987/gigante-storefront/cache"
	"github.com/guelo0987/gigante-storefront/config"
	"github.com/guelo0987/gigante-storefront/observability"
	"github.com/guelo0987/gigante-storefront/services"
)

// NewStoreServices wires the storefront services around one backend client.
// rdb and db may be nil.
func NewStoreServices(cfg config.AppConfig, rdb *redis.Client, db *gorm.DB, metrics *observability.StoreMetrics) StoreServices {
	backend := services.NewBackendClient(cfg.APIBaseURL, cfg.UpstreamTimeout, metrics)
	catalogSvc := services.NewCatalogService(backend, cfg.CatalogTTL, services.NewImageResolver(cfg.ImageBaseURL), metrics)

	return StoreServices{
		Catalog:  catalogSvc,
		Search:   services.NewSearchService(catalogSvc, cache.NewSearchCache(rdb, cfg.SearchCacheTTL), metrics),
		Quotes:   services.NewQuoteService(catalogSvc),
		Forms:    services.NewFormService(backend),
		Activity: services.NewActivityLogService(db),
	}
}
