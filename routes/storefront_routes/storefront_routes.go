package storefront_routes

import (
	"github.com/gin-gonic/gin"

	store_catalog "github.com/guelo0987/gigante-storefront/controllers/store/catalog_controller"
	store_category "github.com/guelo0987/gigante-storefront/controllers/store/category_controller"
	store_mensaje "github.com/guelo0987/gigante-storefront/controllers/store/mensaje_controller"
	store_product "github.com/guelo0987/gigante-storefront/controllers/store/product_controller"
	store_quote "github.com/guelo0987/gigante-storefront/controllers/store/quote_controller"
	store_search "github.com/guelo0987/gigante-storefront/controllers/store/search_controller"
	store_vacante "github.com/guelo0987/gigante-storefront/controllers/store/vacante_controller"
	"github.com/guelo0987/gigante-storefront/services"
)

// StoreServices are the handlers' dependencies.
type StoreServices struct {
	Catalog  *services.CatalogService
	Search   *services.SearchService
	Quotes   *services.QuoteService
	Forms    *services.FormService
	Activity *services.ActivityLogService

	// FormMiddleware runs before the form submission handlers only.
	FormMiddleware []gin.HandlerFunc
}

func SetupStorefrontRoutes(router *gin.RouterGroup, svc StoreServices) {
	// Storefront routes (public, no auth required)
	store := router.Group("/store")

	// Catalog routes
	catalogGroup := store.Group("/catalog")
	{
		// Filtered, paginated
		catalogGroup.GET("", store_catalog.GetCatalog(svc.Catalog))
		catalogGroup.GET("/facets", store_catalog.GetCatalogFacets(svc.Catalog))
	}

	// Search routes
	search := store.Group("/search")
	{
		search.GET("", store_search.SearchProducts(svc.Search, svc.Activity))
		search.GET("/popular", store_search.GetPopularSearches(svc.Activity))
	}

	// Product routes
	products := store.Group("/products")
	{
		products.GET("/featured", store_product.GetFeaturedProducts(svc.Catalog))
		products.GET("/:code", store_product.GetProductByCode(svc.Catalog)) // Single product
	}

	store.GET("/categories", store_category.GetCategories(svc.Catalog))

	store.POST("/quotes/pdf", store_quote.CreateQuotePDF(svc.Quotes, svc.Activity))

	// Form submissions
	forms := store.Group("", svc.FormMiddleware...)
	{
		forms.POST("/vacantes", store_vacante.CreateVacante(svc.Forms, svc.Activity))
		forms.POST("/mensajes", store_mensaje.SendMensaje(svc.Forms, svc.Activity))
	}
}
