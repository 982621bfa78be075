package catalog_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guelo0987/gigante-storefront/catalog"
	"github.com/guelo0987/gigante-storefront/config"
	"github.com/guelo0987/gigante-storefront/models"
	"github.com/guelo0987/gigante-storefront/services"
)

// GetCatalog godoc
// @Summary Browse the catalog
// @Description Filters the catalog by category, subcategories, brands, ceramic brands, measures and a search term. Facets combine with AND, values within a facet with OR.
// @Tags store
// @Produce json
// @Param category query string false "Category name, or 'all'"
// @Param search query string false "Search term (name or category)"
// @Param subcategory query []string false "Subcategory names" collectionFormat(multi)
// @Param brand query []string false "Brands (non-ceramic categories)" collectionFormat(multi)
// @Param ceramicBrand query []string false "Ceramic brands" collectionFormat(multi)
// @Param measure query []string false "Ceramic measures" collectionFormat(multi)
// @Param include_facets query bool false "Include sidebar facets"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(12)
// @Success 200 {object} models.ApiResponse{data=models.CatalogPage}
// @Success 304 "Catalog unchanged"
// @Router /store/catalog [get]
func GetCatalog(svc *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := parsePagination(c)
		state := catalog.FilterStateFromQuery(c.Request.URL.Query())

		ctx, cancel := config.WithRequestTimeout(c.Request.Context())
		defer cancel()

		result, version, err := svc.Filter(ctx, state)
		upstreamErr := err != nil
		if upstreamErr {
			_ = c.Error(err)
		} else if version != "" {
			tag := etag(version, c.Request.URL.RawQuery)
			if c.GetHeader("If-None-Match") == tag {
				c.Status(http.StatusNotModified)
				return
			}
			c.Header("ETag", tag)
		}

		total := len(result.Results)
		start, end := pageBounds(page, limit, total)

		data := models.CatalogPage{
			Products:      svc.ToStorefrontList(result.Results[start:end]),
			ActiveFilters: result.ActiveFilters,
			Category:      state.Category,
			Ceramics:      state.Ceramics(),
			Version:       version,
			UpstreamError: upstreamErr,
		}

		if c.Query("include_facets") == "true" {
			facets, err := svc.Facets(ctx)
			// the filter call above already reported a shared snapshot failure
			if err != nil && !upstreamErr {
				_ = c.Error(err)
			}
			data.Facets = &facets
		}

		message := "Catalog retrieved successfully"
		if upstreamErr {
			message = "Catalog temporarily unavailable"
		}
		c.JSON(http.StatusOK, models.PaginatedResponse(c, message, data, models.NewPagination(page, limit, total)))
	}
}
