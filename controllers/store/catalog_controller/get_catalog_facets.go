package catalog_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guelo0987/gigante-storefront/config"
	"github.com/guelo0987/gigante-storefront/models"
	"github.com/guelo0987/gigante-storefront/services"
)

// GetCatalogFacets godoc
// @Summary Get catalog filter options
// @Description Returns the category tree with counts, brand options, ceramic brand and measure options, and availability counts
// @Tags store
// @Produce json
// @Success 200 {object} models.ApiResponse{data=models.FilterMetadata}
// @Router /store/catalog/facets [get]
func GetCatalogFacets(svc *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := config.WithRequestTimeout(c.Request.Context())
		defer cancel()

		facets, err := svc.Facets(ctx)
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusOK, models.SuccessResponse(c, "Filters temporarily unavailable", facets))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(c, "Filters retrieved successfully", facets))
	}
}
