package product_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guelo0987/gigante-storefront/config"
	"github.com/guelo0987/gigante-storefront/models"
	"github.com/guelo0987/gigante-storefront/services"
)

// GetProductByCode godoc
// @Summary Get single product details for storefront
// @Description Get product information by its code
// @Tags store
// @Produce json
// @Param code path string true "Product code"
// @Success 200 {object} models.ApiResponse{data=models.StorefrontProduct}
// @Failure 404 {object} models.ApiResponse
// @Failure 502 {object} models.ApiResponse
// @Router /store/products/{code} [get]
func GetProductByCode(svc *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := config.WithRequestTimeout(c.Request.Context())
		defer cancel()

		product, err := svc.Product(ctx, c.Param("code"))
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
				return
			}
			_ = c.Error(err)
			c.JSON(http.StatusBadGateway, models.ErrorResponse(c, "Product temporarily unavailable"))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(c, "Product retrieved successfully", product))
	}
}
