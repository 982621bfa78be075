package product_controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/guelo0987/gigante-storefront/config"
	"github.com/guelo0987/gigante-storefront/models"
	"github.com/guelo0987/gigante-storefront/services"
)

// GetFeaturedProducts godoc
// @Summary Get featured products
// @Description Featured ceramics (ceramics=true) or featured products outside the ceramics category
// @Tags store
// @Produce json
// @Param ceramics query bool false "Ceramics instead of general products" default(false)
// @Success 200 {object} models.ApiResponse{data=[]models.StorefrontProduct}
// @Failure 400 {object} models.ApiResponse
// @Router /store/products/featured [get]
func GetFeaturedProducts(svc *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ceramics, err := strconv.ParseBool(c.DefaultQuery("ceramics", "false"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "ceramics must be true or false"))
			return
		}

		ctx, cancel := config.WithRequestTimeout(c.Request.Context())
		defer cancel()

		products, err := svc.Featured(ctx, ceramics)
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusOK, models.SuccessResponse(c, "Featured products temporarily unavailable", products))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(c, "Featured products retrieved successfully", products))
	}
}
