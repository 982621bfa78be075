package category_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guelo0987/gigante-storefront/config"
	"github.com/guelo0987/gigante-storefront/models"
	"github.com/guelo0987/gigante-storefront/services"
)

// GetCategories godoc
// @Summary Get storefront categories
// @Description Get all categories with their subcategories and product counts
// @Tags store
// @Produce json
// @Success 200 {object} models.ApiResponse{data=[]models.StorefrontCategory}
// @Router /store/categories [get]
func GetCategories(svc *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := config.WithRequestTimeout(c.Request.Context())
		defer cancel()

		categories, err := svc.Categories(ctx)
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusOK, models.SuccessResponse(c, "Categories temporarily unavailable", categories))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(c, "Categories retrieved successfully", categories))
	}
}
