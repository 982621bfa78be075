package search_controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/guelo0987/gigante-storefront/config"
	"github.com/guelo0987/gigante-storefront/models"
	"github.com/guelo0987/gigante-storefront/services"
)

// GetPopularSearches godoc
// @Summary Most frequent searches
// @Description Returns the most searched terms over the last N days
// @Tags store
// @Produce json
// @Param days query int false "Lookback window in days" default(7)
// @Param limit query int false "Number of terms" default(10)
// @Success 200 {object} models.ApiResponse{data=[]models.TopSearch}
// @Failure 500 {object} models.ApiResponse
// @Router /store/search/popular [get]
func GetPopularSearches(activity *services.ActivityLogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
		if err != nil || days < 1 || days > 90 {
			days = 7
		}
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
		if err != nil || limit < 1 || limit > 50 {
			limit = 10
		}

		ctx, cancel := config.WithRequestTimeout(c.Request.Context())
		defer cancel()

		top, err := activity.TopSearches(ctx, time.Now().AddDate(0, 0, -days), limit)
		if err != nil {
			zap.L().Error("popular searches query failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch popular searches"))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(c, "Popular searches retrieved successfully", top))
	}
}
