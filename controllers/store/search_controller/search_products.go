package search_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guelo0987/gigante-storefront/catalog"
	"github.com/guelo0987/gigante-storefront/config"
	"github.com/guelo0987/gigante-storefront/models"
	"github.com/guelo0987/gigante-storefront/services"
)

// SearchProducts godoc
// @Summary Type-ahead product search
// @Description Ranks products by relevance to q (name 10, brand 5, category 3, ceramics +2) and returns the top 5. Queries shorter than 2 characters return no results.
// @Tags store
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {object} models.ApiResponse{data=models.SearchResults}
// @Router /store/search [get]
func SearchProducts(svc *services.SearchService, activity *services.ActivityLogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")

		ctx, cancel := config.WithRequestTimeout(c.Request.Context())
		defer cancel()

		results, err := svc.Search(ctx, query)
		if err != nil {
			_ = c.Error(err)
		}

		if !catalog.QueryTooShort(query) && activity.Enabled() {
			req := services.ActivityRequest{
				Kind:        models.ActivitySearch,
				Query:       query,
				ResultCount: len(results.Results),
				Metadata:    map[string]any{"cached": results.Cached},
				Context:     c.Copy(),
			}
			if err != nil {
				req.Status = models.StatusFailed
				req.ErrorMessage = err.Error()
			}
			activity.LogActivityAsync(req)
		}

		message := "Search completed"
		if err != nil {
			message = "Search temporarily unavailable"
		}
		c.JSON(http.StatusOK, models.SuccessResponse(c, message, results))
	}
}
