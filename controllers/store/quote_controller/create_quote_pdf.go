package quote_controller

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/guelo0987/gigante-storefront/config"
	"github.com/guelo0987/gigante-storefront/models"
	"github.com/guelo0987/gigante-storefront/services"
)

// CreateQuotePDF godoc
// @Summary Download a quote (cotización) PDF
// @Description Resolves the requested product codes against the catalog and renders a quote PDF. Quantities below 1 are raised to 1.
// @Tags store
// @Accept json
// @Produce application/pdf
// @Param request body models.QuoteRequest true "Quote items"
// @Success 200 "PDF file"
// @Failure 400 {object} models.ApiResponse "Invalid request"
// @Failure 422 {object} models.ApiResponse "Unknown product codes"
// @Failure 502 {object} models.ApiResponse "Catalog unavailable"
// @Failure 500 {object} models.ApiResponse "Server error"
// @Router /store/quotes/pdf [post]
func CreateQuotePDF(svc *services.QuoteService, activity *services.ActivityLogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.QuoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body: at least one item with a product code is required"))
			return
		}

		ctx, cancel := config.WithRequestTimeout(c.Request.Context())
		defer cancel()

		quote, err := svc.BuildQuote(ctx, req)
		if err != nil {
			var unknown *services.UnknownProductsError
			if errors.As(err, &unknown) {
				c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse(c, "Unknown products: "+strings.Join(unknown.Codes, ", ")))
				return
			}
			_ = c.Error(err)
			c.JSON(http.StatusBadGateway, models.ErrorResponse(c, "Catalog temporarily unavailable"))
			return
		}

		doc, err := services.RenderQuotePDF(quote)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to generate quote"))
			return
		}

		activity.LogActivity(services.ActivityRequest{
			Kind:        models.ActivityQuote,
			ResultCount: len(quote.Lines),
			Metadata: map[string]any{
				"quote_number": quote.Number,
				"units":        quote.TotalUnits(),
			},
			Context: c,
		})
		zap.L().Info("quote generated", zap.String("quote", quote.Number), zap.Int("lines", len(quote.Lines)))

		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="cotizacion-%s.pdf"`, quote.Number))
		c.Data(http.StatusOK, "application/pdf", doc)
	}
}
