package mensaje_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guelo0987/gigante-storefront/config"
	"github.com/guelo0987/gigante-storefront/models"
	"github.com/guelo0987/gigante-storefront/services"
)

// SendMensaje godoc
// @Summary Send a contact message
// @Description Forwards the contact form (email, descripcion) to the backend
// @Tags store
// @Accept json
// @Produce json
// @Param request body models.MensajeRequest true "Contact message"
// @Success 201 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 502 {object} models.ApiResponse
// @Router /store/mensajes [post]
func SendMensaje(forms *services.FormService, activity *services.ActivityLogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.MensajeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
			return
		}

		ctx, cancel := config.WithRequestTimeout(c.Request.Context())
		defer cancel()

		err := forms.SubmitMensaje(ctx, req)

		var missing *services.MissingFieldsError
		var invalid *services.InvalidFieldError
		switch {
		case errors.As(err, &missing):
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, missing.Error()))
			return
		case errors.As(err, &invalid):
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, invalid.Error()))
			return
		case err != nil:
			activity.LogActivity(services.ActivityRequest{
				Kind:         models.ActivityMensaje,
				Status:       models.StatusFailed,
				ErrorMessage: err.Error(),
				Context:      c,
			})
			_ = c.Error(err)
			c.JSON(http.StatusBadGateway, models.ErrorResponse(c, "Error al enviar el mensaje. Por favor, intente nuevamente."))
			return
		}

		activity.LogActivity(services.ActivityRequest{Kind: models.ActivityMensaje, Context: c})
		c.JSON(http.StatusCreated, models.SuccessResponse(c, "¡Mensaje enviado con éxito!", nil))
	}
}
