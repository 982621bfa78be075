package vacante_controller

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guelo0987/gigante-storefront/config"
	"github.com/guelo0987/gigante-storefront/models"
	"github.com/guelo0987/gigante-storefront/services"
)

const (
	// maxFormMemory is the multipart memory budget; larger parts spill to disk.
	maxFormMemory = 12 << 20
	// maxRequestBody leaves room for the text fields next to a full-size CV.
	maxRequestBody = services.MaxCurriculumSize + 1<<20
)

// CreateVacante godoc
// @Summary Submit a job application
// @Description Validates the application form and forwards it to the backend. Required: nombre, cedula, Correo, telefono, sexo, NivelAcademico, FuncionLaboral, NivelLaboral and a PDF Curriculum of at most 10MB.
// @Tags store
// @Accept multipart/form-data
// @Produce json
// @Param nombre formData string true "Nombre"
// @Param cedula formData string true "Cédula"
// @Param Correo formData string true "Correo electrónico"
// @Param telefono formData string true "Teléfono"
// @Param sexo formData string true "Sexo"
// @Param NivelAcademico formData string true "Nivel Académico"
// @Param AnosExperiencia formData string false "Años de Experiencia"
// @Param FuncionLaboral formData string true "Función Laboral"
// @Param OtraFuncionLaboral formData string false "Otra Función Laboral"
// @Param UltimoSalario formData string false "Último Salario"
// @Param NivelLaboral formData string true "Nivel Laboral"
// @Param OtroNivelLaboral formData string false "Otro Nivel Laboral"
// @Param Curriculum formData file true "Curriculum (PDF, max 10MB)"
// @Success 201 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse "Missing fields or invalid curriculum"
// @Failure 502 {object} models.ApiResponse "Backend unavailable"
// @Router /store/vacantes [post]
func CreateVacante(forms *services.FormService, activity *services.ActivityLogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBody)
		if err := c.Request.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse(c, validationMessage(services.ErrCurriculumTooLarge)))
				return
			}
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid form data"))
			return
		}

		fields := make(map[string]string, len(models.VacanteFields))
		for _, f := range models.VacanteFields {
			fields[f.Name] = c.PostForm(f.Name)
		}

		var upload *services.CurriculumUpload
		file, header, err := c.Request.FormFile(models.VacanteCurriculumField)
		if err == nil {
			defer file.Close()
			upload = &services.CurriculumUpload{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Size:        header.Size,
			}
		}

		if err := services.ValidateVacante(fields, upload); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, validationMessage(err)))
			return
		}

		curriculum, err := readCurriculum(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, validationMessage(err)))
			return
		}

		ctx, cancel := config.WithRequestTimeout(c.Request.Context())
		defer cancel()

		err = forms.SubmitVacante(ctx, models.Vacante{
			Fields:         fields,
			CurriculumName: header.Filename,
			Curriculum:     curriculum,
		})

		logReq := services.ActivityRequest{
			Kind:     models.ActivityVacante,
			Metadata: map[string]any{"funcion_laboral": fields["FuncionLaboral"], "nivel_laboral": fields["NivelLaboral"]},
			Context:  c,
		}
		if err != nil {
			logReq.Status = models.StatusFailed
			logReq.ErrorMessage = err.Error()
			activity.LogActivity(logReq)

			_ = c.Error(err)
			c.JSON(http.StatusBadGateway, models.ErrorResponse(c, "Error al enviar la solicitud. Por favor, intente nuevamente."))
			return
		}
		activity.LogActivity(logReq)

		c.JSON(http.StatusCreated, models.SuccessResponse(c, "¡Solicitud enviada con éxito!", nil))
	}
}

func readCurriculum(file multipart.File) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(file, services.MaxCurriculumSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > services.MaxCurriculumSize {
		return nil, services.ErrCurriculumTooLarge
	}
	return data, nil
}

func validationMessage(err error) string {
	var missing *services.MissingFieldsError
	switch {
	case errors.As(err, &missing):
		return missing.Error()
	case errors.Is(err, services.ErrCurriculumNotPDF):
		return "El currículum debe ser un archivo PDF"
	case errors.Is(err, services.ErrCurriculumTooLarge):
		return "El archivo no puede sobrepasar los 10MB"
	default:
		return "Invalid form data"
	}
}
