package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/guelo0987/gigante-storefront/models"
)

// MaxCurriculumSize is the largest CV accepted with a job application.
const MaxCurriculumSize = 10 * 1024 * 1024

var (
	ErrCurriculumNotPDF   = errors.New("curriculum must be a PDF file")
	ErrCurriculumTooLarge = errors.New("curriculum exceeds 10MB")
)

// MissingFieldsError lists the labels of required form fields left empty.
type MissingFieldsError struct {
	Labels []string
}

func (e *MissingFieldsError) Error() string {
	return "Complete los campos obligatorios: " + strings.Join(e.Labels, ", ")
}

// InvalidFieldError is a form field whose value is present but unusable.
type InvalidFieldError struct {
	Field   string
	Message string
}

func (e *InvalidFieldError) Error() string {
	return e.Message
}

// FormSender forwards submitted forms to the backend.
type FormSender interface {
	CreateVacante(ctx context.Context, v models.Vacante) error
	SendMensaje(ctx context.Context, msg models.MensajeRequest) error
}

// FormService validates and forwards the vacantes and contact forms.
type FormService struct {
	backend FormSender
}

func NewFormService(backend FormSender) *FormService {
	return &FormService{backend: backend}
}

// CurriculumUpload describes the uploaded CV before it is read.
type CurriculumUpload struct {
	Filename    string
	ContentType string
	Size        int64
}

// ValidateVacante checks the required fields and the CV. Missing fields
// are reported together, in form order, with the CV last.
func ValidateVacante(fields map[string]string, cv *CurriculumUpload) error {
	var missing []string
	for _, f := range models.VacanteFields {
		if f.Required && strings.TrimSpace(fields[f.Name]) == "" {
			missing = append(missing, f.Label)
		}
	}
	if cv == nil || cv.Size == 0 {
		missing = append(missing, models.VacanteCurriculumLabel)
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Labels: missing}
	}

	if !isPDF(cv.ContentType) {
		return ErrCurriculumNotPDF
	}
	if cv.Size > MaxCurriculumSize {
		return ErrCurriculumTooLarge
	}
	return nil
}

func isPDF(contentType string) bool {
	mediaType, _, _ := strings.Cut(contentType, ";")
	return strings.EqualFold(strings.TrimSpace(mediaType), "application/pdf")
}

// SubmitVacante forwards a validated application.
func (s *FormService) SubmitVacante(ctx context.Context, v models.Vacante) error {
	if len(v.Curriculum) > MaxCurriculumSize {
		return ErrCurriculumTooLarge
	}
	if err := s.backend.CreateVacante(ctx, v); err != nil {
		zap.L().Error("failed to forward vacante", zap.Error(err))
		return fmt.Errorf("submit vacante: %w", err)
	}
	zap.L().Info("vacante forwarded", zap.String("curriculum", v.CurriculumName))
	return nil
}

// SubmitMensaje validates and forwards a contact message.
func (s *FormService) SubmitMensaje(ctx context.Context, msg models.MensajeRequest) error {
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Descripcion = strings.TrimSpace(msg.Descripcion)

	var missing []string
	if msg.Email == "" {
		missing = append(missing, "Correo electrónico")
	}
	if msg.Descripcion == "" {
		missing = append(missing, "Mensaje")
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Labels: missing}
	}
	if !strings.Contains(msg.Email, "@") {
		return &InvalidFieldError{Field: "email", Message: "Correo electrónico inválido"}
	}

	if err := s.backend.SendMensaje(ctx, msg); err != nil {
		zap.L().Error("failed to forward mensaje", zap.Error(err))
		return fmt.Errorf("submit mensaje: %w", err)
	}
	return nil
}
