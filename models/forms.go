package models

// ═══════════════════════════════════════════════════════════
// Request Models
// ═══════════════════════════════════════════════════════════

// MensajeRequest is the contact form payload.
type MensajeRequest struct {
	Email       string `json:"email" example:"cliente@correo.com"`
	Descripcion string `json:"descripcion" example:"Quisiera información sobre porcelanatos"`
}

// QuoteItemRequest is one line of a quote request.
type QuoteItemRequest struct {
	Code     string `json:"code" binding:"required" example:"01-01-1313"`
	Quantity int    `json:"quantity" example:"5"`
}

// QuoteRequest asks for a quote ("cotización") PDF.
type QuoteRequest struct {
	CustomerName  string             `json:"customer_name" example:"Juan Pérez"`
	CustomerEmail string             `json:"customer_email" example:"juan@correo.com"`
	Items         []QuoteItemRequest `json:"items" binding:"required,min=1,dive"`
}

// QuoteLine is a resolved quote line.
type QuoteLine struct {
	Code     string
	Name     string
	Brand    string
	Measure  string
	Quantity int
}

// VacanteField describes one text field of the job application form.
type VacanteField struct {
	Name     string
	Label    string
	Required bool
}

// VacanteFields lists the job application fields in form order. The form
// names are the ones the backend expects.
var VacanteFields = []VacanteField{
	{Name: "nombre", Label: "Nombre", Required: true},
	{Name: "cedula", Label: "Cédula", Required: true},
	{Name: "Correo", Label: "Correo electrónico", Required: true},
	{Name: "telefono", Label: "Teléfono", Required: true},
	{Name: "sexo", Label: "Sexo", Required: true},
	{Name: "NivelAcademico", Label: "Nivel Académico", Required: true},
	{Name: "AnosExperiencia", Label: "Años de Experiencia"},
	{Name: "FuncionLaboral", Label: "Función Laboral", Required: true},
	{Name: "OtraFuncionLaboral", Label: "Otra Función Laboral"},
	{Name: "UltimoSalario", Label: "Último Salario"},
	{Name: "NivelLaboral", Label: "Nivel Laboral", Required: true},
	{Name: "OtroNivelLaboral", Label: "Otro Nivel Laboral"},
}

// VacanteCurriculumField is the form name of the CV upload.
const VacanteCurriculumField = "Curriculum"

// VacanteCurriculumLabel is its display label.
const VacanteCurriculumLabel = "Curriculum"

// Vacante is a validated job application ready to forward.
type Vacante struct {
	Fields         map[string]string
	CurriculumName string
	Curriculum     []byte
}
