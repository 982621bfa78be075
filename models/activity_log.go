package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Activity kinds recorded by the storefront.
const (
	ActivitySearch  = "search"
	ActivityVacante = "vacante_submitted"
	ActivityMensaje = "mensaje_submitted"
	ActivityQuote   = "quote_generated"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// StorefrontActivity is one customer action worth keeping for analytics:
// a search and its hit count, or a form submission and its outcome.
type StorefrontActivity struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Kind         string         `json:"kind" gorm:"not null;index:idx_activity_kind_date,priority:1"`
	Query        string         `json:"query,omitempty" gorm:"index"`
	ResultCount  int            `json:"result_count"`
	Metadata     datatypes.JSON `json:"metadata,omitempty"`
	Status       string         `json:"status" gorm:"not null"` // success, failed
	ErrorMessage string         `json:"error_message,omitempty"`
	IPAddress    string         `json:"ip_address"`
	UserAgent    string         `json:"user_agent"`
	DeviceType   string         `json:"device_type"` // mobile, tablet, desktop
	Browser      string         `json:"browser"`
	OS           string         `json:"os"`
	CreatedAt    time.Time      `json:"created_at" gorm:"autoCreateTime;index:idx_activity_kind_date,priority:2,sort:desc"`
}

// BeforeCreate hook - auto-generate UUID v7
func (a *StorefrontActivity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.Must(uuid.NewV7())
	}
	if a.Status == "" {
		a.Status = StatusSuccess
	}
	return nil
}

// TableName specifies the table name
func (StorefrontActivity) TableName() string {
	return "storefront_activity"
}

// TopSearch is an aggregated search term with how often it was used.
type TopSearch struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}
