package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Appointment is a scheduled visit. StartsAt is the only timestamp-level
// field in the domain; everything financial works on calendar dates.
type Appointment struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	ClientID   *uint           `gorm:"index" json:"client_id"`
	ClientName string          `gorm:"not null" json:"client_name"`
	Service    string          `gorm:"not null" json:"service"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	StartsAt   time.Time       `gorm:"not null;index" json:"starts_at"`
	Status     string          `gorm:"default:scheduled;not null;index" json:"status"`
	Notes      *string         `gorm:"type:text" json:"notes"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	// Associations
	Client *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}

// TableName specifies the table name for Appointment
func (Appointment) TableName() string {
	return "appointments"
}

// Appointment status constants
const (
	AppointmentStatusScheduled = "scheduled"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusCancelled = "cancelled"
)

// MayComplete returns true if the appointment can be marked completed
func (a *Appointment) MayComplete() bool {
	return a.Status == AppointmentStatusScheduled
}

// MayCancel returns true if the appointment can be cancelled
func (a *Appointment) MayCancel() bool {
	return a.Status == AppointmentStatusScheduled
}

// AppointmentResponse is the JSON response format for appointments
type AppointmentResponse struct {
	ID         uint            `json:"id"`
	ClientID   *uint           `json:"client_id"`
	ClientName string          `json:"client_name"`
	Service    string          `json:"service"`
	Price      decimal.Decimal `json:"price"`
	StartsAt   time.Time       `json:"starts_at"`
	Status     string          `json:"status"`
	Notes      *string         `json:"notes"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ToResponse converts Appointment to AppointmentResponse
func (a *Appointment) ToResponse() AppointmentResponse {
	return AppointmentResponse{
		ID:         a.ID,
		ClientID:   a.ClientID,
		ClientName: a.ClientName,
		Service:    a.Service,
		Price:      a.Price,
		StartsAt:   a.StartsAt,
		Status:     a.Status,
		Notes:      a.Notes,
		CreatedAt:  a.CreatedAt,
	}
}
