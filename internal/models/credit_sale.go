package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditSale is a "fiado" sale: paid over time in a fixed set of monthly
// installments instead of at the counter. Status, TotalPaid and
// RemainingAmount are always derived from the installment list; the stored
// Status column is only a cache refreshed in the same transaction that
// mutates an installment or by the daily status scan.
type CreditSale struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	GUID         string          `gorm:"uniqueIndex;not null" json:"guid"`
	ClientID     *uint           `gorm:"index" json:"client_id"`
	ClientName   string          `gorm:"not null" json:"client_name"`
	Products     string          `gorm:"type:text;not null" json:"products"`
	Subtotal     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	Discount     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"discount"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Installments int             `gorm:"not null" json:"installments"`
	SaleDate     Date            `gorm:"type:date;not null;index" json:"sale_date"`
	FirstDueDate Date            `gorm:"type:date;not null" json:"first_due_date"`
	Status       string          `gorm:"default:active;not null;index" json:"status"`
	CreatedAt    time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	// Associations
	Client       *Client       `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Schedule     []Installment `gorm:"foreignKey:CreditSaleID" json:"schedule,omitempty"`
}

// TableName specifies the table name for CreditSale
func (CreditSale) TableName() string {
	return "credit_sales"
}

// Credit sale status constants
const (
	CreditSaleStatusActive  = "active"
	CreditSaleStatusOverdue = "overdue"
	CreditSaleStatusPaid    = "paid"
)

// Allowed installment count bounds for a credit sale.
const (
	MinInstallments = 1
	MaxInstallments = 24
)

// RecomputeStatus derives the sale status from its installments.
// Paid requires every installment paid and is checked first, so a fully
// settled sale is never reported overdue even when the last payment landed
// after its due date. Overdue wins over active when at least one installment
// is overdue.
func (s *CreditSale) RecomputeStatus(installments []Installment) string {
	if len(installments) == 0 {
		return CreditSaleStatusActive
	}

	allPaid := true
	anyOverdue := false
	for i := range installments {
		switch installments[i].Status {
		case InstallmentStatusPaid:
			// keeps allPaid
		case InstallmentStatusOverdue:
			allPaid = false
			anyOverdue = true
		default:
			allPaid = false
		}
	}

	if allPaid {
		return CreditSaleStatusPaid
	}
	if anyOverdue {
		return CreditSaleStatusOverdue
	}
	return CreditSaleStatusActive
}

// TotalPaid sums the amounts of the paid installments.
func (s *CreditSale) TotalPaid(installments []Installment) decimal.Decimal {
	total := decimal.Zero
	for i := range installments {
		if installments[i].Status == InstallmentStatusPaid {
			total = total.Add(installments[i].Amount)
		}
	}
	return total
}

// RemainingAmount is TotalAmount minus TotalPaid, clamped at zero.
func (s *CreditSale) RemainingAmount(installments []Installment) decimal.Decimal {
	remaining := s.TotalAmount.Sub(s.TotalPaid(installments))
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// InstallmentsSum adds up the full installment schedule. It must equal
// TotalAmount exactly from the moment the schedule is generated; a mismatch
// means the stored data is corrupted.
func (s *CreditSale) InstallmentsSum(installments []Installment) decimal.Decimal {
	total := decimal.Zero
	for i := range installments {
		total = total.Add(installments[i].Amount)
	}
	return total
}

// CreditSaleResponse is the JSON response format for credit sales
type CreditSaleResponse struct {
	ID              uint                  `json:"id"`
	GUID            string                `json:"guid"`
	ClientID        *uint                 `json:"client_id"`
	ClientName      string                `json:"client_name"`
	Products        string                `json:"products"`
	Subtotal        decimal.Decimal       `json:"subtotal"`
	Discount        decimal.Decimal       `json:"discount"`
	TotalAmount     decimal.Decimal       `json:"total_amount"`
	Installments    int                   `json:"installments"`
	SaleDate        Date                  `json:"sale_date"`
	FirstDueDate    Date                  `json:"first_due_date"`
	Status          string                `json:"status"`
	TotalPaid       decimal.Decimal       `json:"total_paid"`
	RemainingAmount decimal.Decimal       `json:"remaining_amount"`
	CreatedAt       time.Time             `json:"created_at"`
	Schedule        []InstallmentResponse `json:"schedule,omitempty"`
}

// ToResponse converts CreditSale to CreditSaleResponse. The derived fields
// are computed from the installment list loaded on the sale.
func (s *CreditSale) ToResponse() CreditSaleResponse {
	resp := CreditSaleResponse{
		ID:              s.ID,
		GUID:            s.GUID,
		ClientID:        s.ClientID,
		ClientName:      s.ClientName,
		Products:        s.Products,
		Subtotal:        s.Subtotal,
		Discount:        s.Discount,
		TotalAmount:     s.TotalAmount,
		Installments:    s.Installments,
		SaleDate:        s.SaleDate,
		FirstDueDate:    s.FirstDueDate,
		Status:          s.RecomputeStatus(s.Schedule),
		TotalPaid:       s.TotalPaid(s.Schedule),
		RemainingAmount: s.RemainingAmount(s.Schedule),
		CreatedAt:       s.CreatedAt,
	}

	for i := range s.Schedule {
		resp.Schedule = append(resp.Schedule, s.Schedule[i].ToResponse())
	}

	return resp
}
