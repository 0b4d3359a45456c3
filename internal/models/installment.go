package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Installment is one scheduled partial payment of a credit sale. It is
// exclusively owned by its CreditSale: created together with the sale in one
// transaction and destroyed only as a cascade of destroying the sale.
type Installment struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	CreditSaleID uint            `gorm:"not null;index" json:"credit_sale_id"`
	Number       int             `gorm:"not null" json:"number"`
	Amount       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	DueDate      Date            `gorm:"type:date;not null;index" json:"due_date"`
	Status       string          `gorm:"default:pending;not null;index" json:"status"`
	PaidDate     *Date           `gorm:"type:date" json:"paid_date"`
	PaymentMethod *string        `json:"payment_method"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	// Associations
	CreditSale CreditSale `gorm:"foreignKey:CreditSaleID" json:"-"`
}

// TableName specifies the table name for Installment
func (Installment) TableName() string {
	return "installments"
}

// Installment status constants
const (
	InstallmentStatusPending = "pending"
	InstallmentStatusOverdue = "overdue"
	InstallmentStatusPaid    = "paid"
)

// IsPaid returns true once the installment has been settled.
func (i *Installment) IsPaid() bool {
	return i.Status == InstallmentStatusPaid
}

// IsDueBefore returns true if the installment is unpaid and its due date is
// strictly before the given calendar date.
func (i *Installment) IsDueBefore(today Date) bool {
	return !i.IsPaid() && i.DueDate.Before(today)
}

// MayPay returns true if the installment can still be settled.
func (i *Installment) MayPay() bool {
	return i.Status == InstallmentStatusPending || i.Status == InstallmentStatusOverdue
}

// MayExpire returns true if the installment can transition to overdue.
func (i *Installment) MayExpire() bool {
	return i.Status == InstallmentStatusPending
}

// InstallmentResponse is the JSON response format for installments
type InstallmentResponse struct {
	ID            uint            `json:"id"`
	CreditSaleID  uint            `json:"credit_sale_id"`
	Number        int             `json:"number"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       Date            `json:"due_date"`
	Status        string          `json:"status"`
	PaidDate      *Date           `json:"paid_date"`
	PaymentMethod *string         `json:"payment_method"`
}

// ToResponse converts Installment to InstallmentResponse
func (i *Installment) ToResponse() InstallmentResponse {
	return InstallmentResponse{
		ID:            i.ID,
		CreditSaleID:  i.CreditSaleID,
		Number:        i.Number,
		Amount:        i.Amount,
		DueDate:       i.DueDate,
		Status:        i.Status,
		PaidDate:      i.PaidDate,
		PaymentMethod: i.PaymentMethod,
	}
}
