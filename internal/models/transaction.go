package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a completed point-of-sale event. Installment payments are
// also recorded here as echo rows for backward-compatible display; those
// carry SourceCreditInstallment so the balance report can tell them apart
// from genuine counter sales without guessing from free text.
type Transaction struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	ClientID      *uint           `gorm:"index" json:"client_id"`
	ClientName    string          `json:"client_name"`
	Description   string          `gorm:"not null" json:"description"`
	Kind          string          `gorm:"not null;index" json:"kind"`
	Source        string          `gorm:"default:pos;not null;index" json:"source"`
	Value         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"value"`
	Discount      decimal.Decimal `gorm:"type:decimal(10,2)" json:"discount"`
	PaymentMethod string          `gorm:"not null" json:"payment_method"`
	Date          Date            `gorm:"type:date;not null;index" json:"date"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	// Associations
	Client *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}

// Transaction kind constants
const (
	TransactionKindService = "service"
	TransactionKindProduct = "product"
)

// Transaction source constants. SourceCreditInstallment marks the echo rows
// written when a credit-sale installment is paid.
const (
	TransactionSourcePOS               = "pos"
	TransactionSourceCreditInstallment = "credit_installment"
)

// Payment method constants
const (
	PaymentMethodCash     = "efectivo"
	PaymentMethodCard     = "tarjeta"
	PaymentMethodTransfer = "transferencia"
)

// IsCreditInstallmentEcho returns true for transactions that mirror a paid
// installment. The balance report skips them: the installment itself is the
// revenue record.
func (t *Transaction) IsCreditInstallmentEcho() bool {
	return t.Source == TransactionSourceCreditInstallment
}

// TransactionResponse is the JSON response format for transactions
type TransactionResponse struct {
	ID            uint            `json:"id"`
	ClientID      *uint           `json:"client_id"`
	ClientName    string          `json:"client_name"`
	Description   string          `json:"description"`
	Kind          string          `json:"kind"`
	Source        string          `json:"source"`
	Value         decimal.Decimal `json:"value"`
	Discount      decimal.Decimal `json:"discount"`
	PaymentMethod string          `json:"payment_method"`
	Date          Date            `json:"date"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToResponse converts Transaction to TransactionResponse
func (t *Transaction) ToResponse() TransactionResponse {
	return TransactionResponse{
		ID:            t.ID,
		ClientID:      t.ClientID,
		ClientName:    t.ClientName,
		Description:   t.Description,
		Kind:          t.Kind,
		Source:        t.Source,
		Value:         t.Value,
		Discount:      t.Discount,
		PaymentMethod: t.PaymentMethod,
		Date:          t.Date,
		CreatedAt:     t.CreatedAt,
	}
}
