package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is an outgoing payment of the shop (rent, supplies, salaries).
type Expense struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Description string          `gorm:"not null" json:"description"`
	Category    string          `gorm:"not null;index" json:"category"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Date        Date            `gorm:"type:date;not null;index" json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName specifies the table name for Expense
func (Expense) TableName() string {
	return "expenses"
}

// Expense category constants
const (
	ExpenseCategoryRent     = "alquiler"
	ExpenseCategorySupplies = "insumos"
	ExpenseCategorySalary   = "salarios"
	ExpenseCategoryServices = "servicios"
	ExpenseCategoryOther    = "otros"
)

// ExpenseResponse is the JSON response format for expenses
type ExpenseResponse struct {
	ID          uint            `json:"id"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Date        Date            `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToResponse converts Expense to ExpenseResponse
func (e *Expense) ToResponse() ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Category:    e.Category,
		Amount:      e.Amount,
		Date:        e.Date,
		CreatedAt:   e.CreatedAt,
	}
}
