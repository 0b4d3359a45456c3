package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestTotalPaidPlusRemainingEqualsTotal(t *testing.T) {
	sale := &CreditSale{TotalAmount: dec("100.00")}

	schedule := []Installment{
		{Number: 1, Amount: dec("33.33"), Status: InstallmentStatusPaid},
		{Number: 2, Amount: dec("33.33"), Status: InstallmentStatusOverdue},
		{Number: 3, Amount: dec("33.34"), Status: InstallmentStatusPending},
	}

	paid := sale.TotalPaid(schedule)
	remaining := sale.RemainingAmount(schedule)

	assert.Equal(t, "33.33", paid.StringFixed(2))
	assert.Equal(t, "66.67", remaining.StringFixed(2))
	assert.True(t, paid.Add(remaining).Equal(sale.TotalAmount))
}

func TestRemainingAmountNeverNegative(t *testing.T) {
	// Corrupted data: paid more than the sale total
	sale := &CreditSale{TotalAmount: dec("50.00")}
	schedule := []Installment{
		{Number: 1, Amount: dec("60.00"), Status: InstallmentStatusPaid},
	}

	assert.True(t, sale.RemainingAmount(schedule).IsZero())
}

func TestInstallmentsSumEqualsTotal(t *testing.T) {
	sale := &CreditSale{TotalAmount: dec("99.99")}
	schedule := []Installment{
		{Amount: dec("33.33")},
		{Amount: dec("33.33")},
		{Amount: dec("33.33")},
	}

	assert.True(t, sale.InstallmentsSum(schedule).Equal(sale.TotalAmount))
}
