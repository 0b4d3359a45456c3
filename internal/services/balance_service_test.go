package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberia-app/barberia-api/internal/models"
)

func TestBuildBalance_MergesAllThreeSources(t *testing.T) {
	day := models.NewDate(2024, 3, 1)

	transactions := []models.Transaction{
		{ID: 1, Description: "Corte clásico", Kind: models.TransactionKindService,
			Source: models.TransactionSourcePOS, Value: d("50.00"), Date: day, ClientName: "Don Julio"},
	}
	installments := []models.Installment{
		{ID: 9, Number: 3, Amount: d("33.34"), Status: models.InstallmentStatusPaid, PaidDate: &day,
			CreditSale: models.CreditSale{ClientName: "Doña Rosa", Products: "Pomada", Installments: 3}},
	}
	expenses := []models.Expense{
		{ID: 4, Description: "Navajas", Category: models.ExpenseCategorySupplies, Amount: d("10.00"), Date: day},
	}

	report := BuildBalance(transactions, installments, expenses, nil)

	require.Len(t, report.Items, 3)
	assert.Equal(t, "83.34", report.TotalRevenue.StringFixed(2))
	assert.Equal(t, "10.00", report.TotalExpenses.StringFixed(2))
	assert.Equal(t, "73.34", report.NetProfit.StringFixed(2))

	// Same date: the expense sorts before both revenues
	assert.Equal(t, models.BalanceItemExpense, report.Items[0].Type)
	assert.Equal(t, models.BalanceItemRevenue, report.Items[1].Type)
	assert.Equal(t, models.BalanceItemRevenue, report.Items[2].Type)
}

func TestBuildBalance_SkipsInstallmentEchoTransactions(t *testing.T) {
	day := models.NewDate(2024, 3, 1)

	transactions := []models.Transaction{
		{ID: 1, Description: "Corte", Source: models.TransactionSourcePOS, Value: d("50.00"), Date: day},
		{ID: 2, Description: "Abono fiado de Doña Rosa: cuota 3 de 3",
			Source: models.TransactionSourceCreditInstallment, Value: d("33.34"), Date: day},
	}
	installments := []models.Installment{
		{ID: 9, Number: 3, Amount: d("33.34"), Status: models.InstallmentStatusPaid, PaidDate: &day,
			CreditSale: models.CreditSale{ClientName: "Doña Rosa", Products: "Pomada", Installments: 3}},
	}

	report := BuildBalance(transactions, installments, nil, nil)

	// The echo row is dropped, the installment itself is the revenue record
	require.Len(t, report.Items, 2)
	assert.Equal(t, "83.34", report.TotalRevenue.StringFixed(2))
}

func TestBuildBalance_RevenueKeyedByPaidDate(t *testing.T) {
	dueDate := models.NewDate(2024, 2, 1)
	paidDate := models.NewDate(2024, 3, 20)

	installments := []models.Installment{
		{ID: 1, Number: 1, Amount: d("40.00"), DueDate: dueDate,
			Status: models.InstallmentStatusPaid, PaidDate: &paidDate,
			CreditSale: models.CreditSale{Products: "Cera"}},
	}

	// Range covers the paid date but not the due date
	rng := &models.DateRange{Start: models.NewDate(2024, 3, 1), End: models.NewDate(2024, 3, 31)}
	report := BuildBalance(nil, installments, nil, rng)
	require.Len(t, report.Items, 1)
	assert.Equal(t, "2024-03-20", report.Items[0].Date.String())

	// Range covering only the due date must exclude it
	rng = &models.DateRange{Start: models.NewDate(2024, 2, 1), End: models.NewDate(2024, 2, 29)}
	report = BuildBalance(nil, installments, nil, rng)
	assert.Empty(t, report.Items)
}

func TestBuildBalance_UnpaidInstallmentsIgnored(t *testing.T) {
	installments := []models.Installment{
		{ID: 1, Number: 1, Amount: d("40.00"), Status: models.InstallmentStatusPending},
		{ID: 2, Number: 2, Amount: d("40.00"), Status: models.InstallmentStatusOverdue},
	}

	report := BuildBalance(nil, installments, nil, nil)
	assert.Empty(t, report.Items)
	assert.True(t, report.TotalRevenue.IsZero())
}

func TestBuildBalance_RangeEndsInclusive(t *testing.T) {
	start := models.NewDate(2024, 3, 1)
	end := models.NewDate(2024, 3, 31)
	rng := &models.DateRange{Start: start, End: end}

	transactions := []models.Transaction{
		{ID: 1, Value: d("10.00"), Date: start, Source: models.TransactionSourcePOS},
		{ID: 2, Value: d("20.00"), Date: end, Source: models.TransactionSourcePOS},
		{ID: 3, Value: d("99.00"), Date: models.NewDate(2024, 2, 29), Source: models.TransactionSourcePOS},
		{ID: 4, Value: d("99.00"), Date: models.NewDate(2024, 4, 1), Source: models.TransactionSourcePOS},
	}

	report := BuildBalance(transactions, nil, nil, rng)
	require.Len(t, report.Items, 2)
	assert.Equal(t, "30.00", report.TotalRevenue.StringFixed(2))
}

func TestBuildBalance_SortNewestFirstStable(t *testing.T) {
	d1 := models.NewDate(2024, 3, 1)
	d2 := models.NewDate(2024, 3, 5)

	transactions := []models.Transaction{
		{ID: 2, Value: d("10.00"), Date: d1, Source: models.TransactionSourcePOS},
		{ID: 1, Value: d("10.00"), Date: d1, Source: models.TransactionSourcePOS},
	}
	expenses := []models.Expense{
		{ID: 5, Amount: d("3.00"), Date: d2},
		{ID: 6, Amount: d("4.00"), Date: d1},
	}

	report := BuildBalance(transactions, nil, expenses, nil)
	require.Len(t, report.Items, 4)

	// Newest date first
	assert.Equal(t, "2024-03-05", report.Items[0].Date.String())
	// Then the expense on the shared older date, then transactions by id
	assert.Equal(t, models.BalanceItemExpense, report.Items[1].Type)
	assert.Equal(t, uint(1), report.Items[2].SourceID)
	assert.Equal(t, uint(2), report.Items[3].SourceID)
}

func TestBuildBalance_TotalsOrderIndependent(t *testing.T) {
	day := models.NewDate(2024, 3, 1)

	transactions := []models.Transaction{
		{ID: 1, Value: d("10.50"), Date: day, Source: models.TransactionSourcePOS},
		{ID: 2, Value: d("20.25"), Date: day, Source: models.TransactionSourcePOS},
		{ID: 3, Value: d("5.00"), Date: day, Source: models.TransactionSourcePOS},
	}

	reversed := []models.Transaction{transactions[2], transactions[1], transactions[0]}

	a := BuildBalance(transactions, nil, nil, nil)
	b := BuildBalance(reversed, nil, nil, nil)

	assert.True(t, a.TotalRevenue.Equal(b.TotalRevenue))
	assert.True(t, a.NetProfit.Equal(b.NetProfit))
	assert.Equal(t, a.Items, b.Items)
}
