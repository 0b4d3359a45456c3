package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/barberia-app/barberia-api/internal/models"
	"github.com/barberia-app/barberia-api/internal/repository"
)

// BalanceService produces the combined profit/loss view: counter sales,
// settled fiado installments and expenses merged into one sorted feed.
type BalanceService struct {
	transactionRepo repository.TransactionRepository
	installmentRepo repository.InstallmentRepository
	expenseRepo     repository.ExpenseRepository
}

// NewBalanceService creates a new balance service
func NewBalanceService(
	transactionRepo repository.TransactionRepository,
	installmentRepo repository.InstallmentRepository,
	expenseRepo repository.ExpenseRepository,
) *BalanceService {
	return &BalanceService{
		transactionRepo: transactionRepo,
		installmentRepo: installmentRepo,
		expenseRepo:     expenseRepo,
	}
}

// GetBalance fetches the three sources and builds the report. rng is an
// inclusive calendar-date interval; nil means all time.
func (s *BalanceService) GetBalance(ctx context.Context, rng *models.DateRange) (*models.BalanceReport, error) {
	transactions, err := s.transactionRepo.FindAll(ctx, rng, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	installments, err := s.installmentRepo.FindPaid(ctx, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to load paid installments: %w", err)
	}
	expenses, err := s.expenseRepo.FindAll(ctx, rng, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	return BuildBalance(transactions, installments, expenses, rng), nil
}

// BuildBalance merges the three event sources into one report. It is a pure
// transform over the supplied collections: no I/O, no mutation.
//
// Revenue comes from genuine POS transactions and from paid installments,
// keyed by PaidDate because that is the day the money actually arrived.
// Transactions tagged as credit-installment echoes are skipped; the
// installment row is the revenue record, counting both would double it.
func BuildBalance(transactions []models.Transaction, installments []models.Installment, expenses []models.Expense, rng *models.DateRange) *models.BalanceReport {
	items := make([]models.BalanceItem, 0, len(transactions)+len(installments)+len(expenses))

	for i := range transactions {
		t := &transactions[i]
		if t.IsCreditInstallmentEcho() {
			continue
		}
		if !rng.Contains(t.Date) {
			continue
		}
		items = append(items, models.BalanceItem{
			Type:        models.BalanceItemRevenue,
			Source:      models.BalanceSourceTransaction,
			SourceID:    t.ID,
			Description: t.Description,
			Amount:      t.Value,
			Date:        t.Date,
			ClientName:  t.ClientName,
		})
	}

	for i := range installments {
		inst := &installments[i]
		if !inst.IsPaid() || inst.PaidDate == nil {
			continue
		}
		if !rng.Contains(*inst.PaidDate) {
			continue
		}
		items = append(items, models.BalanceItem{
			Type:              models.BalanceItemRevenue,
			Source:            models.BalanceSourceInstallment,
			SourceID:          inst.ID,
			Description:       inst.CreditSale.Products,
			Amount:            inst.Amount,
			Date:              *inst.PaidDate,
			ClientName:        inst.CreditSale.ClientName,
			InstallmentNumber: inst.Number,
			TotalInstallments: inst.CreditSale.Installments,
		})
	}

	for i := range expenses {
		e := &expenses[i]
		if !rng.Contains(e.Date) {
			continue
		}
		items = append(items, models.BalanceItem{
			Type:        models.BalanceItemExpense,
			Source:      models.BalanceSourceExpense,
			SourceID:    e.ID,
			Description: e.Description,
			Amount:      e.Amount,
			Date:        e.Date,
		})
	}

	// Totals are reduced before sorting; addition is commutative, so the
	// input collections' iteration order can never change them.
	totalRevenue := decimal.Zero
	totalExpenses := decimal.Zero
	for i := range items {
		if items[i].Type == models.BalanceItemRevenue {
			totalRevenue = totalRevenue.Add(items[i].Amount)
		} else {
			totalExpenses = totalExpenses.Add(items[i].Amount)
		}
	}

	sort.SliceStable(items, func(a, b int) bool {
		return lessBalanceItem(&items[a], &items[b])
	})

	return &models.BalanceReport{
		Items:         items,
		TotalRevenue:  totalRevenue,
		TotalExpenses: totalExpenses,
		NetProfit:     totalRevenue.Sub(totalExpenses),
	}
}

// lessBalanceItem orders the feed: newest date first; on the same date
// expenses before revenues so losses are visible first; remaining ties broken
// by source and id so identical inputs always produce identical output.
func lessBalanceItem(a, b *models.BalanceItem) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.After(b.Date)
	}
	if a.Type != b.Type {
		return a.Type == models.BalanceItemExpense
	}
	if a.Source != b.Source {
		return a.Source < b.Source
	}
	return a.SourceID < b.SourceID
}
