package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/barberia-app/barberia-api/internal/models"
	"github.com/barberia-app/barberia-api/internal/repository"
)

// ExpenseService handles shop expenses
type ExpenseService struct {
	repo     repository.ExpenseRepository
	auditSvc *AuditService
}

// NewExpenseService creates a new expense service
func NewExpenseService(repo repository.ExpenseRepository, auditSvc *AuditService) *ExpenseService {
	return &ExpenseService{repo: repo, auditSvc: auditSvc}
}

// Create records an expense
func (s *ExpenseService) Create(ctx context.Context, expense *models.Expense, actorID uint, ip, userAgent string) error {
	if !expense.Amount.IsPositive() {
		return fmt.Errorf("%w: el monto del gasto debe ser mayor a cero", ErrValidation)
	}
	if expense.Description == "" {
		return fmt.Errorf("%w: se requiere la descripción del gasto", ErrValidation)
	}
	if expense.Category == "" {
		expense.Category = models.ExpenseCategoryOther
	}
	if expense.Date.IsZero() {
		expense.Date = models.Today()
	}

	if err := s.repo.Create(ctx, expense); err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	s.auditSvc.Log(ctx, actorID, "CREATE", "Expense", expense.ID,
		fmt.Sprintf("Gasto registrado: %s por %s", expense.Description, expense.Amount.StringFixed(2)), ip, userAgent)

	return nil
}

// List gets expenses, optionally filtered by date range and category
func (s *ExpenseService) List(ctx context.Context, rng *models.DateRange, category string) ([]models.Expense, error) {
	return s.repo.FindAll(ctx, rng, category)
}

// Update persists expense changes
func (s *ExpenseService) Update(ctx context.Context, expense *models.Expense) error {
	if !expense.Amount.IsPositive() {
		return fmt.Errorf("%w: el monto del gasto debe ser mayor a cero", ErrValidation)
	}
	return s.repo.Update(ctx, expense)
}

// FindByID gets an expense
func (s *ExpenseService) FindByID(ctx context.Context, id uint) (*models.Expense, error) {
	expense, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return expense, err
}

// Delete removes an expense
func (s *ExpenseService) Delete(ctx context.Context, id uint, actorID uint, ip, userAgent string) error {
	expense, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	s.auditSvc.Log(ctx, actorID, "DELETE", "Expense", id,
		fmt.Sprintf("Gasto eliminado: %s", expense.Description), ip, userAgent)

	return nil
}
