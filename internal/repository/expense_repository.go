package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/barberia-app/barberia-api/internal/models"
)

// ExpenseRepository defines the interface for expense data access
type ExpenseRepository interface {
	Create(ctx context.Context, expense *models.Expense) error
	FindByID(ctx context.Context, id uint) (*models.Expense, error)
	FindAll(ctx context.Context, rng *models.DateRange, category string) ([]models.Expense, error)
	Update(ctx context.Context, expense *models.Expense) error
	Delete(ctx context.Context, id uint) error
}

// expenseRepository handles database operations for expenses
type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

// Create inserts a new expense
func (r *expenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

// FindByID retrieves an expense
func (r *expenseRepository) FindByID(ctx context.Context, id uint) (*models.Expense, error) {
	var expense models.Expense
	if err := r.db.WithContext(ctx).First(&expense, id).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

// FindAll retrieves expenses newest first, optionally filtered by an
// inclusive date range and a category
func (r *expenseRepository) FindAll(ctx context.Context, rng *models.DateRange, category string) ([]models.Expense, error) {
	var expenses []models.Expense
	query := r.db.WithContext(ctx).Order("date DESC, id DESC")
	if rng != nil {
		query = query.Where("date >= ? AND date <= ?", rng.Start.Time, rng.End.Time)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Find(&expenses).Error
	return expenses, err
}

// Update persists expense changes
func (r *expenseRepository) Update(ctx context.Context, expense *models.Expense) error {
	return r.db.WithContext(ctx).Save(expense).Error
}

// Delete removes an expense
func (r *expenseRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Expense{}, id).Error
}
