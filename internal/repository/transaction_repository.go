package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/barberia-app/barberia-api/internal/models"
)

// TransactionRepository defines the interface for POS transaction data access
type TransactionRepository interface {
	Create(ctx context.Context, transaction *models.Transaction) error
	FindByID(ctx context.Context, id uint) (*models.Transaction, error)
	FindAll(ctx context.Context, rng *models.DateRange, paymentMethod string) ([]models.Transaction, error)
	Delete(ctx context.Context, id uint) error
}

// transactionRepository handles database operations for transactions
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

// Create inserts a new transaction
func (r *transactionRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

// FindByID retrieves a transaction
func (r *transactionRepository) FindByID(ctx context.Context, id uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.db.WithContext(ctx).First(&transaction, id).Error; err != nil {
		return nil, err
	}
	return &transaction, nil
}

// FindAll retrieves transactions newest first, optionally filtered by an
// inclusive date range and a payment method
func (r *transactionRepository) FindAll(ctx context.Context, rng *models.DateRange, paymentMethod string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	query := r.db.WithContext(ctx).Order("date DESC, id DESC")
	if rng != nil {
		query = query.Where("date >= ? AND date <= ?", rng.Start.Time, rng.End.Time)
	}
	if paymentMethod != "" {
		query = query.Where("payment_method = ?", paymentMethod)
	}
	err := query.Find(&transactions).Error
	return transactions, err
}

// Delete removes a transaction
func (r *transactionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Transaction{}, id).Error
}
