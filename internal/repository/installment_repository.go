package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/barberia-app/barberia-api/internal/models"
)

// InstallmentRepository defines the interface for installment data access.
// Installments mutate only their status/paid fields; rows are inserted and
// deleted exclusively through the owning sale's repository.
type InstallmentRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Installment, error)
	FindBySale(ctx context.Context, saleID uint) ([]models.Installment, error)
	FindUnpaid(ctx context.Context) ([]models.Installment, error)
	FindPaid(ctx context.Context, rng *models.DateRange) ([]models.Installment, error)
	Update(ctx context.Context, installment *models.Installment) error
	MarkOverdue(ctx context.Context, ids []uint) error
}

// installmentRepository handles database operations for installments
type installmentRepository struct {
	db *gorm.DB
}

// NewInstallmentRepository creates a new installment repository
func NewInstallmentRepository(db *gorm.DB) InstallmentRepository {
	return &installmentRepository{db: db}
}

// FindByID retrieves an installment with its owning sale preloaded
func (r *installmentRepository) FindByID(ctx context.Context, id uint) (*models.Installment, error) {
	var installment models.Installment
	err := r.db.WithContext(ctx).
		Preload("CreditSale").
		First(&installment, id).Error
	if err != nil {
		return nil, err
	}
	return &installment, nil
}

// FindBySale retrieves the schedule of one sale ordered by number
func (r *installmentRepository) FindBySale(ctx context.Context, saleID uint) ([]models.Installment, error) {
	var installments []models.Installment
	err := r.db.WithContext(ctx).
		Where("credit_sale_id = ?", saleID).
		Order("number ASC").
		Find(&installments).Error
	return installments, err
}

// FindUnpaid retrieves every installment not yet paid, with its sale
func (r *installmentRepository) FindUnpaid(ctx context.Context) ([]models.Installment, error) {
	var installments []models.Installment
	err := r.db.WithContext(ctx).
		Preload("CreditSale").
		Where("status <> ?", models.InstallmentStatusPaid).
		Order("due_date ASC, id ASC").
		Find(&installments).Error
	return installments, err
}

// FindPaid retrieves paid installments, optionally restricted to a paid-date
// range (both ends inclusive)
func (r *installmentRepository) FindPaid(ctx context.Context, rng *models.DateRange) ([]models.Installment, error) {
	var installments []models.Installment
	query := r.db.WithContext(ctx).
		Preload("CreditSale").
		Where("status = ?", models.InstallmentStatusPaid)
	if rng != nil {
		query = query.Where("paid_date >= ? AND paid_date <= ?", rng.Start.Time, rng.End.Time)
	}
	err := query.Order("paid_date DESC, id ASC").Find(&installments).Error
	return installments, err
}

// Update persists installment mutations (status, paid date, payment method)
func (r *installmentRepository) Update(ctx context.Context, installment *models.Installment) error {
	return r.db.WithContext(ctx).Save(installment).Error
}

// MarkOverdue flips a batch of pending installments to overdue. The status
// guard in the WHERE clause keeps the operation idempotent and never touches
// paid rows.
func (r *installmentRepository) MarkOverdue(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Installment{}).
		Where("id IN ? AND status = ?", ids, models.InstallmentStatusPending).
		Update("status", models.InstallmentStatusOverdue).Error
}
