package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/barberia-app/barberia-api/internal/models"
)

// CreditSaleRepository defines the interface for credit sale data access.
// A sale and its installment schedule form one atomic unit: they are created
// and destroyed together, never separately.
type CreditSaleRepository interface {
	CreateWithSchedule(ctx context.Context, sale *models.CreditSale, schedule []models.Installment) error
	FindByID(ctx context.Context, id uint) (*models.CreditSale, error)
	FindAll(ctx context.Context, status string) ([]models.CreditSale, error)
	FindByClient(ctx context.Context, clientID uint) ([]models.CreditSale, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	DeleteWithSchedule(ctx context.Context, id uint) error
}

// creditSaleRepository handles database operations for credit sales
type creditSaleRepository struct {
	db *gorm.DB
}

// NewCreditSaleRepository creates a new credit sale repository
func NewCreditSaleRepository(db *gorm.DB) CreditSaleRepository {
	return &creditSaleRepository{db: db}
}

// CreateWithSchedule persists the sale and its installments in a single
// transaction, so a sale without installments can never exist.
func (r *creditSaleRepository) CreateWithSchedule(ctx context.Context, sale *models.CreditSale, schedule []models.Installment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sale).Error; err != nil {
			return err
		}
		for i := range schedule {
			schedule[i].CreditSaleID = sale.ID
		}
		if err := tx.Create(&schedule).Error; err != nil {
			return err
		}
		sale.Schedule = schedule
		return nil
	})
}

// FindByID retrieves a sale with its full schedule ordered by number
func (r *creditSaleRepository) FindByID(ctx context.Context, id uint) (*models.CreditSale, error) {
	var sale models.CreditSale
	err := r.db.WithContext(ctx).
		Preload("Schedule", func(db *gorm.DB) *gorm.DB {
			return db.Order("number ASC")
		}).
		First(&sale, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// FindAll retrieves all sales, optionally filtered by status, newest first
func (r *creditSaleRepository) FindAll(ctx context.Context, status string) ([]models.CreditSale, error) {
	var sales []models.CreditSale
	query := r.db.WithContext(ctx).
		Preload("Schedule", func(db *gorm.DB) *gorm.DB {
			return db.Order("number ASC")
		}).
		Order("sale_date DESC, id DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&sales).Error
	return sales, err
}

// FindByClient retrieves all sales for a client, newest first
func (r *creditSaleRepository) FindByClient(ctx context.Context, clientID uint) ([]models.CreditSale, error) {
	var sales []models.CreditSale
	err := r.db.WithContext(ctx).
		Preload("Schedule", func(db *gorm.DB) *gorm.DB {
			return db.Order("number ASC")
		}).
		Where("client_id = ?", clientID).
		Order("sale_date DESC, id DESC").
		Find(&sales).Error
	return sales, err
}

// UpdateStatus refreshes the cached sale status column
func (r *creditSaleRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.CreditSale{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// DeleteWithSchedule removes the schedule and the sale in one transaction
func (r *creditSaleRepository) DeleteWithSchedule(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("credit_sale_id = ?", id).Delete(&models.Installment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.CreditSale{}, id).Error
	})
}
