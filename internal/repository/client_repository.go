package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/barberia-app/barberia-api/internal/models"
)

// ClientRepository defines the interface for client data access
type ClientRepository interface {
	Create(ctx context.Context, client *models.Client) error
	FindByID(ctx context.Context, id uint) (*models.Client, error)
	FindAll(ctx context.Context, search string) ([]models.Client, error)
	Update(ctx context.Context, client *models.Client) error
	Delete(ctx context.Context, id uint) error
}

// clientRepository handles database operations for clients
type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

// Create inserts a new client
func (r *clientRepository) Create(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

// FindByID retrieves a client
func (r *clientRepository) FindByID(ctx context.Context, id uint) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// FindAll retrieves clients ordered by name, optionally filtered by a
// case-insensitive name search
func (r *clientRepository) FindAll(ctx context.Context, search string) ([]models.Client, error) {
	var clients []models.Client
	query := r.db.WithContext(ctx).Order("name ASC")
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}
	err := query.Find(&clients).Error
	return clients, err
}

// Update persists client changes
func (r *clientRepository) Update(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Save(client).Error
}

// Delete removes a client. Credit sales keep their denormalized client name,
// so financial history survives the deletion.
func (r *clientRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Client{}, id).Error
}
