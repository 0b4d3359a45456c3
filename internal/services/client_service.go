package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/barberia-app/barberia-api/internal/models"
	"github.com/barberia-app/barberia-api/internal/repository"
)

// ClientService handles the customer directory
type ClientService struct {
	repo repository.ClientRepository
}

// NewClientService creates a new client service
func NewClientService(repo repository.ClientRepository) *ClientService {
	return &ClientService{repo: repo}
}

// Create registers a client
func (s *ClientService) Create(ctx context.Context, client *models.Client) error {
	if client.Name == "" {
		return fmt.Errorf("%w: se requiere el nombre del cliente", ErrValidation)
	}
	return s.repo.Create(ctx, client)
}

// FindByID gets a client
func (s *ClientService) FindByID(ctx context.Context, id uint) (*models.Client, error) {
	client, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return client, err
}

// List gets clients, optionally filtered by a name search
func (s *ClientService) List(ctx context.Context, search string) ([]models.Client, error) {
	return s.repo.FindAll(ctx, search)
}

// Update persists client changes
func (s *ClientService) Update(ctx context.Context, client *models.Client) error {
	if client.Name == "" {
		return fmt.Errorf("%w: se requiere el nombre del cliente", ErrValidation)
	}
	return s.repo.Update(ctx, client)
}

// Delete removes a client
func (s *ClientService) Delete(ctx context.Context, id uint) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
