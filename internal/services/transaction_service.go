package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/barberia-app/barberia-api/internal/models"
	"github.com/barberia-app/barberia-api/internal/repository"
)

// TransactionService handles ordinary counter sales
type TransactionService struct {
	repo     repository.TransactionRepository
	auditSvc *AuditService
}

// NewTransactionService creates a new transaction service
func NewTransactionService(repo repository.TransactionRepository, auditSvc *AuditService) *TransactionService {
	return &TransactionService{repo: repo, auditSvc: auditSvc}
}

// Create records a counter sale. The source is always pos here; echo rows
// for installment payments are written by the credit sale service only.
func (s *TransactionService) Create(ctx context.Context, transaction *models.Transaction, actorID uint, ip, userAgent string) error {
	if !transaction.Value.IsPositive() {
		return fmt.Errorf("%w: el valor de la venta debe ser mayor a cero", ErrValidation)
	}
	if transaction.Kind != models.TransactionKindService && transaction.Kind != models.TransactionKindProduct {
		return fmt.Errorf("%w: tipo de venta inválido %q", ErrValidation, transaction.Kind)
	}
	if transaction.PaymentMethod == "" {
		return fmt.Errorf("%w: se requiere el método de pago", ErrValidation)
	}
	if transaction.Date.IsZero() {
		transaction.Date = models.Today()
	}
	transaction.Source = models.TransactionSourcePOS

	if err := s.repo.Create(ctx, transaction); err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	s.auditSvc.Log(ctx, actorID, "CREATE", "Transaction", transaction.ID,
		fmt.Sprintf("Venta registrada: %s por %s", transaction.Description, transaction.Value.StringFixed(2)), ip, userAgent)

	return nil
}

// List gets transactions, optionally filtered by date range and method
func (s *TransactionService) List(ctx context.Context, rng *models.DateRange, paymentMethod string) ([]models.Transaction, error) {
	return s.repo.FindAll(ctx, rng, paymentMethod)
}

// Delete removes a transaction. Echo rows are protected: they disappear only
// if their sale is deleted, not through this path.
func (s *TransactionService) Delete(ctx context.Context, id uint, actorID uint, ip, userAgent string) error {
	transaction, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if transaction.IsCreditInstallmentEcho() {
		return fmt.Errorf("%w: las transacciones de abono fiado no se eliminan directamente", ErrInvalidState)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	s.auditSvc.Log(ctx, actorID, "DELETE", "Transaction", id,
		fmt.Sprintf("Venta eliminada: %s", transaction.Description), ip, userAgent)

	return nil
}
