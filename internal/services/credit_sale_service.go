package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/barberia-app/barberia-api/internal/models"
	"github.com/barberia-app/barberia-api/internal/repository"
	"github.com/barberia-app/barberia-api/internal/statemachine"
	"github.com/barberia-app/barberia-api/pkg/logger"
)

// CreditSaleService owns the fiado lifecycle: creating a sale with its
// installment schedule, settling installments and keeping sale statuses in
// sync with the calendar.
type CreditSaleService struct {
	repo            repository.CreditSaleRepository
	installmentRepo repository.InstallmentRepository
	transactionRepo repository.TransactionRepository
	clientRepo      repository.ClientRepository
	auditSvc        *AuditService
	schedule        *InstallmentScheduleService
}

// NewCreditSaleService creates a new credit sale service
func NewCreditSaleService(
	repo repository.CreditSaleRepository,
	installmentRepo repository.InstallmentRepository,
	transactionRepo repository.TransactionRepository,
	clientRepo repository.ClientRepository,
	auditSvc *AuditService,
) *CreditSaleService {
	return &CreditSaleService{
		repo:            repo,
		installmentRepo: installmentRepo,
		transactionRepo: transactionRepo,
		clientRepo:      clientRepo,
		auditSvc:        auditSvc,
		schedule:        NewInstallmentScheduleService(),
	}
}

// Create validates the sale, generates its installment schedule and persists
// both as one atomic unit.
func (s *CreditSaleService) Create(ctx context.Context, sale *models.CreditSale, actorID uint, ip, userAgent string) error {
	if sale.Subtotal.IsNegative() || sale.Discount.IsNegative() {
		return fmt.Errorf("%w: subtotal y descuento no pueden ser negativos", ErrValidation)
	}
	if sale.ClientName == "" && sale.ClientID == nil {
		return fmt.Errorf("%w: se requiere el cliente de la venta", ErrValidation)
	}

	// total = subtotal − discount, clamped at zero
	total := sale.Subtotal.Sub(sale.Discount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	sale.TotalAmount = total

	if sale.SaleDate.IsZero() {
		sale.SaleDate = models.Today()
	}
	if sale.FirstDueDate.IsZero() {
		sale.FirstDueDate = sale.SaleDate.AddMonthsClamped(1)
	}

	// Resolve the denormalized client name from the referenced record
	if sale.ClientID != nil && sale.ClientName == "" {
		client, err := s.clientRepo.FindByID(ctx, *sale.ClientID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: cliente %d", ErrNotFound, *sale.ClientID)
			}
			return err
		}
		sale.ClientName = client.Name
	}

	sale.GUID = uuid.New().String()
	sale.Status = models.CreditSaleStatusActive

	schedule, err := s.schedule.GenerateSchedule(sale)
	if err != nil {
		return err
	}

	if err := s.repo.CreateWithSchedule(ctx, sale, schedule); err != nil {
		return fmt.Errorf("failed to create credit sale: %w", err)
	}

	s.auditSvc.Log(ctx, actorID, "CREATE", "CreditSale", sale.ID,
		fmt.Sprintf("Venta al crédito creada para %s: %s en %d cuota(s)",
			sale.ClientName, sale.TotalAmount.StringFixed(2), sale.Installments), ip, userAgent)

	return nil
}

// FindByID gets a sale with its schedule
func (s *CreditSaleService) FindByID(ctx context.Context, id uint) (*models.CreditSale, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return sale, err
}

// List gets all sales, optionally filtered by status
func (s *CreditSaleService) List(ctx context.Context, status string) ([]models.CreditSale, error) {
	return s.repo.FindAll(ctx, status)
}

// ListByClient gets all sales of one client
func (s *CreditSaleService) ListByClient(ctx context.Context, clientID uint) ([]models.CreditSale, error) {
	return s.repo.FindByClient(ctx, clientID)
}

// Delete removes a sale as a cascade of removing its installments
func (s *CreditSaleService) Delete(ctx context.Context, id uint, actorID uint, ip, userAgent string) error {
	sale, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteWithSchedule(ctx, id); err != nil {
		return fmt.Errorf("failed to delete credit sale: %w", err)
	}

	s.auditSvc.Log(ctx, actorID, "DELETE", "CreditSale", id,
		fmt.Sprintf("Venta al crédito de %s eliminada con sus %d cuota(s)", sale.ClientName, sale.Installments), ip, userAgent)

	return nil
}

// PayInstallment settles exactly one installment in full. Paying an already
// paid installment fails with ErrDuplicatePayment so a payment can never be
// counted twice in the balance. An echo transaction tagged as
// credit_installment is recorded for the POS history views.
func (s *CreditSaleService) PayInstallment(ctx context.Context, installmentID uint, paidDate *models.Date, paymentMethod string, actorID uint, ip, userAgent string) (*models.Installment, error) {
	if paymentMethod == "" {
		return nil, fmt.Errorf("%w: se requiere el método de pago", ErrValidation)
	}

	installment, err := s.installmentRepo.FindByID(ctx, installmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load installment: %w", err)
	}

	if installment.IsPaid() {
		return nil, ErrDuplicatePayment
	}

	ifsm := statemachine.NewInstallmentFSM(installment)
	if err := ifsm.Pay(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	date := models.Today()
	if paidDate != nil {
		date = *paidDate
	}
	installment.PaidDate = &date
	installment.PaymentMethod = &paymentMethod

	if err := s.installmentRepo.Update(ctx, installment); err != nil {
		return nil, fmt.Errorf("failed to update installment: %w", err)
	}

	// Refresh the sale status cache from the full schedule
	sale, err := s.repo.FindByID(ctx, installment.CreditSaleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load credit sale: %w", err)
	}
	s.assertScheduleConsistent(sale)

	newStatus := sale.RecomputeStatus(sale.Schedule)
	if newStatus != sale.Status {
		if err := s.repo.UpdateStatus(ctx, sale.ID, newStatus); err != nil {
			return nil, fmt.Errorf("failed to update sale status: %w", err)
		}
	}

	// Echo transaction for the POS history. The source tag keeps the
	// balance report from counting this row a second time.
	echo := &models.Transaction{
		ClientID:      sale.ClientID,
		ClientName:    sale.ClientName,
		Description:   fmt.Sprintf("Abono fiado de %s: cuota %d de %d", sale.ClientName, installment.Number, sale.Installments),
		Kind:          models.TransactionKindProduct,
		Source:        models.TransactionSourceCreditInstallment,
		Value:         installment.Amount,
		Discount:      decimal.Zero,
		PaymentMethod: paymentMethod,
		Date:          date,
	}
	if err := s.transactionRepo.Create(ctx, echo); err != nil {
		logger.Error("Failed to record installment echo transaction", "installment_id", installment.ID, "error", err)
	}

	s.auditSvc.Log(ctx, actorID, "PAY", "Installment", installment.ID,
		fmt.Sprintf("Cuota %d de %d pagada (%s) por %s", installment.Number, sale.Installments,
			installment.Amount.StringFixed(2), paymentMethod), ip, userAgent)

	return installment, nil
}

// RefreshAll scans every unpaid installment and flips the ones whose due
// date is already past to overdue, then refreshes the affected sales' status
// caches. Running it twice with the same date produces no further changes,
// and it never marks anything paid.
func (s *CreditSaleService) RefreshAll(ctx context.Context, today models.Date) (*models.RefreshReport, error) {
	unpaid, err := s.installmentRepo.FindUnpaid(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load unpaid installments: %w", err)
	}

	report := &models.RefreshReport{}

	var expiredIDs []uint
	saleIDs := make(map[uint]bool)
	for i := range unpaid {
		installment := &unpaid[i]
		saleIDs[installment.CreditSaleID] = true

		if !installment.IsDueBefore(today) || !installment.MayExpire() {
			continue
		}
		ifsm := statemachine.NewInstallmentFSM(installment)
		if err := ifsm.Expire(ctx); err != nil {
			logger.Error("Failed to expire installment", "installment_id", installment.ID, "error", err)
			continue
		}
		expiredIDs = append(expiredIDs, installment.ID)
	}

	if err := s.installmentRepo.MarkOverdue(ctx, expiredIDs); err != nil {
		return nil, fmt.Errorf("failed to mark installments overdue: %w", err)
	}
	report.InstallmentsMarkedOverdue = len(expiredIDs)

	for saleID := range saleIDs {
		sale, err := s.repo.FindByID(ctx, saleID)
		if err != nil {
			logger.Error("Failed to load sale during status refresh", "sale_id", saleID, "error", err)
			continue
		}
		report.SalesChecked++
		s.assertScheduleConsistent(sale)

		newStatus := sale.RecomputeStatus(sale.Schedule)
		if newStatus == sale.Status {
			continue
		}
		if err := s.repo.UpdateStatus(ctx, saleID, newStatus); err != nil {
			logger.Error("Failed to update sale status", "sale_id", saleID, "error", err)
			continue
		}
		if newStatus == models.CreditSaleStatusOverdue {
			report.SalesMarkedOverdue++
		}
	}

	return report, nil
}

// assertScheduleConsistent checks the core data invariant: the installment
// amounts of a sale must sum to its total exactly. A mismatch means the
// stored records are corrupted; it is logged for alerting, never surfaced to
// the caller as a user error.
func (s *CreditSaleService) assertScheduleConsistent(sale *models.CreditSale) {
	sum := sale.InstallmentsSum(sale.Schedule)
	if !sum.Equal(sale.TotalAmount) {
		logger.Error("Ledger inconsistency detected",
			"sale_id", sale.ID,
			"total_amount", sale.TotalAmount.StringFixed(2),
			"installments_sum", sum.StringFixed(2),
			"error", ErrInconsistentLedger)
	}
}
