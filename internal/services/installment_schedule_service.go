package services

import (
	"fmt"

	"github.com/barberia-app/barberia-api/internal/models"
	"github.com/barberia-app/barberia-api/pkg/money"
)

// InstallmentScheduleService generates the installment schedule of a credit
// sale. It is pure: the caller persists the result together with the sale in
// the same transaction.
type InstallmentScheduleService struct{}

// NewInstallmentScheduleService creates a new schedule service
func NewInstallmentScheduleService() *InstallmentScheduleService {
	return &InstallmentScheduleService{}
}

// GenerateSchedule splits the sale total into its installments. Amounts come
// from money.Allocate, so they always sum back to the total exactly. Due
// dates advance one calendar month per installment from FirstDueDate, with
// the day-of-month clamped to shorter months (Jan 31 → Feb 28).
func (s *InstallmentScheduleService) GenerateSchedule(sale *models.CreditSale) ([]models.Installment, error) {
	if sale.Installments < models.MinInstallments || sale.Installments > models.MaxInstallments {
		return nil, fmt.Errorf("%w: número de cuotas debe estar entre %d y %d, recibido %d",
			ErrValidation, models.MinInstallments, models.MaxInstallments, sale.Installments)
	}
	if !sale.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("%w: el total de la venta debe ser mayor a cero", ErrValidation)
	}

	amounts, err := money.Allocate(sale.TotalAmount, sale.Installments)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	installments := make([]models.Installment, sale.Installments)
	for i := 0; i < sale.Installments; i++ {
		installments[i] = models.Installment{
			CreditSaleID: sale.ID,
			Number:       i + 1,
			Amount:       amounts[i],
			DueDate:      sale.FirstDueDate.AddMonthsClamped(i),
			Status:       models.InstallmentStatusPending,
		}
	}

	return installments, nil
}
