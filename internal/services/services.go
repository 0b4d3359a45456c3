package services

import (
	"gorm.io/gorm"

	"github.com/barberia-app/barberia-api/internal/config"
	"github.com/barberia-app/barberia-api/internal/repository"
)

// Services holds all service implementations
type Services struct {
	Auth        *AuthService
	Client      *ClientService
	Appointment *AppointmentService
	CreditSale  *CreditSaleService
	Transaction *TransactionService
	Expense     *ExpenseService
	Balance     *BalanceService
	Export      *ExportService
	Audit       *AuditService
}

// NewServices creates all services with their dependencies
func NewServices(repos *repository.Repositories, cfg *config.Config, db *gorm.DB) *Services {
	auditSvc := NewAuditService(db)
	balanceSvc := NewBalanceService(repos.Transaction, repos.Installment, repos.Expense)

	return &Services{
		Auth:        NewAuthService(repos.User, cfg),
		Client:      NewClientService(repos.Client),
		Appointment: NewAppointmentService(repos.Appointment),
		CreditSale:  NewCreditSaleService(repos.CreditSale, repos.Installment, repos.Transaction, repos.Client, auditSvc),
		Transaction: NewTransactionService(repos.Transaction, auditSvc),
		Expense:     NewExpenseService(repos.Expense, auditSvc),
		Balance:     balanceSvc,
		Export:      NewExportService(balanceSvc),
		Audit:       auditSvc,
	}
}
