package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	User        UserRepository
	Client      ClientRepository
	Appointment AppointmentRepository
	CreditSale  CreditSaleRepository
	Installment InstallmentRepository
	Transaction TransactionRepository
	Expense     ExpenseRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Client:      NewClientRepository(db),
		Appointment: NewAppointmentRepository(db),
		CreditSale:  NewCreditSaleRepository(db),
		Installment: NewInstallmentRepository(db),
		Transaction: NewTransactionRepository(db),
		Expense:     NewExpenseRepository(db),
	}
}
