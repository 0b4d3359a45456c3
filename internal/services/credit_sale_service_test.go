package services

import (
	"context"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberia-app/barberia-api/internal/models"
	"github.com/barberia-app/barberia-api/internal/repository"
	"github.com/barberia-app/barberia-api/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Setup("test", "error")
	os.Exit(m.Run())
}

// Mock CreditSaleRepository
type mockCreditSaleRepository struct {
	repository.CreditSaleRepository
	mockCreateWithSchedule func(ctx context.Context, sale *models.CreditSale, schedule []models.Installment) error
	mockFindByID           func(ctx context.Context, id uint) (*models.CreditSale, error)
	mockUpdateStatus       func(ctx context.Context, id uint, status string) error
}

func (m *mockCreditSaleRepository) CreateWithSchedule(ctx context.Context, sale *models.CreditSale, schedule []models.Installment) error {
	if m.mockCreateWithSchedule != nil {
		return m.mockCreateWithSchedule(ctx, sale, schedule)
	}
	return nil
}
func (m *mockCreditSaleRepository) FindByID(ctx context.Context, id uint) (*models.CreditSale, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, nil
}
func (m *mockCreditSaleRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	if m.mockUpdateStatus != nil {
		return m.mockUpdateStatus(ctx, id, status)
	}
	return nil
}

// Mock InstallmentRepository
type mockInstallmentRepository struct {
	repository.InstallmentRepository
	mockFindByID    func(ctx context.Context, id uint) (*models.Installment, error)
	mockFindUnpaid  func(ctx context.Context) ([]models.Installment, error)
	mockUpdate      func(ctx context.Context, installment *models.Installment) error
	mockMarkOverdue func(ctx context.Context, ids []uint) error
}

func (m *mockInstallmentRepository) FindByID(ctx context.Context, id uint) (*models.Installment, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, nil
}
func (m *mockInstallmentRepository) FindUnpaid(ctx context.Context) ([]models.Installment, error) {
	if m.mockFindUnpaid != nil {
		return m.mockFindUnpaid(ctx)
	}
	return nil, nil
}
func (m *mockInstallmentRepository) Update(ctx context.Context, installment *models.Installment) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, installment)
	}
	return nil
}
func (m *mockInstallmentRepository) MarkOverdue(ctx context.Context, ids []uint) error {
	if m.mockMarkOverdue != nil {
		return m.mockMarkOverdue(ctx, ids)
	}
	return nil
}

// Mock TransactionRepository
type mockTransactionRepository struct {
	repository.TransactionRepository
	mockCreate  func(ctx context.Context, transaction *models.Transaction) error
	mockFindAll func(ctx context.Context, rng *models.DateRange, paymentMethod string) ([]models.Transaction, error)
}

func (m *mockTransactionRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, transaction)
	}
	return nil
}
func (m *mockTransactionRepository) FindAll(ctx context.Context, rng *models.DateRange, paymentMethod string) ([]models.Transaction, error) {
	if m.mockFindAll != nil {
		return m.mockFindAll(ctx, rng, paymentMethod)
	}
	return nil, nil
}

func newTestCreditSaleService(saleRepo *mockCreditSaleRepository, instRepo *mockInstallmentRepository, txRepo *mockTransactionRepository) *CreditSaleService {
	return NewCreditSaleService(saleRepo, instRepo, txRepo, nil, NewAuditService(nil))
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCreate_GeneratesScheduleAtomically(t *testing.T) {
	var persistedSale *models.CreditSale
	var persistedSchedule []models.Installment

	saleRepo := &mockCreditSaleRepository{
		mockCreateWithSchedule: func(ctx context.Context, sale *models.CreditSale, schedule []models.Installment) error {
			persistedSale = sale
			persistedSchedule = schedule
			return nil
		},
	}
	svc := newTestCreditSaleService(saleRepo, &mockInstallmentRepository{}, &mockTransactionRepository{})

	sale := &models.CreditSale{
		ClientName:   "Don Julio",
		Products:     "Pomada, cera",
		Subtotal:     d("120.00"),
		Discount:     d("20.00"),
		Installments: 3,
		SaleDate:     models.NewDate(2024, 1, 10),
		FirstDueDate: models.NewDate(2024, 2, 10),
	}

	err := svc.Create(context.Background(), sale, 1, "127.0.0.1", "test")
	require.NoError(t, err)

	require.NotNil(t, persistedSale)
	assert.Equal(t, "100.00", persistedSale.TotalAmount.StringFixed(2))
	assert.Equal(t, models.CreditSaleStatusActive, persistedSale.Status)
	assert.NotEmpty(t, persistedSale.GUID)
	require.Len(t, persistedSchedule, 3)

	sum := decimal.Zero
	for _, inst := range persistedSchedule {
		sum = sum.Add(inst.Amount)
	}
	assert.True(t, sum.Equal(persistedSale.TotalAmount))
}

func TestCreate_RejectsInvalidInstallments(t *testing.T) {
	svc := newTestCreditSaleService(&mockCreditSaleRepository{}, &mockInstallmentRepository{}, &mockTransactionRepository{})

	sale := &models.CreditSale{
		ClientName:   "Don Julio",
		Products:     "Pomada",
		Subtotal:     d("100.00"),
		Installments: 0,
	}

	err := svc.Create(context.Background(), sale, 1, "127.0.0.1", "test")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPayInstallment_DuplicatePaymentFails(t *testing.T) {
	paid := models.NewDate(2024, 2, 1)
	instRepo := &mockInstallmentRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Installment, error) {
			return &models.Installment{
				ID:           id,
				CreditSaleID: 1,
				Number:       1,
				Amount:       d("50.00"),
				Status:       models.InstallmentStatusPaid,
				PaidDate:     &paid,
			}, nil
		},
	}
	svc := newTestCreditSaleService(&mockCreditSaleRepository{}, instRepo, &mockTransactionRepository{})

	_, err := svc.PayInstallment(context.Background(), 7, nil, models.PaymentMethodCash, 1, "127.0.0.1", "test")
	assert.ErrorIs(t, err, ErrDuplicatePayment)
}

func TestPayInstallment_RequiresPaymentMethod(t *testing.T) {
	svc := newTestCreditSaleService(&mockCreditSaleRepository{}, &mockInstallmentRepository{}, &mockTransactionRepository{})

	_, err := svc.PayInstallment(context.Background(), 7, nil, "", 1, "127.0.0.1", "test")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPayInstallment_SettlesAndEchoesTransaction(t *testing.T) {
	paidDate := models.NewDate(2024, 2, 5)
	installment := &models.Installment{
		ID:           7,
		CreditSaleID: 3,
		Number:       2,
		Amount:       d("33.33"),
		DueDate:      models.NewDate(2024, 2, 10),
		Status:       models.InstallmentStatusOverdue,
	}

	var updated *models.Installment
	instRepo := &mockInstallmentRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Installment, error) {
			return installment, nil
		},
		mockUpdate: func(ctx context.Context, inst *models.Installment) error {
			updated = inst
			return nil
		},
	}

	var statusUpdates []string
	saleRepo := &mockCreditSaleRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.CreditSale, error) {
			other1 := models.NewDate(2024, 1, 10)
			return &models.CreditSale{
				ID:          3,
				ClientName:  "Doña Rosa",
				TotalAmount: d("99.99"),
				Status:      models.CreditSaleStatusOverdue,
				Schedule: []models.Installment{
					{Number: 1, Amount: d("33.33"), Status: models.InstallmentStatusPaid, PaidDate: &other1},
					{Number: 2, Amount: d("33.33"), Status: models.InstallmentStatusPaid, PaidDate: &paidDate},
					{Number: 3, Amount: d("33.33"), Status: models.InstallmentStatusPending},
				},
			}, nil
		},
		mockUpdateStatus: func(ctx context.Context, id uint, status string) error {
			statusUpdates = append(statusUpdates, status)
			return nil
		},
	}

	var echo *models.Transaction
	txRepo := &mockTransactionRepository{
		mockCreate: func(ctx context.Context, transaction *models.Transaction) error {
			echo = transaction
			return nil
		},
	}

	svc := newTestCreditSaleService(saleRepo, instRepo, txRepo)

	result, err := svc.PayInstallment(context.Background(), 7, &paidDate, models.PaymentMethodCash, 1, "127.0.0.1", "test")
	require.NoError(t, err)

	assert.Equal(t, models.InstallmentStatusPaid, result.Status)
	require.NotNil(t, result.PaidDate)
	assert.Equal(t, "2024-02-05", result.PaidDate.String())
	require.NotNil(t, updated)

	// Paying the overdue installment leaves unpaid pending ones: sale is active again
	assert.Equal(t, []string{models.CreditSaleStatusActive}, statusUpdates)

	require.NotNil(t, echo)
	assert.Equal(t, models.TransactionSourceCreditInstallment, echo.Source)
	assert.True(t, echo.Value.Equal(d("33.33")))
	assert.Equal(t, "2024-02-05", echo.Date.String())
}

func TestRefreshAll_MarksPastDuePendingOverdue(t *testing.T) {
	today := models.NewDate(2024, 3, 15)

	unpaid := []models.Installment{
		{ID: 1, CreditSaleID: 1, Number: 1, Amount: d("50.00"), DueDate: models.NewDate(2024, 3, 1), Status: models.InstallmentStatusPending},
		{ID: 2, CreditSaleID: 1, Number: 2, Amount: d("50.00"), DueDate: models.NewDate(2024, 4, 1), Status: models.InstallmentStatusPending},
		{ID: 3, CreditSaleID: 2, Number: 1, Amount: d("25.00"), DueDate: models.NewDate(2024, 2, 1), Status: models.InstallmentStatusOverdue},
	}

	var markedIDs []uint
	instRepo := &mockInstallmentRepository{
		mockFindUnpaid: func(ctx context.Context) ([]models.Installment, error) {
			return unpaid, nil
		},
		mockMarkOverdue: func(ctx context.Context, ids []uint) error {
			markedIDs = ids
			return nil
		},
	}

	sales := map[uint]*models.CreditSale{
		1: {
			ID: 1, TotalAmount: d("100.00"), Status: models.CreditSaleStatusActive,
			Schedule: []models.Installment{
				{Number: 1, Amount: d("50.00"), DueDate: models.NewDate(2024, 3, 1), Status: models.InstallmentStatusOverdue},
				{Number: 2, Amount: d("50.00"), DueDate: models.NewDate(2024, 4, 1), Status: models.InstallmentStatusPending},
			},
		},
		2: {
			ID: 2, TotalAmount: d("25.00"), Status: models.CreditSaleStatusOverdue,
			Schedule: []models.Installment{
				{Number: 1, Amount: d("25.00"), DueDate: models.NewDate(2024, 2, 1), Status: models.InstallmentStatusOverdue},
			},
		},
	}

	statusUpdates := map[uint]string{}
	saleRepo := &mockCreditSaleRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.CreditSale, error) {
			return sales[id], nil
		},
		mockUpdateStatus: func(ctx context.Context, id uint, status string) error {
			statusUpdates[id] = status
			return nil
		},
	}

	svc := newTestCreditSaleService(saleRepo, instRepo, &mockTransactionRepository{})

	report, err := svc.RefreshAll(context.Background(), today)
	require.NoError(t, err)

	// Only the pending installment due before today flips; the future one and
	// the already-overdue one are untouched
	assert.Equal(t, []uint{1}, markedIDs)
	assert.Equal(t, 1, report.InstallmentsMarkedOverdue)
	assert.Equal(t, 2, report.SalesChecked)
	assert.Equal(t, 1, report.SalesMarkedOverdue)
	assert.Equal(t, map[uint]string{1: models.CreditSaleStatusOverdue}, statusUpdates)
}

func TestRefreshAll_Idempotent(t *testing.T) {
	today := models.NewDate(2024, 3, 15)

	// State after a first refresh: everything already overdue
	unpaid := []models.Installment{
		{ID: 1, CreditSaleID: 1, Number: 1, Amount: d("50.00"), DueDate: models.NewDate(2024, 3, 1), Status: models.InstallmentStatusOverdue},
	}

	var markedIDs []uint
	instRepo := &mockInstallmentRepository{
		mockFindUnpaid: func(ctx context.Context) ([]models.Installment, error) {
			return unpaid, nil
		},
		mockMarkOverdue: func(ctx context.Context, ids []uint) error {
			markedIDs = ids
			return nil
		},
	}

	saleRepo := &mockCreditSaleRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.CreditSale, error) {
			return &models.CreditSale{
				ID: 1, TotalAmount: d("50.00"), Status: models.CreditSaleStatusOverdue,
				Schedule: []models.Installment{
					{Number: 1, Amount: d("50.00"), DueDate: models.NewDate(2024, 3, 1), Status: models.InstallmentStatusOverdue},
				},
			}, nil
		},
		mockUpdateStatus: func(ctx context.Context, id uint, status string) error {
			t.Fatalf("status update on already refreshed sale: %d -> %s", id, status)
			return nil
		},
	}

	svc := newTestCreditSaleService(saleRepo, instRepo, &mockTransactionRepository{})

	report, err := svc.RefreshAll(context.Background(), today)
	require.NoError(t, err)

	assert.Empty(t, markedIDs)
	assert.Equal(t, 0, report.InstallmentsMarkedOverdue)
	assert.Equal(t, 0, report.SalesMarkedOverdue)
}

func TestRecomputeStatus_Precedence(t *testing.T) {
	paid := models.NewDate(2024, 1, 1)

	cases := []struct {
		name     string
		schedule []models.Installment
		want     string
	}{
		{
			name: "all paid wins over overdue",
			schedule: []models.Installment{
				{Status: models.InstallmentStatusPaid, PaidDate: &paid},
				{Status: models.InstallmentStatusPaid, PaidDate: &paid},
			},
			want: models.CreditSaleStatusPaid,
		},
		{
			name: "any overdue beats active",
			schedule: []models.Installment{
				{Status: models.InstallmentStatusPaid, PaidDate: &paid},
				{Status: models.InstallmentStatusOverdue},
				{Status: models.InstallmentStatusPending},
			},
			want: models.CreditSaleStatusOverdue,
		},
		{
			name: "pending only is active",
			schedule: []models.Installment{
				{Status: models.InstallmentStatusPaid, PaidDate: &paid},
				{Status: models.InstallmentStatusPending},
			},
			want: models.CreditSaleStatusActive,
		},
		{
			name:     "empty schedule stays active",
			schedule: nil,
			want:     models.CreditSaleStatusActive,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sale := &models.CreditSale{}
			assert.Equal(t, tc.want, sale.RecomputeStatus(tc.schedule))
		})
	}
}
