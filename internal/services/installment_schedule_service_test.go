package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberia-app/barberia-api/internal/models"
)

func TestGenerateSchedule_AmountsSumToTotal(t *testing.T) {
	svc := NewInstallmentScheduleService()

	totals := []string{"100.00", "99.99", "0.01", "1000.00", "33.33"}
	for _, totalStr := range totals {
		total := decimal.RequireFromString(totalStr)
		for n := models.MinInstallments; n <= models.MaxInstallments; n++ {
			sale := &models.CreditSale{
				TotalAmount:  total,
				Installments: n,
				FirstDueDate: models.NewDate(2024, 1, 15),
			}

			schedule, err := svc.GenerateSchedule(sale)
			require.NoError(t, err, "total=%s n=%d", totalStr, n)
			require.Len(t, schedule, n)

			sum := decimal.Zero
			for _, inst := range schedule {
				sum = sum.Add(inst.Amount)
			}
			assert.True(t, sum.Equal(total), "total=%s n=%d sum=%s", totalStr, n, sum)
		}
	}
}

func TestGenerateSchedule_ThreeWaySplit(t *testing.T) {
	svc := NewInstallmentScheduleService()
	sale := &models.CreditSale{
		TotalAmount:  decimal.RequireFromString("100.00"),
		Installments: 3,
		FirstDueDate: models.NewDate(2024, 1, 15),
	}

	schedule, err := svc.GenerateSchedule(sale)
	require.NoError(t, err)
	require.Len(t, schedule, 3)

	assert.Equal(t, "33.33", schedule[0].Amount.StringFixed(2))
	assert.Equal(t, "33.33", schedule[1].Amount.StringFixed(2))
	assert.Equal(t, "33.34", schedule[2].Amount.StringFixed(2))
}

func TestGenerateSchedule_MonthlyDueDates(t *testing.T) {
	svc := NewInstallmentScheduleService()
	sale := &models.CreditSale{
		TotalAmount:  decimal.RequireFromString("300.00"),
		Installments: 4,
		FirstDueDate: models.NewDate(2024, 3, 15),
	}

	schedule, err := svc.GenerateSchedule(sale)
	require.NoError(t, err)

	assert.Equal(t, "2024-03-15", schedule[0].DueDate.String())
	assert.Equal(t, "2024-04-15", schedule[1].DueDate.String())
	assert.Equal(t, "2024-05-15", schedule[2].DueDate.String())
	assert.Equal(t, "2024-06-15", schedule[3].DueDate.String())

	for i, inst := range schedule {
		assert.Equal(t, i+1, inst.Number)
		assert.Equal(t, models.InstallmentStatusPending, inst.Status)
	}
}

func TestGenerateSchedule_MonthEndClamping(t *testing.T) {
	svc := NewInstallmentScheduleService()
	sale := &models.CreditSale{
		TotalAmount:  decimal.RequireFromString("400.00"),
		Installments: 4,
		FirstDueDate: models.NewDate(2024, 1, 31),
	}

	schedule, err := svc.GenerateSchedule(sale)
	require.NoError(t, err)

	// 2024 is a leap year; short months clamp to their last day
	assert.Equal(t, "2024-01-31", schedule[0].DueDate.String())
	assert.Equal(t, "2024-02-29", schedule[1].DueDate.String())
	assert.Equal(t, "2024-03-31", schedule[2].DueDate.String())
	assert.Equal(t, "2024-04-30", schedule[3].DueDate.String())
}

func TestGenerateSchedule_InvalidInstallmentCount(t *testing.T) {
	svc := NewInstallmentScheduleService()

	for _, n := range []int{0, -1, 25, 100} {
		sale := &models.CreditSale{
			TotalAmount:  decimal.RequireFromString("100.00"),
			Installments: n,
			FirstDueDate: models.NewDate(2024, 1, 15),
		}
		_, err := svc.GenerateSchedule(sale)
		assert.ErrorIs(t, err, ErrValidation, "n=%d", n)
	}
}

func TestGenerateSchedule_NonPositiveTotal(t *testing.T) {
	svc := NewInstallmentScheduleService()

	for _, totalStr := range []string{"0.00", "-10.00"} {
		sale := &models.CreditSale{
			TotalAmount:  decimal.RequireFromString(totalStr),
			Installments: 3,
			FirstDueDate: models.NewDate(2024, 1, 15),
		}
		_, err := svc.GenerateSchedule(sale)
		assert.ErrorIs(t, err, ErrValidation, "total=%s", totalStr)
	}
}
