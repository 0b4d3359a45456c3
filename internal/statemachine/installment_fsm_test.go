package statemachine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/barberia-app/barberia-api/internal/models"
)

func TestInstallmentFSM_PendingExpiresToOverdue(t *testing.T) {
	inst := &models.Installment{Status: models.InstallmentStatusPending}
	f := NewInstallmentFSM(inst)

	err := f.Expire(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, models.InstallmentStatusOverdue, inst.Status)
}

func TestInstallmentFSM_PendingCanBePaid(t *testing.T) {
	inst := &models.Installment{Status: models.InstallmentStatusPending}
	f := NewInstallmentFSM(inst)

	err := f.Pay(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, models.InstallmentStatusPaid, inst.Status)
}

func TestInstallmentFSM_OverdueCanBePaid(t *testing.T) {
	inst := &models.Installment{Status: models.InstallmentStatusOverdue}
	f := NewInstallmentFSM(inst)

	err := f.Pay(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, models.InstallmentStatusPaid, inst.Status)
}

func TestInstallmentFSM_PaidIsTerminal(t *testing.T) {
	inst := &models.Installment{Status: models.InstallmentStatusPaid}
	f := NewInstallmentFSM(inst)

	assert.Error(t, f.Pay(context.Background()))
	assert.Error(t, f.Expire(context.Background()))
	assert.Equal(t, models.InstallmentStatusPaid, inst.Status)
}

func TestInstallmentFSM_OverdueCannotExpireAgain(t *testing.T) {
	inst := &models.Installment{Status: models.InstallmentStatusOverdue}
	f := NewInstallmentFSM(inst)

	assert.Error(t, f.Expire(context.Background()))
	assert.Equal(t, models.InstallmentStatusOverdue, inst.Status)
}
