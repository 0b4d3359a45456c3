package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/barberia-app/barberia-api/internal/models"
)

// InstallmentFSM wraps an installment with its state machine.
//
// pending → overdue (date-driven, applied by the status scan)
// pending → paid, overdue → paid (explicit payment only)
// paid is terminal and never reverts.
type InstallmentFSM struct {
	installment *models.Installment
	fsm         *fsm.FSM
}

// NewInstallmentFSM creates a new installment state machine
func NewInstallmentFSM(installment *models.Installment) *InstallmentFSM {
	ifsm := &InstallmentFSM{
		installment: installment,
	}

	ifsm.fsm = fsm.NewFSM(
		installment.Status,
		fsm.Events{
			// pending → overdue (due date passed without payment)
			{Name: "expire", Src: []string{models.InstallmentStatusPending}, Dst: models.InstallmentStatusOverdue},

			// pending/overdue → paid
			{Name: "pay", Src: []string{models.InstallmentStatusPending, models.InstallmentStatusOverdue}, Dst: models.InstallmentStatusPaid},
		},
		fsm.Callbacks{},
	)

	return ifsm
}

// Expire transitions the installment to overdue
func (f *InstallmentFSM) Expire(ctx context.Context) error {
	if !f.installment.MayExpire() {
		return fmt.Errorf("installment cannot expire in current state: %s", f.installment.Status)
	}

	if err := f.fsm.Event(ctx, "expire"); err != nil {
		return fmt.Errorf("failed to expire installment: %w", err)
	}

	f.installment.Status = f.fsm.Current()
	return nil
}

// Pay transitions the installment to paid
func (f *InstallmentFSM) Pay(ctx context.Context) error {
	if !f.installment.MayPay() {
		return fmt.Errorf("installment cannot be paid in current state: %s", f.installment.Status)
	}

	if err := f.fsm.Event(ctx, "pay"); err != nil {
		return fmt.Errorf("failed to pay installment: %w", err)
	}

	f.installment.Status = f.fsm.Current()
	return nil
}

// Current returns the current state
func (f *InstallmentFSM) Current() string {
	return f.fsm.Current()
}

// Can checks if a transition is possible
func (f *InstallmentFSM) Can(event string) bool {
	return f.fsm.Can(event)
}
