package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/barberia-app/barberia-api/internal/models"
	"github.com/barberia-app/barberia-api/internal/repository"
)

// AppointmentService handles the shop agenda
type AppointmentService struct {
	repo repository.AppointmentRepository
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(repo repository.AppointmentRepository) *AppointmentService {
	return &AppointmentService{repo: repo}
}

// Create schedules an appointment
func (s *AppointmentService) Create(ctx context.Context, appointment *models.Appointment) error {
	if appointment.ClientName == "" {
		return fmt.Errorf("%w: se requiere el nombre del cliente", ErrValidation)
	}
	if appointment.Service == "" {
		return fmt.Errorf("%w: se requiere el servicio de la cita", ErrValidation)
	}
	if appointment.StartsAt.IsZero() {
		return fmt.Errorf("%w: se requiere la fecha y hora de la cita", ErrValidation)
	}
	appointment.Status = models.AppointmentStatusScheduled
	return s.repo.Create(ctx, appointment)
}

// FindByID gets an appointment
func (s *AppointmentService) FindByID(ctx context.Context, id uint) (*models.Appointment, error) {
	appointment, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return appointment, err
}

// Agenda gets the appointments of one calendar day
func (s *AppointmentService) Agenda(ctx context.Context, day models.Date) ([]models.Appointment, error) {
	return s.repo.FindByDay(ctx, day)
}

// List gets appointments, optionally filtered by status
func (s *AppointmentService) List(ctx context.Context, status string) ([]models.Appointment, error) {
	return s.repo.FindAll(ctx, status)
}

// Complete marks a scheduled appointment as done
func (s *AppointmentService) Complete(ctx context.Context, id uint) (*models.Appointment, error) {
	appointment, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !appointment.MayComplete() {
		return nil, ErrInvalidState
	}
	appointment.Status = models.AppointmentStatusCompleted
	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// Cancel cancels a scheduled appointment
func (s *AppointmentService) Cancel(ctx context.Context, id uint) (*models.Appointment, error) {
	appointment, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !appointment.MayCancel() {
		return nil, ErrInvalidState
	}
	appointment.Status = models.AppointmentStatusCancelled
	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// Delete removes an appointment
func (s *AppointmentService) Delete(ctx context.Context, id uint) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
