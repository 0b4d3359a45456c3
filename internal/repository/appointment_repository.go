package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/barberia-app/barberia-api/internal/models"
)

// AppointmentRepository defines the interface for appointment data access
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	FindByID(ctx context.Context, id uint) (*models.Appointment, error)
	FindByDay(ctx context.Context, day models.Date) ([]models.Appointment, error)
	FindAll(ctx context.Context, status string) ([]models.Appointment, error)
	Update(ctx context.Context, appointment *models.Appointment) error
	Delete(ctx context.Context, id uint) error
}

// appointmentRepository handles database operations for appointments
type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new appointment repository
func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

// Create inserts a new appointment
func (r *appointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

// FindByID retrieves an appointment
func (r *appointmentRepository) FindByID(ctx context.Context, id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := r.db.WithContext(ctx).First(&appointment, id).Error; err != nil {
		return nil, err
	}
	return &appointment, nil
}

// FindByDay retrieves the agenda of one calendar day ordered by start time
func (r *appointmentRepository) FindByDay(ctx context.Context, day models.Date) ([]models.Appointment, error) {
	var appointments []models.Appointment
	dayStart := day.Time
	dayEnd := dayStart.AddDate(0, 0, 1)
	err := r.db.WithContext(ctx).
		Where("starts_at >= ? AND starts_at < ?", dayStart, dayEnd).
		Order("starts_at ASC").
		Find(&appointments).Error
	return appointments, err
}

// FindAll retrieves appointments newest first, optionally filtered by status
func (r *appointmentRepository) FindAll(ctx context.Context, status string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	query := r.db.WithContext(ctx).Order("starts_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&appointments).Error
	return appointments, err
}

// Update persists appointment changes
func (r *appointmentRepository) Update(ctx context.Context, appointment *models.Appointment) error {
	return r.db.WithContext(ctx).Save(appointment).Error
}

// Delete removes an appointment
func (r *appointmentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Appointment{}, id).Error
}
