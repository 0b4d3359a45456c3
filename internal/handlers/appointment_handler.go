package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/barberia-app/barberia-api/internal/models"
	"github.com/barberia-app/barberia-api/internal/services"
)

type AppointmentHandler struct {
	appointmentService *services.AppointmentService
}

func NewAppointmentHandler(appointmentService *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

// @Summary List Appointments
// @Description Get appointments, optionally filtered by status
// @Tags Appointments
// @Produce json
// @Param status query string false "Filter by status (scheduled, completed, cancelled)"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /appointments [get]
func (h *AppointmentHandler) Index(c *gin.Context) {
	appointments, err := h.appointmentService.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		responses = append(responses, a.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"appointments": responses})
}

// @Summary Daily Agenda
// @Description Get the appointments of a given day
// @Tags Appointments
// @Produce json
// @Param date query string false "Day (YYYY-MM-DD), defaults to today"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /appointments/agenda [get]
func (h *AppointmentHandler) Agenda(c *gin.Context) {
	day := models.Today()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := models.ParseDate(dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Fecha inválida, use YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	appointments, err := h.appointmentService.Agenda(c.Request.Context(), day)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		responses = append(responses, a.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"date": day.String(), "appointments": responses})
}

type AppointmentRequest struct {
	ClientID   *uint           `json:"client_id"`
	ClientName string          `json:"client_name" binding:"required"`
	Service    string          `json:"service" binding:"required"`
	Price      decimal.Decimal `json:"price"`
	StartsAt   time.Time       `json:"starts_at" binding:"required"`
	Notes      *string         `json:"notes"`
}

// @Summary Create Appointment
// @Description Schedule a new appointment
// @Tags Appointments
// @Accept json
// @Produce json
// @Param request body AppointmentRequest true "Appointment Data"
// @Success 201 {object} models.AppointmentResponse
// @Security BearerAuth
// @Router /appointments [post]
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req AppointmentRequest
	if err := BindNestedOrFlat(c, "appointment", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appointment := &models.Appointment{
		ClientID:   req.ClientID,
		ClientName: req.ClientName,
		Service:    req.Service,
		Price:      req.Price,
		StartsAt:   req.StartsAt,
		Status:     models.AppointmentStatusScheduled,
		Notes:      req.Notes,
	}

	if err := h.appointmentService.Create(c.Request.Context(), appointment); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"appointment": appointment.ToResponse()})
}

// @Summary Complete Appointment
// @Description Mark an appointment as completed
// @Tags Appointments
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} models.AppointmentResponse
// @Security BearerAuth
// @Router /appointments/{id}/complete [post]
func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	appointment, err := h.appointmentService.Complete(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": appointment.ToResponse(), "message": "Cita completada"})
}

// @Summary Cancel Appointment
// @Description Mark an appointment as cancelled
// @Tags Appointments
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} models.AppointmentResponse
// @Security BearerAuth
// @Router /appointments/{id}/cancel [post]
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	appointment, err := h.appointmentService.Cancel(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": appointment.ToResponse(), "message": "Cita cancelada"})
}

// @Summary Delete Appointment
// @Description Delete an appointment (Admin)
// @Tags Appointments
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /appointments/{id} [delete]
func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	if err := h.appointmentService.Delete(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cita eliminada"})
}
