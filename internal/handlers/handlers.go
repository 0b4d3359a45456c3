package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/barberia-app/barberia-api/internal/jobs"
	"github.com/barberia-app/barberia-api/internal/models"
	"github.com/barberia-app/barberia-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health      *HealthHandler
	Auth        *AuthHandler
	Client      *ClientHandler
	Appointment *AppointmentHandler
	CreditSale  *CreditSaleHandler
	Transaction *TransactionHandler
	Expense     *ExpenseHandler
	Balance     *BalanceHandler
	Job         *JobHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services, worker *jobs.Worker) *Handlers {
	return &Handlers{
		Health:      NewHealthHandler(),
		Auth:        NewAuthHandler(svcs.Auth),
		Client:      NewClientHandler(svcs.Client, svcs.CreditSale),
		Appointment: NewAppointmentHandler(svcs.Appointment),
		CreditSale:  NewCreditSaleHandler(svcs.CreditSale),
		Transaction: NewTransactionHandler(svcs.Transaction),
		Expense:     NewExpenseHandler(svcs.Expense),
		Balance:     NewBalanceHandler(svcs.Balance, svcs.Export, svcs.CreditSale),
		Job:         NewJobHandler(worker),
	}
}

// respondError maps service errors to HTTP status codes
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrDuplicatePayment):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidState):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidPassword), errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// parseDateRange reads the optional start_date / end_date query params.
// Missing params mean "all time" (nil range). A start without an end runs to
// today, an end without a start runs from the epoch of the business (2000).
func parseDateRange(c *gin.Context) (*models.DateRange, error) {
	startStr := c.Query("start_date")
	endStr := c.Query("end_date")

	if startStr == "" && endStr == "" {
		return nil, nil
	}

	rng := &models.DateRange{
		Start: models.NewDate(2000, 1, 1),
		End:   models.Today(),
	}

	if startStr != "" {
		start, err := models.ParseDate(startStr)
		if err != nil {
			return nil, err
		}
		rng.Start = start
	}

	if endStr != "" {
		end, err := models.ParseDate(endStr)
		if err != nil {
			return nil, err
		}
		rng.End = end
	}

	return rng, nil
}
