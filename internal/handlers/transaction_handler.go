package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/barberia-app/barberia-api/internal/middleware"
	"github.com/barberia-app/barberia-api/internal/models"
	"github.com/barberia-app/barberia-api/internal/services"
)

type TransactionHandler struct {
	transactionService *services.TransactionService
}

func NewTransactionHandler(transactionService *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// @Summary List Transactions
// @Description Get transactions within an optional date range
// @Tags Transactions
// @Produce json
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Param payment_method query string false "Filter by payment method"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /transactions [get]
func (h *TransactionHandler) Index(c *gin.Context) {
	rng, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fecha inválida, use YYYY-MM-DD"})
		return
	}

	transactions, err := h.transactionService.List(c.Request.Context(), rng, c.Query("payment_method"))
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		responses = append(responses, t.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"transactions": responses})
}

type TransactionRequest struct {
	ClientID      *uint           `json:"client_id"`
	ClientName    string          `json:"client_name"`
	Description   string          `json:"description" binding:"required"`
	Kind          string          `json:"kind" binding:"required"`
	Value         decimal.Decimal `json:"value" binding:"required"`
	Discount      decimal.Decimal `json:"discount"`
	PaymentMethod string          `json:"payment_method" binding:"required"`
	Date          *models.Date    `json:"date"`
}

// @Summary Create Transaction
// @Description Register a point-of-sale transaction
// @Tags Transactions
// @Accept json
// @Produce json
// @Param request body TransactionRequest true "Transaction Data"
// @Success 201 {object} models.TransactionResponse
// @Security BearerAuth
// @Router /transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	var req TransactionRequest
	if err := BindNestedOrFlat(c, "transaction", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	transaction := &models.Transaction{
		ClientID:      req.ClientID,
		ClientName:    req.ClientName,
		Description:   req.Description,
		Kind:          req.Kind,
		Source:        models.TransactionSourcePOS,
		Value:         req.Value,
		Discount:      req.Discount,
		PaymentMethod: req.PaymentMethod,
	}
	if req.Date != nil {
		transaction.Date = *req.Date
	}

	err := h.transactionService.Create(c.Request.Context(), transaction,
		middleware.GetUserID(c), c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction.ToResponse()})
}

// @Summary Delete Transaction
// @Description Delete a transaction (Admin). Installment echoes cannot be deleted here.
// @Tags Transactions
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	err := h.transactionService.Delete(c.Request.Context(), uint(id),
		middleware.GetUserID(c), c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transacción eliminada"})
}
