package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/barberia-app/barberia-api/internal/middleware"
	"github.com/barberia-app/barberia-api/internal/models"
	"github.com/barberia-app/barberia-api/internal/services"
	"github.com/barberia-app/barberia-api/pkg/logger"
)

type CreditSaleHandler struct {
	creditSaleService *services.CreditSaleService
}

func NewCreditSaleHandler(creditSaleService *services.CreditSaleService) *CreditSaleHandler {
	return &CreditSaleHandler{creditSaleService: creditSaleService}
}

// refreshStatuses brings overdue flags up to date before a read. A failed
// refresh is logged but never blocks the read itself.
func (h *CreditSaleHandler) refreshStatuses(c *gin.Context) {
	if _, err := h.creditSaleService.RefreshAll(c.Request.Context(), models.Today()); err != nil {
		logger.Warn("status refresh before read failed", "error", err.Error())
	}
}

// @Summary List Credit Sales
// @Description Get credit sales, optionally filtered by status
// @Tags CreditSales
// @Produce json
// @Param status query string false "Filter by status (active, overdue, paid)"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /credit-sales [get]
func (h *CreditSaleHandler) Index(c *gin.Context) {
	h.refreshStatuses(c)

	sales, err := h.creditSaleService.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.CreditSaleResponse, 0, len(sales))
	for _, s := range sales {
		responses = append(responses, s.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"credit_sales": responses})
}

// @Summary Get Credit Sale
// @Description Get a credit sale with its installment schedule
// @Tags CreditSales
// @Produce json
// @Param id path int true "Credit Sale ID"
// @Success 200 {object} models.CreditSaleResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /credit-sales/{id} [get]
func (h *CreditSaleHandler) Show(c *gin.Context) {
	h.refreshStatuses(c)

	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	sale, err := h.creditSaleService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"credit_sale": sale.ToResponse()})
}

type CreditSaleRequest struct {
	ClientID     *uint           `json:"client_id"`
	ClientName   string          `json:"client_name"`
	Products     string          `json:"products" binding:"required"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Discount     decimal.Decimal `json:"discount"`
	Installments int             `json:"installments" binding:"required"`
	SaleDate     *models.Date    `json:"sale_date"`
	FirstDueDate *models.Date    `json:"first_due_date"`
}

// @Summary Create Credit Sale
// @Description Create a fiado sale and generate its installment schedule
// @Tags CreditSales
// @Accept json
// @Produce json
// @Param request body CreditSaleRequest true "Credit Sale Data"
// @Success 201 {object} models.CreditSaleResponse
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /credit-sales [post]
func (h *CreditSaleHandler) Create(c *gin.Context) {
	var req CreditSaleRequest
	if err := BindNestedOrFlat(c, "credit_sale", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sale := &models.CreditSale{
		ClientID:     req.ClientID,
		ClientName:   req.ClientName,
		Products:     req.Products,
		Subtotal:     req.Subtotal,
		Discount:     req.Discount,
		Installments: req.Installments,
	}
	if req.SaleDate != nil {
		sale.SaleDate = *req.SaleDate
	}
	if req.FirstDueDate != nil {
		sale.FirstDueDate = *req.FirstDueDate
	}

	err := h.creditSaleService.Create(c.Request.Context(), sale,
		middleware.GetUserID(c), c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"credit_sale": sale.ToResponse()})
}

// @Summary Delete Credit Sale
// @Description Delete a credit sale and its schedule (Admin)
// @Tags CreditSales
// @Produce json
// @Param id path int true "Credit Sale ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /credit-sales/{id} [delete]
func (h *CreditSaleHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	err := h.creditSaleService.Delete(c.Request.Context(), uint(id),
		middleware.GetUserID(c), c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Venta al crédito eliminada"})
}

type PayInstallmentRequest struct {
	PaymentMethod string       `json:"payment_method" binding:"required"`
	PaidDate      *models.Date `json:"paid_date"`
}

// @Summary Pay Installment
// @Description Register the payment of an installment
// @Tags CreditSales
// @Accept json
// @Produce json
// @Param installment_id path int true "Installment ID"
// @Param request body PayInstallmentRequest true "Payment Data"
// @Success 200 {object} models.InstallmentResponse
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /installments/{installment_id}/pay [post]
func (h *CreditSaleHandler) PayInstallment(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("installment_id"), 10, 32)

	var req PayInstallmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El método de pago es requerido"})
		return
	}

	installment, err := h.creditSaleService.PayInstallment(c.Request.Context(),
		uint(id), req.PaidDate, req.PaymentMethod,
		middleware.GetUserID(c), c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"installment": installment.ToResponse(), "message": "Cuota pagada"})
}

// @Summary Refresh Statuses
// @Description Recompute overdue statuses for all open credit sales
// @Tags CreditSales
// @Produce json
// @Success 200 {object} models.RefreshReport
// @Security BearerAuth
// @Router /credit-sales/refresh [post]
func (h *CreditSaleHandler) Refresh(c *gin.Context) {
	report, err := h.creditSaleService.RefreshAll(c.Request.Context(), models.Today())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
