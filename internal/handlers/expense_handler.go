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

type ExpenseHandler struct {
	expenseService *services.ExpenseService
}

func NewExpenseHandler(expenseService *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// @Summary List Expenses
// @Description Get expenses within an optional date range
// @Tags Expenses
// @Produce json
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Param category query string false "Filter by category"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /expenses [get]
func (h *ExpenseHandler) Index(c *gin.Context) {
	rng, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fecha inválida, use YYYY-MM-DD"})
		return
	}

	expenses, err := h.expenseService.List(c.Request.Context(), rng, c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		responses = append(responses, e.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"expenses": responses})
}

type ExpenseRequest struct {
	Description string          `json:"description" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Date        *models.Date    `json:"date"`
}

// @Summary Create Expense
// @Description Register a business expense
// @Tags Expenses
// @Accept json
// @Produce json
// @Param request body ExpenseRequest true "Expense Data"
// @Success 201 {object} models.ExpenseResponse
// @Security BearerAuth
// @Router /expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req ExpenseRequest
	if err := BindNestedOrFlat(c, "expense", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expense := &models.Expense{
		Description: req.Description,
		Category:    req.Category,
		Amount:      req.Amount,
	}
	if req.Date != nil {
		expense.Date = *req.Date
	}

	err := h.expenseService.Create(c.Request.Context(), expense,
		middleware.GetUserID(c), c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"expense": expense.ToResponse()})
}

// @Summary Update Expense
// @Description Update an existing expense
// @Tags Expenses
// @Accept json
// @Produce json
// @Param id path int true "Expense ID"
// @Param request body ExpenseRequest true "Expense Data"
// @Success 200 {object} models.ExpenseResponse
// @Security BearerAuth
// @Router /expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	expense, err := h.expenseService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	var req ExpenseRequest
	if err := BindNestedOrFlat(c, "expense", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expense.Description = req.Description
	expense.Category = req.Category
	expense.Amount = req.Amount
	if req.Date != nil {
		expense.Date = *req.Date
	}

	if err := h.expenseService.Update(c.Request.Context(), expense); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense.ToResponse()})
}

// @Summary Delete Expense
// @Description Delete an expense (Admin)
// @Tags Expenses
// @Produce json
// @Param id path int true "Expense ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	err := h.expenseService.Delete(c.Request.Context(), uint(id),
		middleware.GetUserID(c), c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Gasto eliminado"})
}
