package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/barberia-app/barberia-api/internal/models"
	"github.com/barberia-app/barberia-api/internal/services"
	"github.com/barberia-app/barberia-api/pkg/logger"
)

type BalanceHandler struct {
	balanceService    *services.BalanceService
	exportService     *services.ExportService
	creditSaleService *services.CreditSaleService
}

func NewBalanceHandler(balanceService *services.BalanceService, exportService *services.ExportService, creditSaleService *services.CreditSaleService) *BalanceHandler {
	return &BalanceHandler{
		balanceService:    balanceService,
		exportService:     exportService,
		creditSaleService: creditSaleService,
	}
}

// Overdue flags feed into which installments show as paid revenue, so the
// report refreshes statuses first. Failure to refresh never blocks the report.
func (h *BalanceHandler) refreshStatuses(c *gin.Context) {
	if _, err := h.creditSaleService.RefreshAll(c.Request.Context(), models.Today()); err != nil {
		logger.Warn("status refresh before balance failed", "error", err.Error())
	}
}

// @Summary Balance Report
// @Description Financial balance: revenue, expenses and net profit over a date range
// @Tags Balance
// @Produce json
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} models.BalanceReport
// @Security BearerAuth
// @Router /balance [get]
func (h *BalanceHandler) Index(c *gin.Context) {
	rng, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fecha inválida, use YYYY-MM-DD"})
		return
	}

	h.refreshStatuses(c)

	report, err := h.balanceService.GetBalance(c.Request.Context(), rng)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// @Summary Export Balance
// @Description Download the balance report as csv, xlsx or pdf
// @Tags Balance
// @Produce octet-stream
// @Param format path string true "Export format (csv, xlsx, pdf)"
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /balance/export/{format} [get]
func (h *BalanceHandler) Export(c *gin.Context) {
	rng, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fecha inválida, use YYYY-MM-DD"})
		return
	}

	h.refreshStatuses(c)

	ctx := c.Request.Context()

	var (
		data        []byte
		filename    string
		contentType string
	)

	switch c.Param("format") {
	case "csv":
		data, filename, err = h.exportService.ExportCSV(ctx, rng)
		contentType = "text/csv"
	case "xlsx":
		data, filename, err = h.exportService.ExportXLSX(ctx, rng)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "pdf":
		data, filename, err = h.exportService.ExportPDF(ctx, rng)
		contentType = "application/pdf"
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Formato no soportado, use csv, xlsx o pdf"})
		return
	}

	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, data)
}
