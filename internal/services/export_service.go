package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/barberia-app/barberia-api/internal/models"
)

// ExportService renders the balance report as downloadable files
type ExportService struct {
	balanceSvc *BalanceService
}

// NewExportService creates a new export service
func NewExportService(balanceSvc *BalanceService) *ExportService {
	return &ExportService{balanceSvc: balanceSvc}
}

func balanceItemTypeLabel(itemType string) string {
	if itemType == models.BalanceItemExpense {
		return "Gasto"
	}
	return "Ingreso"
}

// ExportCSV renders the balance as CSV
func (s *ExportService) ExportCSV(ctx context.Context, rng *models.DateRange) ([]byte, string, error) {
	report, err := s.balanceSvc.GetBalance(ctx, rng)
	if err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write([]string{"Balance Financiero", time.Now().Format("2006-01-02 15:04")})
	_ = writer.Write([]string{""})

	_ = writer.Write([]string{"Resumen"})
	_ = writer.Write([]string{"Ingresos Totales", report.TotalRevenue.StringFixed(2)})
	_ = writer.Write([]string{"Gastos Totales", report.TotalExpenses.StringFixed(2)})
	_ = writer.Write([]string{"Ganancia Neta", report.NetProfit.StringFixed(2)})
	_ = writer.Write([]string{""})

	_ = writer.Write([]string{"Fecha", "Tipo", "Descripción", "Cliente", "Monto"})
	for _, item := range report.Items {
		_ = writer.Write([]string{
			item.Date.String(),
			balanceItemTypeLabel(item.Type),
			item.Description,
			item.ClientName,
			item.Amount.StringFixed(2),
		})
	}

	writer.Flush()

	filename := fmt.Sprintf("balance_%s.csv", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// ExportXLSX renders the balance as an Excel workbook
func (s *ExportService) ExportXLSX(ctx context.Context, rng *models.DateRange) ([]byte, string, error) {
	report, err := s.balanceSvc.GetBalance(ctx, rng)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Balance"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	_ = f.SetCellValue(sheet, "A1", "Balance Financiero")
	_ = f.SetCellStyle(sheet, "A1", "A1", headerStyle)

	_ = f.SetCellValue(sheet, "A3", "Ingresos Totales")
	_ = f.SetCellValue(sheet, "B3", report.TotalRevenue.InexactFloat64())
	_ = f.SetCellValue(sheet, "A4", "Gastos Totales")
	_ = f.SetCellValue(sheet, "B4", report.TotalExpenses.InexactFloat64())
	_ = f.SetCellValue(sheet, "A5", "Ganancia Neta")
	_ = f.SetCellValue(sheet, "B5", report.NetProfit.InexactFloat64())

	_ = f.SetCellValue(sheet, "A7", "Fecha")
	_ = f.SetCellValue(sheet, "B7", "Tipo")
	_ = f.SetCellValue(sheet, "C7", "Descripción")
	_ = f.SetCellValue(sheet, "D7", "Cliente")
	_ = f.SetCellValue(sheet, "E7", "Monto")

	row := 8
	for _, item := range report.Items {
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), item.Date.String())
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), balanceItemTypeLabel(item.Type))
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), item.Description)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), item.ClientName)
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), item.Amount.InexactFloat64())
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("balance_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// ExportPDF renders the balance as a PDF
func (s *ExportService) ExportPDF(ctx context.Context, rng *models.DateRange) ([]byte, string, error) {
	report, err := s.balanceSvc.GetBalance(ctx, rng)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Balance Financiero")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Resumen")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(60, 8, "Ingresos Totales:")
	pdf.Cell(40, 8, "L "+report.TotalRevenue.StringFixed(2))
	pdf.Ln(6)
	pdf.Cell(60, 8, "Gastos Totales:")
	pdf.Cell(40, 8, "L "+report.TotalExpenses.StringFixed(2))
	pdf.Ln(6)
	pdf.Cell(60, 8, "Ganancia Neta:")
	pdf.Cell(40, 8, "L "+report.NetProfit.StringFixed(2))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Movimientos")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 9)
	for _, item := range report.Items {
		pdf.Cell(25, 6, item.Date.String())
		pdf.Cell(20, 6, balanceItemTypeLabel(item.Type))
		pdf.Cell(95, 6, item.Description)
		pdf.Cell(25, 6, "L "+item.Amount.StringFixed(2))
		pdf.Ln(6)
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("balance_%s.pdf", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
