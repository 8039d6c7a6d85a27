package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/DiChris2901/Dr-Group-sub015/config"
	"github.com/DiChris2901/Dr-Group-sub015/models"
)

// Colombian gambling-machine liquidation rates: exploitation rights are 12%
// of gross production, administration expenses 1% of the rights.
var (
	exploitationRightsRate = decimal.NewFromFloat(0.12)
	adminExpensesRate      = decimal.NewFromFloat(0.01)
)

// liquidationTotals carries the derived columns for one row or for the
// period total. Decimal throughout: these figures go to the regulator and
// float drift across hundreds of machines is not acceptable.
type liquidationTotals struct {
	Production decimal.Decimal
	Rights     decimal.Decimal
	Expenses   decimal.Decimal
	Total      decimal.Decimal
}

func computeRowTotals(production float64) liquidationTotals {
	p := decimal.NewFromFloat(production)
	rights := p.Mul(exploitationRightsRate).Round(2)
	expenses := rights.Mul(adminExpensesRate).Round(2)
	return liquidationTotals{
		Production: p,
		Rights:     rights,
		Expenses:   expenses,
		Total:      rights.Add(expenses),
	}
}

// ListLiquidationsHandler returns liquidation periods, newest first.
func ListLiquidationsHandler(c *gin.Context) {
	var liquidations []models.Liquidation
	query := config.DB.Model(&models.Liquidation{})
	if company := c.Query("company"); company != "" {
		query = query.Where("company_name = ?", company)
	}
	if err := query.Order("year DESC, month DESC").Find(&liquidations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch liquidations"})
		return
	}
	if liquidations == nil {
		liquidations = make([]models.Liquidation, 0)
	}
	c.JSON(http.StatusOK, gin.H{"data": liquidations})
}

// CreateLiquidationHandler registers a liquidation period with its rows.
func CreateLiquidationHandler(c *gin.Context) {
	var input models.Liquidation
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	if input.Month < 1 || input.Month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mes inválido, se espera 1-12"})
		return
	}
	if err := config.DB.Create(&input).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create liquidation"})
		return
	}
	c.JSON(http.StatusCreated, input)
}

// ExportLiquidationHandler streams one liquidation period as an Excel file:
// one row per machine with the derived rights and expense columns, plus a
// totals row. Styling is left to whoever opens the sheet.
func ExportLiquidationHandler(c *gin.Context) {
	id := c.Param("id")

	var liquidation models.Liquidation
	if err := config.DB.Preload("Rows").First(&liquidation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Liquidación no encontrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	f := excelize.NewFile()
	sheetName := "Liquidación"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sheet"})
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{
		"Serial", "NUC", "Establecimiento", "Producción",
		"Derechos de Explotación (12%)", "Gastos de Administración (1%)", "Total a Pagar",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	periodTotal := liquidationTotals{}
	for i, r := range liquidation.Rows {
		row := i + 2
		t := computeRowTotals(r.Production)
		periodTotal.Production = periodTotal.Production.Add(t.Production)
		periodTotal.Rights = periodTotal.Rights.Add(t.Rights)
		periodTotal.Expenses = periodTotal.Expenses.Add(t.Expenses)
		periodTotal.Total = periodTotal.Total.Add(t.Total)

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), r.MachineSerial)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), r.NUC)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), r.Establishment)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), t.Production.InexactFloat64())
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), t.Rights.InexactFloat64())
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), t.Expenses.InexactFloat64())
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), t.Total.InexactFloat64())
	}

	totalRow := len(liquidation.Rows) + 2
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", totalRow), "TOTAL")
	f.SetCellValue(sheetName, fmt.Sprintf("D%d", totalRow), periodTotal.Production.InexactFloat64())
	f.SetCellValue(sheetName, fmt.Sprintf("E%d", totalRow), periodTotal.Rights.InexactFloat64())
	f.SetCellValue(sheetName, fmt.Sprintf("F%d", totalRow), periodTotal.Expenses.InexactFloat64())
	f.SetCellValue(sheetName, fmt.Sprintf("G%d", totalRow), periodTotal.Total.InexactFloat64())

	fileName := fmt.Sprintf("liquidacion_%s_%04d-%02d_%s.xlsx",
		liquidation.CompanyName, liquidation.Year, liquidation.Month,
		time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
	}
}
