package telegram

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/DiChris2901/Dr-Group-sub015/internal/report"
	"github.com/DiChris2901/Dr-Group-sub015/models"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0,00"},
		{950, "$950,00"},
		{1000, "$1.000,00"},
		{1234567.5, "$1.234.567,50"},
		{-2500, "-$2.500,00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, money(tt.in))
	}
}

func TestRenderDashboardCarriesTheNumbers(t *testing.T) {
	s := report.Summary{
		Overdue:             report.BucketTotal{Count: 3, Amount: 1500000},
		Pending:             report.BucketTotal{Count: 7, Amount: 4200000},
		Paid:                report.BucketTotal{Count: 12, Amount: 9000000},
		TotalPayments:       12,
		TotalPaymentsAmount: 9000000,
	}

	out := RenderDashboard(s)

	assert.Contains(t, out, "Vencidos: 3 ($1.500.000,00)")
	assert.Contains(t, out, "Pendientes: 7 ($4.200.000,00)")
	assert.Contains(t, out, "Pagados: 12 ($9.000.000,00)")
	assert.NotContains(t, out, "sin fecha válida")
}

func TestRenderDashboardFlagsUnclassified(t *testing.T) {
	out := RenderDashboard(report.Summary{Unclassified: 2})
	assert.Contains(t, out, "2 compromisos sin fecha válida")
}

func TestRenderMonthReportListsOpenCommitmentsOnly(t *testing.T) {
	due := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)
	paid := models.Commitment{Concept: "Nómina", Amount: 100, Status: "paid"}
	open := models.Commitment{Concept: "Arriendo local", Amount: 2500000, DueDate: &due, Status: "pending"}

	out := RenderMonthReport(report.Summary{
		TotalCommitments: 2,
		Commitments:      []models.Commitment{open, paid},
	}, time.May, 2025)

	assert.Contains(t, out, "Reporte de Mayo 2025")
	assert.Contains(t, out, "Arriendo local")
	assert.Contains(t, out, "20/05/2025")
	assert.NotContains(t, out, "Nómina")
}

func TestRenderReminderEmptyInput(t *testing.T) {
	assert.Empty(t, RenderReminder(models.NotificationOverdue, nil))
}

func TestRenderReminderCategories(t *testing.T) {
	due := time.Date(2025, 6, 19, 0, 0, 0, 0, time.UTC)
	cs := []models.Commitment{{Concept: "Impuesto predial", Amount: 800000, DueDate: &due}}

	out := RenderReminder(models.NotificationDue3Days, cs)

	assert.Contains(t, out, "vencen en 3 días")
	assert.Contains(t, out, "Impuesto predial")
	assert.Contains(t, out, "$800.000,00")
}
