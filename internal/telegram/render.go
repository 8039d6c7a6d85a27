package telegram

import (
	"fmt"
	"strings"
	"time"

	"github.com/DiChris2901/Dr-Group-sub015/internal/report"
	"github.com/DiChris2901/Dr-Group-sub015/models"
)

var monthNames = [...]string{
	"", "Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// money formats an amount with thousands separators, Colombian style.
func money(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	parts := strings.SplitN(s, ".", 2)
	intPart, decPart := parts[0], parts[1]

	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var out []string
	for len(intPart) > 3 {
		out = append([]string{intPart[len(intPart)-3:]}, out...)
		intPart = intPart[:len(intPart)-3]
	}
	out = append([]string{intPart}, out...)

	sign := ""
	if neg {
		sign = "-"
	}
	return sign + "$" + strings.Join(out, ".") + "," + decPart
}

// RenderDashboard builds the /dashboard message from a summary. Pure
// formatting; all numbers come from the aggregation as-is.
func RenderDashboard(s report.Summary) string {
	var sb strings.Builder
	sb.WriteString("📊 <b>Resumen general</b>\n\n")
	fmt.Fprintf(&sb, "🔴 Vencidos: %d (%s)\n", s.Overdue.Count, money(s.Overdue.Amount))
	fmt.Fprintf(&sb, "🟠 Vencen hoy: %d (%s)\n", s.DueToday.Count, money(s.DueToday.Amount))
	fmt.Fprintf(&sb, "🟡 Próximos 7 días: %d (%s)\n", s.Next7Days.Count, money(s.Next7Days.Amount))
	fmt.Fprintf(&sb, "🔵 Con pago parcial: %d (%s)\n", s.PartialPayment.Count, money(s.PartialPayment.Amount))
	fmt.Fprintf(&sb, "⚪ Pendientes: %d (%s)\n", s.Pending.Count, money(s.Pending.Amount))
	fmt.Fprintf(&sb, "🟢 Pagados: %d (%s)\n\n", s.Paid.Count, money(s.Paid.Amount))
	fmt.Fprintf(&sb, "💳 Pagos registrados: %d por %s\n", s.TotalPayments, money(s.TotalPaymentsAmount))
	fmt.Fprintf(&sb, "📅 Pagos este mes: %d por %s\n", s.MonthPayments.Count, money(s.MonthPayments.Amount))
	fmt.Fprintf(&sb, "☀️ Pagos hoy: %d por %s\n", s.TodayPayments.Count, money(s.TodayPayments.Amount))
	if s.Unclassified > 0 {
		fmt.Fprintf(&sb, "\n⚠️ %d compromisos sin fecha válida (incluidos en pendientes)\n", s.Unclassified)
	}
	return sb.String()
}

// RenderMonthReport builds the /reporte and /mes messages.
func RenderMonthReport(s report.Summary, month time.Month, year int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📆 <b>Reporte de %s %d</b>\n\n", monthNames[int(month)], year)
	fmt.Fprintf(&sb, "Compromisos del mes: %d\n", s.TotalCommitments)
	fmt.Fprintf(&sb, "🔴 Vencidos: %d (%s)\n", s.Overdue.Count, money(s.Overdue.Amount))
	fmt.Fprintf(&sb, "⚪ Pendientes: %d (%s)\n", s.Pending.Count, money(s.Pending.Amount))
	fmt.Fprintf(&sb, "🟢 Pagados: %d (%s)\n\n", s.Paid.Count, money(s.Paid.Amount))
	fmt.Fprintf(&sb, "💳 Pagos del mes: %d por %s\n", s.TotalPayments, money(s.TotalPaymentsAmount))

	// Top of the list the UI shows: nearest due dates first.
	shown := 0
	for _, c := range s.Commitments {
		if report.ResolveStatus(c) == report.StatusSettled {
			continue
		}
		if shown == 0 {
			sb.WriteString("\nPróximos vencimientos:\n")
		}
		due := "sin fecha"
		if d, err := report.ParseDay(c.DueDate); err == nil {
			due = d.Format("02/01/2006")
		}
		fmt.Fprintf(&sb, "• %s — %s (%s)\n", c.Concept, money(c.Amount), due)
		shown++
		if shown == 5 {
			break
		}
	}
	return sb.String()
}

// RenderReminder builds one reminder line set for the notification job.
func RenderReminder(category string, commitments []models.Commitment) string {
	if len(commitments) == 0 {
		return ""
	}

	var title string
	switch category {
	case models.NotificationOverdue:
		title = "🔴 <b>Compromisos vencidos</b>"
	case models.NotificationDueToday:
		title = "🟠 <b>Compromisos que vencen hoy</b>"
	case models.NotificationDue3Days:
		title = "🟡 <b>Compromisos que vencen en 3 días</b>"
	default:
		title = "<b>Recordatorio</b>"
	}

	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString("\n")
	for _, c := range commitments {
		due := ""
		if d, err := report.ParseDay(c.DueDate); err == nil {
			due = " — vence " + d.Format("02/01/2006")
		}
		fmt.Fprintf(&sb, "• %s: %s%s\n", c.Concept, money(c.Amount), due)
	}
	return sb.String()
}

// RenderDailyReport builds the opt-in daily summary message.
func RenderDailyReport(s report.Summary, now time.Time) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🗞 <b>Reporte diario — %s</b>\n\n", now.Format("02/01/2006"))
	sb.WriteString(RenderDashboard(s))
	return sb.String()
}
