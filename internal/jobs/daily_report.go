package jobs

import (
	"log/slog"
	"time"

	"github.com/DiChris2901/Dr-Group-sub015/config"
	"github.com/DiChris2901/Dr-Group-sub015/internal/handlers"
	"github.com/DiChris2901/Dr-Group-sub015/internal/telegram"
	"github.com/DiChris2901/Dr-Group-sub015/models"
)

// RunDailyReport sends the full dashboard summary to users who enabled the
// daily report flag. This is a separate opt-in: enabling reminder alerts
// never implies the daily report.
func (j *Jobs) RunDailyReport() {
	now := time.Now()

	summary, err := handlers.FetchSummaryData(now)
	if err != nil {
		slog.Error("Daily report job: failed to build summary", "error", err)
		return
	}
	body := telegram.RenderDailyReport(summary, now)

	var users []models.User
	if err := config.DB.Preload("Settings").Find(&users).Error; err != nil {
		slog.Error("Daily report job: failed to fetch users", "error", err)
		return
	}

	sent, failed := 0, 0
	for _, user := range users {
		if !wantsCategory(user.Settings, models.NotificationDailyReport) {
			continue
		}
		if j.deliver(user, models.NotificationDailyReport, "Reporte diario", body) {
			sent++
		} else {
			failed++
		}
	}

	slog.Info("Daily report job finished", "sent", sent, "errors", failed)
}
