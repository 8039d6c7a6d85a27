package jobs

import (
	"log/slog"
	"time"

	"github.com/DiChris2901/Dr-Group-sub015/config"
	"github.com/DiChris2901/Dr-Group-sub015/internal/report"
	"github.com/DiChris2901/Dr-Group-sub015/internal/telegram"
	"github.com/DiChris2901/Dr-Group-sub015/models"
)

// RunReminders selects today's overdue / due-today / due-in-3-days
// commitments and fans them out to every opted-in recipient.
//
// The selection deliberately uses the status+date reminder policy, not the
// dashboard classifier: partially paid commitments still alert here.
func (j *Jobs) RunReminders() {
	now := time.Now()

	var commitments []models.Commitment
	if err := config.DB.
		Where("status IN ?", []string{"pending", "overdue"}).
		Find(&commitments).Error; err != nil {
		slog.Error("Reminder job: failed to fetch commitments", "error", err)
		return
	}

	reminders := report.SelectReminders(commitments, now)

	categories := []struct {
		name string
		list []models.Commitment
	}{
		{models.NotificationOverdue, reminders.Overdue},
		{models.NotificationDueToday, reminders.DueToday},
		{models.NotificationDue3Days, reminders.Due3Days},
	}

	var users []models.User
	if err := config.DB.Preload("Settings").Find(&users).Error; err != nil {
		slog.Error("Reminder job: failed to fetch users", "error", err)
		return
	}

	sent, failed := 0, 0
	for _, cat := range categories {
		if len(cat.list) == 0 {
			continue
		}
		body := telegram.RenderReminder(cat.name, cat.list)
		for _, user := range users {
			if !wantsCategory(user.Settings, cat.name) {
				continue
			}
			if j.deliver(user, cat.name, "Recordatorio de compromisos", body) {
				sent++
			} else {
				failed++
			}
		}
	}

	slog.Info("Reminder job finished",
		"overdue", len(reminders.Overdue),
		"due_today", len(reminders.DueToday),
		"due_3_days", len(reminders.Due3Days),
		"sent", sent,
		"errors", failed)
}
