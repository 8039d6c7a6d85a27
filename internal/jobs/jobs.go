// Package jobs runs the scheduled fan-out: commitment reminders and the
// opt-in daily report. Delivery is per-recipient best effort — one failed
// send is logged and counted, the batch always finishes.
package jobs

import (
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/DiChris2901/Dr-Group-sub015/internal/handlers"
	"github.com/DiChris2901/Dr-Group-sub015/internal/telegram"
	"github.com/DiChris2901/Dr-Group-sub015/models"
)

// Jobs wires the scheduled tasks to their delivery channels. The bot may be
// nil (Telegram disabled); the hub is always present for in-app delivery.
type Jobs struct {
	bot *telegram.Bot
	hub *handlers.Hub
}

func New(bot *telegram.Bot, hub *handlers.Hub) *Jobs {
	return &Jobs{bot: bot, hub: hub}
}

// Start registers the cron entries and launches the scheduler. Reminders go
// out at 07:00 and the daily report at 06:30, both Bogota time, matching the
// business's working day.
func (j *Jobs) Start() (*cron.Cron, error) {
	loc, err := time.LoadLocation("America/Bogota")
	if err != nil {
		return nil, err
	}

	c := cron.New(cron.WithLocation(loc))
	if _, err := c.AddFunc("30 6 * * *", j.RunDailyReport); err != nil {
		return nil, err
	}
	if _, err := c.AddFunc("0 7 * * *", j.RunReminders); err != nil {
		return nil, err
	}
	c.Start()
	slog.Info("Job scheduler started", "timezone", loc.String())
	return c, nil
}

// wantsCategory is the hard delivery gate: a recipient only gets a message
// when the matching flag is on. The daily report has its own flag and is
// never implied by the alert categories.
func wantsCategory(s models.NotificationSettings, category string) bool {
	switch category {
	case models.NotificationOverdue:
		return s.OverdueAlerts
	case models.NotificationDueToday:
		return s.DueTodayAlerts
	case models.NotificationDue3Days:
		return s.UpcomingAlerts
	case models.NotificationDailyReport:
		return s.DailyReport
	default:
		return false
	}
}

// deliver sends one rendered message to one recipient over both channels.
// Returns false when every attempted channel failed.
func (j *Jobs) deliver(user models.User, category, title, body string) bool {
	delivered := false

	if err := j.hub.NotifyUser(models.Notification{
		UserID:   user.ID,
		Category: category,
		Title:    title,
		Body:     body,
	}); err != nil {
		slog.Error("In-app notification failed", "user_id", user.ID, "category", category, "error", err)
	} else {
		delivered = true
	}

	if j.bot != nil && user.TelegramChatID != 0 {
		if err := j.bot.SendTo(user.TelegramChatID, body); err != nil {
			slog.Error("Telegram delivery failed", "user_id", user.ID, "category", category, "error", err)
		} else {
			delivered = true
		}
	}

	return delivered
}
