package models

import (
	"gorm.io/gorm"
)

// User is a dashboard account. Telegram linkage and notification preferences
// hang off the user so the scheduled jobs can decide who receives what.
type User struct {
	gorm.Model
	FullName     string `json:"fullName"`
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-"`
	PhotoURL     string `json:"photoUrl"`
	IsAdmin      bool   `json:"isAdmin"`

	// TelegramChatID is zero until the user links their account with /start.
	TelegramChatID int64 `json:"telegramChatId,omitempty" gorm:"index"`

	Settings NotificationSettings `json:"settings" gorm:"foreignKey:UserID"`
}

// NotificationSettings holds the per-category opt-in flags. Every flag
// defaults to off: a recipient is only notified when the specific category is
// enabled, and the daily report has its own flag independent of the alert
// categories.
type NotificationSettings struct {
	UserID         uint `json:"userId" gorm:"primaryKey"`
	OverdueAlerts  bool `json:"overdueAlerts"`
	DueTodayAlerts bool `json:"dueTodayAlerts"`
	UpcomingAlerts bool `json:"upcomingAlerts"`
	DailyReport    bool `json:"dailyReport"`
}

// UserResponse is the trimmed user shape sent to the frontend.
type UserResponse struct {
	ID       uint   `json:"ID"`
	FullName string `json:"fullName"`
	PhotoURL string `json:"photoUrl"`
}
