package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification categories. They mirror the reminder selector's output plus
// the daily report.
const (
	NotificationOverdue     = "overdue"
	NotificationDueToday    = "due_today"
	NotificationDue3Days    = "due_3_days"
	NotificationDailyReport = "daily_report"
)

// Notification is a persisted in-app notification. Online users additionally
// receive it live over the websocket hub; offline users see it on next login.
type Notification struct {
	gorm.Model
	UserID       uint       `json:"userId" gorm:"index;not null"`
	Category     string     `json:"category" gorm:"type:varchar(30);not null"`
	Title        string     `json:"title"`
	Body         string     `json:"body"`
	CommitmentID *uint      `json:"commitmentId,omitempty"`
	ReadAt       *time.Time `json:"readAt,omitempty"`
}
