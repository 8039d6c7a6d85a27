package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DiChris2901/Dr-Group-sub015/config"
	"github.com/DiChris2901/Dr-Group-sub015/models"
)

// ListNotificationsHandler returns the current user's notifications, newest
// first. "unread=true" restricts to unread ones.
func ListNotificationsHandler(c *gin.Context) {
	userID, _ := c.Get("user_id")

	query := config.DB.Where("user_id = ?", userID).Order("created_at DESC")
	if c.Query("unread") == "true" {
		query = query.Where("read_at IS NULL")
	}

	var notifications []models.Notification
	if err := query.Limit(100).Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}
	if notifications == nil {
		notifications = make([]models.Notification, 0)
	}
	c.JSON(http.StatusOK, gin.H{"data": notifications})
}

// MarkNotificationReadHandler stamps one notification as read.
func MarkNotificationReadHandler(c *gin.Context) {
	userID, _ := c.Get("user_id")
	now := time.Now()

	result := config.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		Update("read_at", &now)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notificación no encontrada"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notificación marcada como leída"})
}

// GetNotificationSettingsHandler returns the user's opt-in flags.
func GetNotificationSettingsHandler(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var settings models.NotificationSettings
	if err := config.DB.Where("user_id = ?", userID).First(&settings).Error; err != nil {
		// Missing row means nothing was ever enabled.
		settings = models.NotificationSettings{UserID: userID.(uint)}
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateNotificationSettingsHandler replaces the user's opt-in flags. Every
// flag is explicit in the payload; absent means off.
func UpdateNotificationSettingsHandler(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var input models.NotificationSettings
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	input.UserID = userID.(uint)

	if err := config.DB.Save(&input).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update settings"})
		return
	}
	c.JSON(http.StatusOK, input)
}
