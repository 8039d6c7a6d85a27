package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/DiChris2901/Dr-Group-sub015/config"
	"github.com/DiChris2901/Dr-Group-sub015/models"
)

// CreateChatInput is the payload for opening a chat.
type CreateChatInput struct {
	Name           string `json:"name"`
	Type           string `json:"type" binding:"required"` // "personal" or "group"
	ParticipantIDs []uint `json:"participantIds" binding:"required"`
}

// ChatListItemResponse is one entry in the user's chat list.
type ChatListItemResponse struct {
	ID           uint                  `json:"ID"`
	Name         string                `json:"name"`
	Type         string                `json:"type"`
	Participants []models.UserResponse `json:"participants"`
	LastMessage  string                `json:"lastMessage"`
	UpdatedAt    string                `json:"UpdatedAt"`
	UnreadCount  int64                 `json:"unreadCount"`
}

// ListChatsHandler returns the chats the current user participates in, most
// recently active first, with unread counters.
func ListChatsHandler(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var chats []models.Chat
	config.DB.Preload("Participants").
		Joins("JOIN chat_participants cp ON cp.chat_id = chats.id").
		Where("cp.user_id = ?", userID).
		Order("chats.updated_at DESC").
		Find(&chats)

	response := make([]ChatListItemResponse, 0, len(chats))
	for _, chat := range chats {
		var lastMsg models.ChatMessage
		config.DB.Where("chat_id = ?", chat.ID).Order("created_at DESC").Limit(1).First(&lastMsg)

		var readStatus models.MessageReadStatus
		config.DB.Where("chat_id = ? AND user_id = ?", chat.ID, userID).First(&readStatus)

		var unreadCount int64
		config.DB.Model(&models.ChatMessage{}).
			Where("chat_id = ? AND id > ?", chat.ID, readStatus.LastReadMessageID).
			Count(&unreadCount)

		participants := make([]models.UserResponse, 0, len(chat.Participants))
		for _, p := range chat.Participants {
			participants = append(participants, models.UserResponse{
				ID:       p.ID,
				FullName: p.FullName,
				PhotoURL: p.PhotoURL,
			})
		}

		lastMessageText := lastMsg.Content
		if lastMsg.Type == "file" {
			lastMessageText = lastMsg.FileName
		}

		response = append(response, ChatListItemResponse{
			ID:           chat.ID,
			Name:         chat.Name,
			Type:         chat.Type,
			Participants: participants,
			LastMessage:  lastMessageText,
			UpdatedAt:    chat.UpdatedAt.Format(time.RFC3339),
			UnreadCount:  unreadCount,
		})
	}

	c.JSON(http.StatusOK, response)
}

// CreateChatHandler opens a chat. The current user is always a participant,
// whether or not the payload lists them.
func CreateChatHandler(c *gin.Context) {
	var input CreateChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	userID, _ := c.Get("user_id")
	currentUserID := userID.(uint)

	hasCurrent := false
	for _, id := range input.ParticipantIDs {
		if id == currentUserID {
			hasCurrent = true
			break
		}
	}
	if !hasCurrent {
		input.ParticipantIDs = append(input.ParticipantIDs, currentUserID)
	}

	chat := models.Chat{
		Name:        input.Name,
		Type:        input.Type,
		CreatedByID: currentUserID,
	}
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&chat).Error; err != nil {
			return err
		}
		for _, id := range input.ParticipantIDs {
			role := "member"
			if id == currentUserID {
				role = "admin"
			}
			if err := tx.Create(&models.ChatParticipant{ChatID: chat.ID, UserID: id, Role: role}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create chat"})
		return
	}

	config.DB.Preload("Participants").First(&chat, chat.ID)
	c.JSON(http.StatusCreated, chat)
}

// GetMessagesHandler returns a chat's messages oldest first and advances the
// caller's read marker.
func GetMessagesHandler(c *gin.Context) {
	chatID := c.Param("id")
	userID, _ := c.Get("user_id")

	var membership models.ChatParticipant
	if err := config.DB.Where("chat_id = ? AND user_id = ?", chatID, userID).First(&membership).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "No eres participante de este chat"})
		return
	}

	var messages []models.ChatMessage
	if err := config.DB.Preload("User").
		Where("chat_id = ?", chatID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	if len(messages) > 0 {
		last := messages[len(messages)-1]
		// Upsert on the composite key: the first read of a chat has no marker
		// row yet and a plain update would touch nothing.
		config.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "chat_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_read_message_id"}),
		}).Create(&models.MessageReadStatus{
			ChatID:            last.ChatID,
			UserID:            userID.(uint),
			LastReadMessageID: last.ID,
		})
	}

	c.JSON(http.StatusOK, messages)
}
