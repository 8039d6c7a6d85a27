package models

import (
	"gorm.io/gorm"
)

// Chat is a conversation, either personal or group. The AI assistant is a
// regular participant with a reserved user ID, so assistant conversations
// need no special casing in storage.
type Chat struct {
	gorm.Model
	Name         string `json:"name"`
	Type         string `json:"type" gorm:"type:varchar(20)"` // 'personal', 'group'
	CreatedByID  uint   `json:"createdById"`
	CreatedBy    User   `json:"createdBy" gorm:"foreignKey:CreatedByID"`
	Participants []User `json:"participants" gorm:"many2many:chat_participants;"`
}

// ChatParticipant is the join table for chat membership.
type ChatParticipant struct {
	ChatID uint   `json:"chatId" gorm:"primaryKey"`
	UserID uint   `json:"userId" gorm:"primaryKey"`
	Role   string `json:"role" gorm:"type:varchar(20)"` // 'member', 'admin'
}

// ChatMessage is a single message. Type distinguishes plain text from file
// attachments.
type ChatMessage struct {
	gorm.Model
	ChatID   uint   `json:"chatId" gorm:"index"`
	UserID   uint   `json:"userId"`
	User     User   `json:"user" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Type     string `json:"type" gorm:"type:varchar(20);not null;default:'text'"`
	Content  string `json:"content"`
	FileURL  string `json:"fileUrl,omitempty" gorm:"type:varchar(255)"`
	FileName string `json:"fileName,omitempty" gorm:"type:varchar(255)"`
	FileSize int64  `json:"fileSize,omitempty"`
}

// MessageReadStatus tracks the last message a user has read in a chat, for
// unread counters.
type MessageReadStatus struct {
	ChatID            uint `json:"chatId" gorm:"primaryKey"`
	UserID            uint `json:"userId" gorm:"primaryKey"`
	LastReadMessageID uint `json:"lastReadMessageId"`
}
