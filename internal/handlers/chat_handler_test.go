package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/DiChris2901/Dr-Group-sub015/config"
	"github.com/DiChris2901/Dr-Group-sub015/models"
)

// openTestDB swaps config.DB for an in-memory database scoped to one test.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection only: every new connection to :memory: is a fresh database.
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.NotificationSettings{},
		&models.Chat{}, &models.ChatParticipant{},
		&models.ChatMessage{}, &models.MessageReadStatus{},
	))
	prev := config.DB
	config.DB = db
	t.Cleanup(func() { config.DB = prev })
	return db
}

func chatRequest(t *testing.T, handler gin.HandlerFunc, userID uint, chatID string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if chatID != "" {
		c.Params = gin.Params{{Key: "id", Value: chatID}}
	}
	c.Set("user_id", userID)
	handler(c)
	return w
}

func unreadCount(t *testing.T, userID uint) int64 {
	t.Helper()
	w := chatRequest(t, ListChatsHandler, userID, "")
	require.Equal(t, http.StatusOK, w.Code)
	var chats []ChatListItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &chats))
	require.Len(t, chats, 1)
	return chats[0].UnreadCount
}

func TestGetMessagesCreatesReadMarkerOnFirstRead(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Create(&models.User{FullName: "Ana", Email: "ana@drgroup.co"}).Error)
	require.NoError(t, db.Create(&models.User{FullName: "Luis", Email: "luis@drgroup.co"}).Error)

	chat := models.Chat{Name: "Pagos", Type: "group", CreatedByID: 1}
	require.NoError(t, db.Create(&chat).Error)
	for _, uid := range []uint{1, 2} {
		require.NoError(t, db.Create(&models.ChatParticipant{ChatID: chat.ID, UserID: uid, Role: "member"}).Error)
	}
	for _, text := range []string{"uno", "dos", "tres"} {
		require.NoError(t, db.Create(&models.ChatMessage{ChatID: chat.ID, UserID: 1, Type: "text", Content: text}).Error)
	}

	// No marker row yet: everything counts as unread.
	assert.Equal(t, int64(3), unreadCount(t, 2))

	w := chatRequest(t, GetMessagesHandler, 2, "1")
	require.Equal(t, http.StatusOK, w.Code)

	// The first read must insert the marker; an update against a missing row
	// would touch nothing and leave the chat unread forever.
	var marker models.MessageReadStatus
	require.NoError(t, db.Where("chat_id = ? AND user_id = ?", chat.ID, 2).First(&marker).Error)
	assert.Equal(t, uint(3), marker.LastReadMessageID)
	assert.Equal(t, int64(0), unreadCount(t, 2))

	// A later read advances the existing marker.
	require.NoError(t, db.Create(&models.ChatMessage{ChatID: chat.ID, UserID: 1, Type: "text", Content: "cuatro"}).Error)
	assert.Equal(t, int64(1), unreadCount(t, 2))

	w = chatRequest(t, GetMessagesHandler, 2, "1")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, db.Where("chat_id = ? AND user_id = ?", chat.ID, 2).First(&marker).Error)
	assert.Equal(t, uint(4), marker.LastReadMessageID)
	assert.Equal(t, int64(0), unreadCount(t, 2))
}
