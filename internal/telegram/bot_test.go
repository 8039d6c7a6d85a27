package telegram

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/DiChris2901/Dr-Group-sub015/config"
	"github.com/DiChris2901/Dr-Group-sub015/models"
)

func openLinkTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.NotificationSettings{}))
	prev := config.DB
	config.DB = db
	t.Cleanup(func() { config.DB = prev })
	return db
}

func TestLinkOutcomeBindsChatToAccount(t *testing.T) {
	db := openLinkTestDB(t)
	require.NoError(t, db.Create(&models.User{FullName: "Ana", Email: "ana@drgroup.co"}).Error)

	text, err := linkOutcome("ana@drgroup.co", 4242)
	require.NoError(t, err)
	assert.Contains(t, text, "Cuenta vinculada")

	var user models.User
	require.NoError(t, db.Where("email = ?", "ana@drgroup.co").First(&user).Error)
	assert.Equal(t, int64(4242), user.TelegramChatID)
}

func TestLinkOutcomeUnknownEmailIsNotAFailure(t *testing.T) {
	openLinkTestDB(t)

	text, err := linkOutcome("nadie@drgroup.co", 4242)
	require.NoError(t, err)
	assert.Equal(t, "No existe una cuenta con ese correo.", text)
}

// A broken database must surface to the command loop's logger, not hide
// behind the "no such account" reply.
func TestLinkOutcomeDatabaseErrorSurfaces(t *testing.T) {
	db := openLinkTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	text, err := linkOutcome("ana@drgroup.co", 4242)
	require.Error(t, err)
	assert.NotEqual(t, "No existe una cuenta con ese correo.", text)
}
