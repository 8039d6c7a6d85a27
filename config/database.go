package config

import (
	"log/slog"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/DiChris2901/Dr-Group-sub015/models"
)

var DB *gorm.DB

// ConnectDB opens the Postgres connection from DB_URL and runs the schema
// migration. The process cannot do anything useful without a database, so a
// failure here exits.
func ConnectDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		slog.Error("DB_URL environment variable not set")
		os.Exit(1)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.NotificationSettings{},
		&models.Commitment{},
		&models.Payment{},
		&models.RecurringCommitment{},
		&models.Liquidation{},
		&models.LiquidationRow{},
		&models.Notification{},
		&models.Chat{},
		&models.ChatParticipant{},
		&models.ChatMessage{},
		&models.MessageReadStatus{},
	); err != nil {
		slog.Error("Schema migration failed", "error", err)
		os.Exit(1)
	}

	DB = db
	slog.Info("Connected to database")
}
