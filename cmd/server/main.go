package main

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/DiChris2901/Dr-Group-sub015/config"
	"github.com/DiChris2901/Dr-Group-sub015/internal/handlers"
	"github.com/DiChris2901/Dr-Group-sub015/internal/jobs"
	"github.com/DiChris2901/Dr-Group-sub015/internal/routes"
	"github.com/DiChris2901/Dr-Group-sub015/internal/telegram"
	"github.com/DiChris2901/Dr-Group-sub015/models"
)

func main() {
	setupLogging()

	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	config.ConnectDB()
	config.ConnectRedis()
	seedAssistantUser()

	// The AI assistant degrades to disabled without credentials.
	if cfg.GeminiAPIKey != "" {
		model, err := config.NewGeminiModel(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			slog.Error("Failed to initialize Gemini, assistant disabled", "error", err)
		} else {
			handlers.GlobalHub.InitHub(model)
		}
	} else {
		slog.Warn("GEMINI_API_KEY not set, assistant disabled")
	}
	go handlers.GlobalHub.Run()

	bot, err := telegram.NewBot(cfg.TelegramBotToken)
	if err != nil {
		slog.Error("Failed to start Telegram bot", "error", err)
		os.Exit(1)
	}
	if bot != nil {
		go bot.Run()
	}

	scheduler, err := jobs.New(bot, handlers.GlobalHub).Start()
	if err != nil {
		slog.Error("Failed to start job scheduler", "error", err)
		os.Exit(1)
	}
	defer scheduler.Stop()

	r := routes.SetupRouter()
	slog.Info("Starting server", "addr", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func setupLogging() {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}),
	))
}

// seedAssistantUser makes sure the reserved assistant account exists so chat
// messages can reference it.
func seedAssistantUser() {
	var count int64
	config.DB.Model(&models.User{}).Where("id = ?", handlers.AssistantUserID).Count(&count)
	if count > 0 {
		return
	}

	assistant := models.User{
		FullName: "Asistente DR Group",
		Email:    "asistente@drgroup.local",
	}
	assistant.ID = handlers.AssistantUserID
	if err := config.DB.Create(&assistant).Error; err != nil {
		slog.Error("Failed to seed assistant user", "error", err)
	}
}
