package config

import (
	"fmt"
	"os"
)

// JwtKey signs and validates the auth tokens. Populated by Load.
var JwtKey []byte

// App holds the settings the subsystems receive at construction time instead
// of reading the environment themselves: the Telegram bot token, the Gemini
// credentials and the HTTP listen address.
type App struct {
	ListenAddr       string
	JWTSecret        string
	TelegramBotToken string
	GeminiAPIKey     string
	GeminiModel      string
}

// Load reads the application settings from the environment. Only the JWT
// secret is mandatory; the Telegram bot and the AI assistant degrade to
// disabled when their credentials are missing.
func Load() (App, error) {
	cfg := App{
		ListenAddr:       getEnv("LISTEN_ADDR", ":8080"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
	}
	if cfg.JWTSecret == "" {
		return App{}, fmt.Errorf("JWT_SECRET environment variable not set")
	}
	JwtKey = []byte(cfg.JWTSecret)
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
