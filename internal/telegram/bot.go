// Package telegram runs the DR Group status bot: on-demand dashboard and
// month reports over bot commands, plus outbound delivery for the scheduled
// jobs. All numbers come from the same report aggregation the HTTP dashboard
// uses; this package only renders and transports them.
package telegram

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"gorm.io/gorm"

	"github.com/DiChris2901/Dr-Group-sub015/config"
	"github.com/DiChris2901/Dr-Group-sub015/internal/handlers"
	"github.com/DiChris2901/Dr-Group-sub015/models"
)

// Bot wraps the Telegram API client. The token arrives at construction; an
// empty token means the bot is disabled and NewBot returns nil.
type Bot struct {
	api *tgbotapi.BotAPI
}

// NewBot authenticates against the Bot API. Returns (nil, nil) when the
// token is empty so the caller can treat the bot as an optional feature.
func NewBot(token string) (*Bot, error) {
	if token == "" {
		slog.Warn("TELEGRAM_BOT_TOKEN not set, bot disabled")
		return nil, nil
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	slog.Info("Telegram bot authorized", "username", api.Self.UserName)
	return &Bot{api: api}, nil
}

// Run polls for updates until the process exits. Command handling failures
// are logged per update and never stop the loop.
func (b *Bot) Run() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	for update := range b.api.GetUpdatesChan(u) {
		if update.Message == nil || !update.Message.IsCommand() {
			continue
		}
		if err := b.handleCommand(update.Message); err != nil {
			slog.Error("Telegram command failed",
				"command", update.Message.Command(),
				"chat_id", update.Message.Chat.ID,
				"error", err)
		}
	}
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) error {
	switch msg.Command() {
	case "start":
		return b.reply(msg.Chat.ID, startText)
	case "vincular":
		return b.linkAccount(msg)
	case "dashboard":
		return b.sendDashboard(msg.Chat.ID)
	case "reporte":
		now := time.Now()
		return b.sendMonthReport(msg.Chat.ID, now.Month(), now.Year())
	case "mes":
		return b.sendRequestedMonth(msg)
	default:
		return b.reply(msg.Chat.ID, "Comando no reconocido. Usa /start para ver la ayuda.")
	}
}

// linkAccount binds the Telegram chat to a dashboard account by email. Only
// linked chats receive scheduled reports and reminders.
func (b *Bot) linkAccount(msg *tgbotapi.Message) error {
	email := strings.TrimSpace(msg.CommandArguments())
	if email == "" {
		return b.reply(msg.Chat.ID, "Uso: /vincular tu@correo.com")
	}

	text, err := linkOutcome(email, msg.Chat.ID)
	if replyErr := b.reply(msg.Chat.ID, text); replyErr != nil && err == nil {
		err = replyErr
	}
	return err
}

// linkOutcome resolves the /vincular lookup to a user-facing reply plus an
// error for the command loop. A missing account is a user mistake and not a
// failure; any other database error must surface to the loop's logger
// instead of masquerading as "no such account".
func linkOutcome(email string, chatID int64) (string, error) {
	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "No existe una cuenta con ese correo.", nil
		}
		return "No se pudo vincular la cuenta. Intenta de nuevo más tarde.", fmt.Errorf("link lookup: %w", err)
	}

	if err := config.DB.Model(&user).Update("telegram_chat_id", chatID).Error; err != nil {
		return "No se pudo vincular la cuenta. Intenta de nuevo más tarde.", fmt.Errorf("link chat: %w", err)
	}
	return fmt.Sprintf("Cuenta vinculada: %s. Ya puedes recibir recordatorios.", user.Email), nil
}

func (b *Bot) sendDashboard(chatID int64) error {
	summary, err := handlers.FetchSummaryData(time.Now())
	if err != nil {
		b.reply(chatID, "No se pudo obtener el resumen. Intenta de nuevo más tarde.")
		return err
	}
	return b.reply(chatID, RenderDashboard(summary))
}

func (b *Bot) sendMonthReport(chatID int64, month time.Month, year int) error {
	summary, err := handlers.FetchMonthSummaryData(month, year, time.Now())
	if err != nil {
		b.reply(chatID, "No se pudo obtener el reporte. Intenta de nuevo más tarde.")
		return err
	}
	return b.reply(chatID, RenderMonthReport(summary, month, year))
}

// sendRequestedMonth parses "/mes <1-12> [año]".
func (b *Bot) sendRequestedMonth(msg *tgbotapi.Message) error {
	args := strings.Fields(msg.CommandArguments())
	if len(args) == 0 {
		return b.reply(msg.Chat.ID, "Uso: /mes <1-12> [año]")
	}

	month, err := strconv.Atoi(args[0])
	if err != nil || month < 1 || month > 12 {
		return b.reply(msg.Chat.ID, "Mes inválido, se espera un número de 1 a 12.")
	}

	year := time.Now().Year()
	if len(args) > 1 {
		year, err = strconv.Atoi(args[1])
		if err != nil {
			return b.reply(msg.Chat.ID, "Año inválido.")
		}
	}

	return b.sendMonthReport(msg.Chat.ID, time.Month(month), year)
}

func (b *Bot) reply(chatID int64, text string) error {
	m := tgbotapi.NewMessage(chatID, text)
	m.ParseMode = tgbotapi.ModeHTML
	_, err := b.api.Send(m)
	return err
}

// SendTo delivers an already-rendered message to a chat. Used by the
// scheduled jobs; returns the transport error so the job can count it.
func (b *Bot) SendTo(chatID int64, text string) error {
	return b.reply(chatID, text)
}

const startText = `Bot de DR Group.

Comandos:
/vincular <correo> — vincula este chat con tu cuenta
/dashboard — resumen general de compromisos y pagos
/reporte — reporte del mes actual
/mes <1-12> [año] — reporte de un mes específico`
