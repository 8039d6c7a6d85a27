package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
	"github.com/gorilla/websocket"

	"github.com/DiChris2901/Dr-Group-sub015/config"
	"github.com/DiChris2901/Dr-Group-sub015/models"
)

// AssistantUserID is the reserved account the AI assistant posts as. Seeded
// at startup; messages in chats that include it get a generated reply.
const AssistantUserID = 99999

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// GlobalHub is the single hub instance. Call InitHub before Run.
var GlobalHub = NewHub()

// Message is the websocket envelope. Type is "newMessage" for chat traffic
// and "notification" for in-app pushes.
type Message struct {
	Type    string             `json:"type"`
	Payload models.ChatMessage `json:"payload"`
}

type notificationEnvelope struct {
	Type    string              `json:"type"`
	Payload models.Notification `json:"payload"`
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID uint
}

// Hub fans chat messages and notifications out to connected clients. The
// generative model comes in at construction; the hub never reads credentials
// itself.
type Hub struct {
	clients    map[uint]*Client
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex

	model *genai.GenerativeModel
}

func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uint]*Client),
	}
}

// InitHub hands the hub its generative model. A nil model disables the
// assistant; chat keeps working.
func (h *Hub) InitHub(model *genai.GenerativeModel) {
	h.model = model
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.userID] = client
			h.mu.Unlock()
			slog.Info("Client registered", "userID", client.userID)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.userID]; ok {
				delete(h.clients, client.userID)
				close(client.send)
			}
			h.mu.Unlock()
			slog.Info("Client unregistered", "userID", client.userID)

		case messageData := <-h.broadcast:
			h.handleBroadcast(messageData)
		}
	}
}

func (h *Hub) handleBroadcast(messageData []byte) {
	var msg Message
	if err := json.Unmarshal(messageData, &msg); err != nil {
		slog.Error("Failed to unmarshal broadcast message", "error", err)
		return
	}

	userMessage := msg.Payload
	if err := config.DB.Create(&userMessage).Error; err != nil {
		slog.Error("Failed to save chat message", "error", err)
		return
	}
	config.DB.Preload("User").First(&userMessage, userMessage.ID)

	h.sendMessageToChat(userMessage)

	var participants []models.ChatParticipant
	config.DB.Where("chat_id = ?", userMessage.ChatID).Find(&participants)

	isAssistantChat := false
	for _, p := range participants {
		if p.UserID == AssistantUserID {
			isAssistantChat = true
			break
		}
	}

	if isAssistantChat && userMessage.UserID != AssistantUserID {
		go h.generateAndBroadcastAssistantReply(userMessage.ChatID, userMessage.Content)
	}
}

func (h *Hub) sendMessageToChat(message models.ChatMessage) {
	var participants []models.ChatParticipant
	config.DB.Where("chat_id = ?", message.ChatID).Find(&participants)

	messageBytes, err := json.Marshal(Message{Type: "newMessage", Payload: message})
	if err != nil {
		slog.Error("Failed to marshal message for broadcast", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, p := range participants {
		if client, ok := h.clients[p.UserID]; ok {
			select {
			case client.send <- messageBytes:
			default:
				close(client.send)
				delete(h.clients, p.UserID)
			}
		}
	}
}

// NotifyUser persists an in-app notification and pushes it live when the
// recipient is connected. Safe to call from any goroutine.
func (h *Hub) NotifyUser(notification models.Notification) error {
	if err := config.DB.Create(&notification).Error; err != nil {
		return fmt.Errorf("save notification: %w", err)
	}

	data, err := json.Marshal(notificationEnvelope{Type: "notification", Payload: notification})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[notification.UserID]; ok {
		select {
		case client.send <- data:
		default:
			close(client.send)
			delete(h.clients, notification.UserID)
		}
	}
	return nil
}

// generateAndBroadcastAssistantReply builds the assistant prompt around the
// live dashboard numbers and posts the model's answer back into the chat.
func (h *Hub) generateAndBroadcastAssistantReply(chatID uint, userMessage string) {
	if h.model == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	summaryContext := ""
	if summary, err := FetchSummaryData(time.Now()); err == nil {
		summaryContext = fmt.Sprintf(
			"Datos actuales del dashboard: %d compromisos en total; vencidos: %d por $%.2f; "+
				"pendientes: %d por $%.2f; con pago parcial: %d; vencen hoy: %d; próximos 7 días: %d; "+
				"pagos registrados: %d por $%.2f.",
			summary.TotalCommitments,
			summary.Overdue.Count, summary.Overdue.Amount,
			summary.Pending.Count, summary.Pending.Amount,
			summary.PartialPayment.Count, summary.DueToday.Count, summary.Next7Days.Count,
			summary.TotalPayments, summary.TotalPaymentsAmount,
		)
	} else {
		slog.Error("Failed to build summary context for assistant", "error", err)
	}

	prompt := fmt.Sprintf(
		"Eres el asistente financiero de DR Group. Respondes preguntas sobre los compromisos, "+
			"pagos y liquidaciones de la empresa de forma breve y precisa, en español. "+
			"No inventes cifras: usa solo los datos proporcionados. %s\n\nPregunta del usuario: %q",
		summaryContext, userMessage)

	resp, err := h.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		slog.Error("Assistant generation failed", "error", err)
		return
	}

	var replyText string
	if len(resp.Candidates) > 0 && len(resp.Candidates[0].Content.Parts) > 0 {
		if textPart, ok := resp.Candidates[0].Content.Parts[0].(genai.Text); ok {
			replyText = string(textPart)
		}
	}
	if replyText == "" {
		replyText = "No pude procesar tu consulta. Intenta reformularla."
	}

	reply := models.ChatMessage{
		ChatID:  chatID,
		UserID:  AssistantUserID,
		Type:    "text",
		Content: replyText,
	}
	if err := config.DB.Create(&reply).Error; err != nil {
		slog.Error("Failed to save assistant message", "error", err)
		return
	}
	config.DB.Preload("User").First(&reply, reply.ID)

	h.sendMessageToChat(reply)
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		_, messageBytes, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("Unexpected websocket close", "error", err)
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(messageBytes, &msg); err != nil {
			slog.Error("Failed to unmarshal client message", "error", err)
			continue
		}
		// The sender is whoever holds the socket, regardless of the payload.
		msg.Payload.UserID = c.userID

		finalBytes, err := json.Marshal(msg)
		if err != nil {
			slog.Error("Failed to marshal message before broadcast", "error", err)
			continue
		}
		c.hub.broadcast <- finalBytes
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for message := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			slog.Error("Failed to write to websocket", "error", err)
			return
		}
	}
}

// ChatWSEndpoint upgrades the connection and attaches the client to the hub.
func ChatWSEndpoint(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("Failed to upgrade to websocket", "error", err)
		return
	}

	client := &Client{
		hub:    GlobalHub,
		conn:   conn,
		send:   make(chan []byte, 256),
		userID: userID.(uint),
	}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}
