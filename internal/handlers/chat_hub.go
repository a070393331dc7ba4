// igp-generator/internal/handlers/chat_hub.go
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/SinSayWu/igp-generator-sub000/config"
	"github.com/SinSayWu/igp-generator-sub000/internal/ai"
	"github.com/SinSayWu/igp-generator-sub000/internal/planner"
	"github.com/SinSayWu/igp-generator-sub000/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// --- Глобальные переменные и константы ---

// aiUserID - зарезервированный UserID сообщений от ИИ-советника.
const aiUserID = 0

// advisorTimeout ограничивает генерацию одного ответа советника.
const advisorTimeout = 60 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Для разработки разрешаем все источники
	},
}

// GlobalHub - единственный экземпляр хаба для всего приложения.
var GlobalHub = NewHub()

// --- Структуры ---

// WSMessage - конверт сообщения в сокете советника.
type WSMessage struct {
	Type    string                 `json:"type"`
	Payload models.AdvisingMessage `json:"payload"`
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID uint
}

// Hub маршрутизирует сообщения чатов советника. У каждого студента один
// чат, поэтому клиенты индексируются по userID.
type Hub struct {
	clients    map[uint]*Client
	broadcast  chan inbound
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex
}

type inbound struct {
	userID  uint
	content string
}

// --- Методы Хаба ---

func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan inbound),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uint]*Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.userID] = client
			h.mu.Unlock()
			slog.Info("Клиент чата подключен", "user_id", client.userID)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.userID]; ok {
				delete(h.clients, client.userID)
				close(client.send)
			}
			h.mu.Unlock()
			slog.Info("Клиент чата отключен", "user_id", client.userID)

		case msg := <-h.broadcast:
			h.handleInbound(msg)
		}
	}
}

// handleInbound сохраняет сообщение студента, показывает его обратно
// и асинхронно запускает ответ ИИ-советника.
func (h *Hub) handleInbound(msg inbound) {
	chat, err := ensureAdvisingChat(msg.userID)
	if err != nil {
		slog.Error("Не удалось открыть чат советника", "error", err, "user_id", msg.userID)
		return
	}

	userMessage := models.AdvisingMessage{
		ChatID:  chat.ID,
		UserID:  msg.userID,
		Role:    "user",
		Content: msg.content,
	}
	if err := config.DB.Create(&userMessage).Error; err != nil {
		slog.Error("Не удалось сохранить сообщение студента", "error", err)
		return
	}

	h.sendToUser(msg.userID, userMessage)

	go h.generateAndSendAdvisorReply(msg.userID, chat.ID, msg.content)
}

// ensureAdvisingChat лениво создает чат советника для студента пользователя.
func ensureAdvisingChat(userID uint) (*models.AdvisingChat, error) {
	var student models.Student
	if err := config.DB.Where("user_id = ?", userID).First(&student).Error; err != nil {
		return nil, err
	}

	var chat models.AdvisingChat
	err := config.DB.Where("student_id = ?", student.ID).First(&chat).Error
	if err == nil {
		return &chat, nil
	}
	chat = models.AdvisingChat{StudentID: student.ID}
	if err := config.DB.Create(&chat).Error; err != nil {
		return nil, err
	}
	return &chat, nil
}

// sendToUser отправляет готовое сообщение подключенному клиенту.
func (h *Hub) sendToUser(userID uint, message models.AdvisingMessage) {
	payload, err := json.Marshal(WSMessage{Type: "newMessage", Payload: message})
	if err != nil {
		slog.Error("Не удалось сериализовать сообщение чата", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[userID]; ok {
		select {
		case client.send <- payload:
		default:
			close(client.send)
			delete(h.clients, userID)
		}
	}
}

// generateAndSendAdvisorReply генерирует ответ ИИ-советника c учетом
// профиля студента и недавней переписки.
func (h *Hub) generateAndSendAdvisorReply(userID, chatID uint, userMessage string) {
	ctx, cancel := context.WithTimeout(context.Background(), advisorTimeout)
	defer cancel()

	replyText := "Sorry, I could not process your question right now. Please try again."
	if config.GeminiClient != nil {
		snap, err := planner.LoadSnapshot(config.DB, userID)
		if err != nil {
			slog.Error("Не удалось собрать снимок для советника", "error", err, "user_id", userID)
			return
		}

		// Последние сообщения переписки как контекст диалога.
		var history []models.AdvisingMessage
		config.DB.Where("chat_id = ?", chatID).Order("id desc").Limit(20).Find(&history)

		messages := []planner.Message{{Role: "system", Content: planner.BuildAdvisorChatPrompt(snap)}}
		for i := len(history) - 1; i >= 0; i-- {
			messages = append(messages, planner.Message{Role: history[i].Role, Content: history[i].Content})
		}
		messages = append(messages, planner.Message{Role: "user", Content: userMessage})

		completer := &ai.GeminiCompleter{Client: config.GeminiClient}
		text, err := completer.Complete(ctx, config.ChatModelName, messages, recommendationTemperature)
		if err != nil {
			slog.Error("Ответ советника не сгенерирован", "error", err)
		} else if text != "" {
			replyText = text
		}
	}

	aiMessage := models.AdvisingMessage{
		ChatID:  chatID,
		UserID:  aiUserID,
		Role:    "assistant",
		Content: replyText,
	}
	if err := config.DB.Create(&aiMessage).Error; err != nil {
		slog.Error("Не удалось сохранить ответ советника", "error", err)
		return
	}

	h.sendToUser(userID, aiMessage)
}

// --- Методы Клиента и WebSocket Endpoint ---

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		_, messageBytes, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("Неожиданное закрытие вебсокета", "error", err)
			}
			break
		}

		var msg WSMessage
		if err := json.Unmarshal(messageBytes, &msg); err != nil {
			slog.Error("Некорректное сообщение от клиента", "error", err)
			continue
		}
		c.hub.broadcast <- inbound{userID: c.userID, content: msg.Payload.Content}
	}
}

func (c *Client) writePump() {
	defer func() {
		c.conn.Close()
	}()
	for message := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			slog.Error("Не удалось записать сообщение в вебсокет", "error", err)
			return
		}
	}
}

// ChatWSEndpoint апгрейдит соединение и регистрирует клиента в хабе.
func ChatWSEndpoint(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("Не удалось установить вебсокет-соединение", "error", err)
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
