package handler

import (
	"errors"
	"net/http"
	"time"

	"assistant-backend/internal/middleware"
	"assistant-backend/internal/models"
	"assistant-backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ChatHandler interface {
	Send(c *gin.Context)
	ListSessions(c *gin.Context)
	ListMessages(c *gin.Context)
	DeleteSession(c *gin.Context)
}

type chatHandler struct {
	chatService service.ChatService
	logger      *zap.Logger
}

func NewChatHandler(chatService service.ChatService, logger *zap.Logger) ChatHandler {
	return &chatHandler{chatService: chatService, logger: logger}
}

type SendRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"session_id"`
	Language  string `json:"language"`
}

type SendResponse struct {
	Message    string    `json:"message"`
	SessionID  string    `json:"session_id"`
	AIResponse string    `json:"ai_response"`
	Timestamp  time.Time `json:"timestamp"`
}

// Send handles POST /api/chat/send
func (h *chatHandler) Send(c *gin.Context) {
	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Language == "" {
		req.Language = "en"
	}

	user := middleware.CurrentUser(c)
	result, err := h.chatService.SendMessage(c.Request.Context(), user, req.SessionID, req.Message, req.Language)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		// Upstream and store failures alike surface as one generic
		// error; detail is already in the server logs.
		h.logger.Error("Chat turn failed", zap.String("user_id", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Chat service error"})
		return
	}

	c.JSON(http.StatusOK, SendResponse{
		Message:    req.Message,
		SessionID:  result.SessionID,
		AIResponse: result.Reply,
		Timestamp:  result.Timestamp,
	})
}

// ListSessions handles GET /api/chat/sessions
func (h *chatHandler) ListSessions(c *gin.Context) {
	user := middleware.CurrentUser(c)
	sessions, err := h.chatService.ListSessions(user)
	if err != nil {
		h.logger.Error("Failed to list sessions", zap.String("user_id", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve sessions"})
		return
	}

	if sessions == nil {
		sessions = []*models.ChatSession{}
	}
	c.JSON(http.StatusOK, sessions)
}

// ListMessages handles GET /api/chat/sessions/:id/messages
func (h *chatHandler) ListMessages(c *gin.Context) {
	user := middleware.CurrentUser(c)
	sessionID := c.Param("id")

	messages, err := h.chatService.ListSessionMessages(user, sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		h.logger.Error("Failed to list messages", zap.String("session_id", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve messages"})
		return
	}

	if messages == nil {
		messages = []*models.ChatMessage{}
	}
	c.JSON(http.StatusOK, messages)
}

// DeleteSession handles DELETE /api/chat/sessions/:id
func (h *chatHandler) DeleteSession(c *gin.Context) {
	user := middleware.CurrentUser(c)
	sessionID := c.Param("id")

	if err := h.chatService.DeleteSession(user, sessionID); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		h.logger.Error("Failed to delete session", zap.String("session_id", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session deleted successfully"})
}
