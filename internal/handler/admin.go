package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"assistant-backend/internal/middleware"
	"assistant-backend/internal/models"
	"assistant-backend/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	recentActivityLimit = 10
	promptListLimit     = 100
)

type AdminHandler interface {
	GetAnalytics(c *gin.Context)
	CreatePrompt(c *gin.Context)
	ListPrompts(c *gin.Context)
	UpdatePrompt(c *gin.Context)
	DeletePrompt(c *gin.Context)
}

type adminHandler struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	messages repository.MessageRepository
	prompts  repository.PromptRepository
	logger   *zap.Logger
}

func NewAdminHandler(users repository.UserRepository, sessions repository.SessionRepository,
	messages repository.MessageRepository, prompts repository.PromptRepository, logger *zap.Logger) AdminHandler {
	return &adminHandler{
		users:    users,
		sessions: sessions,
		messages: messages,
		prompts:  prompts,
		logger:   logger,
	}
}

// AnalyticsResponse aggregates usage counters for the admin dashboard.
type AnalyticsResponse struct {
	UserCount      int                   `json:"user_count"`
	SessionCount   int                   `json:"session_count"`
	MessageCount   int                   `json:"message_count"`
	RecentSessions []*models.ChatSession `json:"recent_sessions"`
	RecentUsers    []UserResponse        `json:"recent_users"`
}

// GetAnalytics handles GET /api/admin/analytics
func (h *adminHandler) GetAnalytics(c *gin.Context) {
	userCount, err := h.users.Count()
	if err != nil {
		h.logger.Error("Failed to count users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve analytics"})
		return
	}

	sessionCount, err := h.sessions.Count()
	if err != nil {
		h.logger.Error("Failed to count sessions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve analytics"})
		return
	}

	messageCount, err := h.messages.Count()
	if err != nil {
		h.logger.Error("Failed to count messages", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve analytics"})
		return
	}

	recentSessions, err := h.sessions.GetRecent(recentActivityLimit)
	if err != nil {
		h.logger.Error("Failed to get recent sessions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve analytics"})
		return
	}

	recentUsers, err := h.users.GetRecent(recentActivityLimit)
	if err != nil {
		h.logger.Error("Failed to get recent users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve analytics"})
		return
	}

	if recentSessions == nil {
		recentSessions = []*models.ChatSession{}
	}
	userResponses := make([]UserResponse, 0, len(recentUsers))
	for _, user := range recentUsers {
		userResponses = append(userResponses, newUserResponse(user))
	}

	c.JSON(http.StatusOK, AnalyticsResponse{
		UserCount:      userCount,
		SessionCount:   sessionCount,
		MessageCount:   messageCount,
		RecentSessions: recentSessions,
		RecentUsers:    userResponses,
	})
}

type PromptRequest struct {
	Name    string `json:"name" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// CreatePrompt handles POST /api/admin/prompts
func (h *adminHandler) CreatePrompt(c *gin.Context) {
	var req PromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	prompt := &models.PromptTemplate{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Content:   req.Content,
		IsActive:  true,
		CreatedBy: user.ID,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.prompts.Create(prompt); err != nil {
		h.logger.Error("Failed to create prompt template", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create prompt"})
		return
	}

	c.JSON(http.StatusCreated, prompt)
}

// ListPrompts handles GET /api/admin/prompts
func (h *adminHandler) ListPrompts(c *gin.Context) {
	prompts, err := h.prompts.List(promptListLimit)
	if err != nil {
		h.logger.Error("Failed to list prompt templates", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve prompts"})
		return
	}

	if prompts == nil {
		prompts = []*models.PromptTemplate{}
	}
	c.JSON(http.StatusOK, prompts)
}

// UpdatePrompt handles PUT /api/admin/prompts/:id
func (h *adminHandler) UpdatePrompt(c *gin.Context) {
	var req PromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	if err := h.prompts.Update(id, req.Name, req.Content); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Prompt not found"})
			return
		}
		h.logger.Error("Failed to update prompt template", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update prompt"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Prompt updated successfully"})
}

// DeletePrompt handles DELETE /api/admin/prompts/:id
func (h *adminHandler) DeletePrompt(c *gin.Context) {
	id := c.Param("id")
	if err := h.prompts.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Prompt not found"})
			return
		}
		h.logger.Error("Failed to delete prompt template", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete prompt"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Prompt deleted successfully"})
}
