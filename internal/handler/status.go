package handler

import (
	"net/http"
	"time"

	"assistant-backend/internal/models"
	"assistant-backend/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const statusListLimit = 1000

type StatusHandler interface {
	Root(c *gin.Context)
	Create(c *gin.Context)
	List(c *gin.Context)
}

type statusHandler struct {
	statuses repository.StatusRepository
	logger   *zap.Logger
}

func NewStatusHandler(statuses repository.StatusRepository, logger *zap.Logger) StatusHandler {
	return &statusHandler{statuses: statuses, logger: logger}
}

// Root handles GET /api/
func (h *statusHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Assistant API is running"})
}

type StatusCheckRequest struct {
	ClientName string `json:"client_name" binding:"required"`
}

// Create handles POST /api/status
func (h *statusHandler) Create(c *gin.Context) {
	var req StatusCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	check := &models.StatusCheck{
		ID:         uuid.NewString(),
		ClientName: req.ClientName,
		CreatedAt:  time.Now().UTC(),
	}
	if err := h.statuses.Create(check); err != nil {
		h.logger.Error("Failed to create status check", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create status check"})
		return
	}

	c.JSON(http.StatusOK, check)
}

// List handles GET /api/status
func (h *statusHandler) List(c *gin.Context) {
	checks, err := h.statuses.List(statusListLimit)
	if err != nil {
		h.logger.Error("Failed to list status checks", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve status checks"})
		return
	}

	if checks == nil {
		checks = []*models.StatusCheck{}
	}
	c.JSON(http.StatusOK, checks)
}
