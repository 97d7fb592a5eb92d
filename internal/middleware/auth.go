package middleware

import (
	"errors"
	"net/http"
	"strings"

	"assistant-backend/internal/models"
	"assistant-backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const userContextKey = "user"

// AuthMiddleware creates a Gin middleware for bearer-token authentication.
// It resolves the token to a stored user via the access guard and aborts
// with 401 on any authentication failure.
func AuthMiddleware(guard *service.AccessGuard, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer <token>"})
			c.Abort()
			return
		}

		user, err := guard.ResolveUser(parts[1])
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrUserNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
				c.Abort()
				return
			}
			logger.Error("Failed to resolve user from token", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			c.Abort()
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// AdminRequired rejects non-admin users with 403. It must run after
// AuthMiddleware.
func AdminRequired(guard *service.AccessGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := guard.RequireAdmin(CurrentUser(c)); err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not enough permissions"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by AuthMiddleware, or
// nil when the request is unauthenticated.
func CurrentUser(c *gin.Context) *models.User {
	value, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}
