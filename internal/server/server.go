package server

import (
	"net/http"

	"assistant-backend/internal/config"
	"assistant-backend/internal/handler"
	"assistant-backend/internal/middleware"
	"assistant-backend/internal/repository"
	"assistant-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Server struct {
	router *gin.Engine
	db     *sqlx.DB
	logger *zap.Logger
}

func NewServer(db *sqlx.DB, cfg *config.Config, sender service.TurnSender, logger *zap.Logger) *Server {
	router := gin.Default()

	s := &Server{
		router: router,
		db:     db,
		logger: logger,
	}

	s.setupRoutes(cfg, sender)

	return s
}

func (s *Server) setupRoutes(cfg *config.Config, sender service.TurnSender) {
	// Repositories
	userRepo := repository.NewUserRepository(s.db, s.logger)
	sessionRepo := repository.NewSessionRepository(s.db, s.logger)
	messageRepo := repository.NewMessageRepository(s.db, s.logger)
	promptRepo := repository.NewPromptRepository(s.db, s.logger)
	statusRepo := repository.NewStatusRepository(s.db, s.logger)

	// Services
	tokenService := service.NewTokenService([]byte(cfg.Auth.Secret))
	guard := service.NewAccessGuard(tokenService, userRepo, s.logger)
	authService := service.NewAuthService(userRepo, tokenService, s.logger)
	chatService := service.NewChatService(sessionRepo, messageRepo, promptRepo, sender, s.logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, s.logger)
	chatHandler := handler.NewChatHandler(chatService, s.logger)
	adminHandler := handler.NewAdminHandler(userRepo, sessionRepo, messageRepo, promptRepo, s.logger)
	statusHandler := handler.NewStatusHandler(statusRepo, s.logger)

	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	api := s.router.Group("/api")

	// Public routes
	api.GET("/", statusHandler.Root)
	api.POST("/status", statusHandler.Create)
	api.GET("/status", statusHandler.List)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Authenticated routes
	authRequired := api.Group("")
	authRequired.Use(middleware.AuthMiddleware(guard, s.logger))
	{
		authRequired.GET("/auth/me", authHandler.Me)

		chat := authRequired.Group("/chat")
		{
			chat.POST("/send", chatHandler.Send)
			chat.GET("/sessions", chatHandler.ListSessions)
			chat.GET("/sessions/:id/messages", chatHandler.ListMessages)
			chat.DELETE("/sessions/:id", chatHandler.DeleteSession)
		}

		admin := authRequired.Group("/admin")
		admin.Use(middleware.AdminRequired(guard))
		{
			admin.GET("/analytics", adminHandler.GetAnalytics)
			admin.POST("/prompts", adminHandler.CreatePrompt)
			admin.GET("/prompts", adminHandler.ListPrompts)
			admin.PUT("/prompts/:id", adminHandler.UpdatePrompt)
			admin.DELETE("/prompts/:id", adminHandler.DeletePrompt)
		}
	}
}

func (s *Server) Run(addr string) {
	s.logger.Info("Server starting", zap.String("addr", addr))
	if err := s.router.Run(addr); err != nil {
		s.logger.Fatal("Server failed to start", zap.Error(err))
	}
}
