package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"assistant-backend/internal/models"
	"assistant-backend/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrUpstreamUnavailable = errors.New("assistant service unavailable")
)

const (
	// contextWindowLimit caps how many prior messages are sent to the
	// model as conversation context.
	contextWindowLimit = 100
	transcriptLimit    = 1000
	sessionListLimit   = 100
)

const defaultSystemPrompt = `You are a helpful AI assistant. You are designed to be:
1. Multilingual - Respond in the user's language (%s)
2. Code-aware - Format code blocks properly with syntax highlighting
3. Helpful and professional
4. Capable of handling complex technical questions

When showing code, use proper markdown formatting with language tags.
Always maintain context from previous messages in this conversation.`

// TurnSender is the boundary to the upstream model provider. One call
// per chat turn, synchronous, no streaming.
type TurnSender interface {
	SendTurn(ctx context.Context, systemPrompt string, prior []*models.ChatMessage, message string) (string, error)
}

// TurnResult is what a completed chat turn returns to the caller.
type TurnResult struct {
	SessionID string
	Reply     string
	Timestamp time.Time
}

type ChatService interface {
	SendMessage(ctx context.Context, user *models.User, sessionID, content, language string) (*TurnResult, error)
	ListSessions(user *models.User) ([]*models.ChatSession, error)
	ListSessionMessages(user *models.User, sessionID string) ([]*models.ChatMessage, error)
	DeleteSession(user *models.User, sessionID string) error
}

type chatService struct {
	sessions repository.SessionRepository
	messages repository.MessageRepository
	prompts  repository.PromptRepository
	sender   TurnSender
	logger   *zap.Logger
}

func NewChatService(sessions repository.SessionRepository, messages repository.MessageRepository,
	prompts repository.PromptRepository, sender TurnSender, logger *zap.Logger) ChatService {
	return &chatService{
		sessions: sessions,
		messages: messages,
		prompts:  prompts,
		sender:   sender,
		logger:   logger,
	}
}

// SendMessage runs one chat turn: resolve or create the caller's session,
// persist the user message, delegate to the upstream provider with a
// bounded context window, and persist the reply. The provider is called
// exactly once; on failure the user message stays in the transcript and
// the caller sees only a generic unavailability error.
func (s *chatService) SendMessage(ctx context.Context, user *models.User, sessionID, content, language string) (*TurnResult, error) {
	session, err := s.resolveSession(user, sessionID)
	if err != nil {
		return nil, err
	}

	prior, err := s.messages.ListBySession(session.ID, contextWindowLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load session transcript: %w", err)
	}

	now := time.Now().UTC()
	userMessage := &models.ChatMessage{
		ID:        uuid.NewString(),
		SessionID: session.ID,
		UserID:    user.ID,
		Role:      models.RoleUser,
		Content:   content,
		Language:  language,
		CreatedAt: now,
	}
	if err := s.messages.Append(userMessage); err != nil {
		return nil, fmt.Errorf("failed to persist user message: %w", err)
	}

	reply, err := s.sender.SendTurn(ctx, s.systemPrompt(language), prior, content)
	if err != nil {
		// Single attempt, no fallback. Detail stays in server logs.
		s.logger.Error("Assistant turn failed",
			zap.String("session_id", session.ID),
			zap.Error(err))
		return nil, ErrUpstreamUnavailable
	}

	replyTime := time.Now().UTC()
	assistantMessage := &models.ChatMessage{
		ID:        uuid.NewString(),
		SessionID: session.ID,
		UserID:    user.ID,
		Role:      models.RoleAssistant,
		Content:   reply,
		Language:  language,
		CreatedAt: replyTime,
	}
	if err := s.messages.Append(assistantMessage); err != nil {
		return nil, fmt.Errorf("failed to persist assistant message: %w", err)
	}

	if err := s.sessions.Touch(session.ID); err != nil {
		return nil, fmt.Errorf("failed to update session activity: %w", err)
	}

	return &TurnResult{
		SessionID: session.ID,
		Reply:     reply,
		Timestamp: replyTime,
	}, nil
}

// resolveSession returns the caller's session, creating a fresh one when
// no id is given. An id owned by another user resolves exactly like a
// missing one.
func (s *chatService) resolveSession(user *models.User, sessionID string) (*models.ChatSession, error) {
	if sessionID == "" {
		now := time.Now().UTC()
		session := &models.ChatSession{
			ID:        uuid.NewString(),
			UserID:    user.ID,
			Title:     "New Chat",
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.sessions.Create(session); err != nil {
			return nil, fmt.Errorf("failed to create session: %w", err)
		}
		return session, nil
	}

	session, err := s.sessions.GetByIDAndOwner(sessionID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// systemPrompt prefers the newest active admin template over the
// built-in default.
func (s *chatService) systemPrompt(language string) string {
	prompt, err := s.prompts.GetActive()
	if err != nil {
		s.logger.Warn("Failed to load active prompt template, using default", zap.Error(err))
	}
	if prompt != nil {
		return prompt.Content
	}
	return fmt.Sprintf(defaultSystemPrompt, language)
}

func (s *chatService) ListSessions(user *models.User) ([]*models.ChatSession, error) {
	sessions, err := s.sessions.ListByOwner(user.ID, sessionListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

func (s *chatService) ListSessionMessages(user *models.User, sessionID string) ([]*models.ChatMessage, error) {
	session, err := s.sessions.GetByIDAndOwner(sessionID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	messages, err := s.messages.ListBySession(sessionID, transcriptLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

func (s *chatService) DeleteSession(user *models.User, sessionID string) error {
	session, err := s.sessions.GetByIDAndOwner(sessionID, user.ID)
	if err != nil {
		return fmt.Errorf("failed to look up session: %w", err)
	}
	if session == nil {
		return ErrSessionNotFound
	}

	// Messages go with the session via the cascade constraint.
	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	s.logger.Info("Session deleted", zap.String("session_id", sessionID), zap.String("user_id", user.ID))
	return nil
}
