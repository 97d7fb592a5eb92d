package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"assistant-backend/internal/models"
	"assistant-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeChatService struct {
	result *service.TurnResult
	err    error

	sessions []*models.ChatSession
	messages []*models.ChatMessage
}

func (f *fakeChatService) SendMessage(ctx context.Context, user *models.User, sessionID, content, language string) (*service.TurnResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeChatService) ListSessions(user *models.User) ([]*models.ChatSession, error) {
	return f.sessions, f.err
}

func (f *fakeChatService) ListSessionMessages(user *models.User, sessionID string) ([]*models.ChatMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.messages, nil
}

func (f *fakeChatService) DeleteSession(user *models.User, sessionID string) error {
	return f.err
}

func newChatRouter(svc service.ChatService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	// Stand-in for the auth middleware.
	router.Use(func(c *gin.Context) {
		c.Set("user", &models.User{ID: "user-1", Email: "a@x.com", Username: "a"})
	})

	h := NewChatHandler(svc, zap.NewNop())
	router.POST("/send", h.Send)
	router.GET("/sessions", h.ListSessions)
	router.GET("/sessions/:id/messages", h.ListMessages)
	router.DELETE("/sessions/:id", h.DeleteSession)
	return router
}

func TestChatHandler_Send(t *testing.T) {
	svc := &fakeChatService{result: &service.TurnResult{
		SessionID: "sess-1",
		Reply:     "hello there",
		Timestamp: time.Now(),
	}}
	router := newChatRouter(svc)

	w := postJSON(router, "/send", `{"message":"hi"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "sess-1")
	assert.Contains(t, w.Body.String(), "hello there")
}

func TestChatHandler_Send_MissingMessage(t *testing.T) {
	router := newChatRouter(&fakeChatService{})

	w := postJSON(router, "/send", `{"session_id":"sess-1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatHandler_Send_SessionNotFound(t *testing.T) {
	router := newChatRouter(&fakeChatService{err: service.ErrSessionNotFound})

	w := postJSON(router, "/send", `{"message":"hi","session_id":"other"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChatHandler_Send_UpstreamFailure(t *testing.T) {
	router := newChatRouter(&fakeChatService{err: service.ErrUpstreamUnavailable})

	w := postJSON(router, "/send", `{"message":"hi"}`)
	// One generic failure, no upstream detail.
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Chat service error")
	assert.NotContains(t, w.Body.String(), "unavailable")
}

func TestChatHandler_ListSessions_Empty(t *testing.T) {
	router := newChatRouter(&fakeChatService{})

	req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestChatHandler_DeleteSession_NotFound(t *testing.T) {
	router := newChatRouter(&fakeChatService{err: service.ErrSessionNotFound})

	req := httptest.NewRequest(http.MethodDelete, "/sessions/sess-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
