package repository

import (
	"assistant-backend/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type MessageRepository interface {
	Append(msg *models.ChatMessage) error
	ListBySession(sessionID string, limit int) ([]*models.ChatMessage, error)
	Count() (int, error)
}

type messageRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewMessageRepository(db *sqlx.DB, logger *zap.Logger) MessageRepository {
	return &messageRepository{db: db, logger: logger}
}

func (r *messageRepository) Append(msg *models.ChatMessage) error {
	query := `INSERT INTO chat_messages (id, session_id, user_id, role, content, language, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(query, msg.ID, msg.SessionID, msg.UserID, msg.Role,
		msg.Content, msg.Language, msg.CreatedAt)
	return err
}

// ListBySession returns messages in arrival order, oldest first.
func (r *messageRepository) ListBySession(sessionID string, limit int) ([]*models.ChatMessage, error) {
	var messages []*models.ChatMessage
	query := `SELECT id, session_id, user_id, role, content, language, created_at FROM chat_messages WHERE session_id = $1 ORDER BY created_at ASC LIMIT $2`
	err := r.db.Select(&messages, query, sessionID, limit)
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) Count() (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM chat_messages`
	err := r.db.Get(&count, query)
	if err != nil {
		return 0, err
	}
	return count, nil
}
