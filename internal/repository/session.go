package repository

import (
	"database/sql"
	"errors"
	"time"

	"assistant-backend/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type SessionRepository interface {
	Create(session *models.ChatSession) error
	GetByIDAndOwner(id, ownerID string) (*models.ChatSession, error)
	ListByOwner(ownerID string, limit int) ([]*models.ChatSession, error)
	Touch(id string) error
	Delete(id string) error
	Count() (int, error)
	GetRecent(limit int) ([]*models.ChatSession, error)
}

type sessionRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewSessionRepository(db *sqlx.DB, logger *zap.Logger) SessionRepository {
	return &sessionRepository{db: db, logger: logger}
}

func (r *sessionRepository) Create(session *models.ChatSession) error {
	query := `INSERT INTO chat_sessions (id, user_id, title, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Exec(query, session.ID, session.UserID, session.Title,
		session.CreatedAt, session.UpdatedAt)
	return err
}

// GetByIDAndOwner returns the session only when it belongs to ownerID.
// A session owned by somebody else is indistinguishable from an absent one.
func (r *sessionRepository) GetByIDAndOwner(id, ownerID string) (*models.ChatSession, error) {
	var session models.ChatSession
	query := `SELECT id, user_id, title, created_at, updated_at FROM chat_sessions WHERE id = $1 AND user_id = $2`
	err := r.db.Get(&session, query, id, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Session not found
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) ListByOwner(ownerID string, limit int) ([]*models.ChatSession, error) {
	var sessions []*models.ChatSession
	query := `SELECT id, user_id, title, created_at, updated_at FROM chat_sessions WHERE user_id = $1 ORDER BY updated_at DESC LIMIT $2`
	err := r.db.Select(&sessions, query, ownerID, limit)
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepository) Touch(id string) error {
	query := `UPDATE chat_sessions SET updated_at = $1 WHERE id = $2`
	_, err := r.db.Exec(query, time.Now().UTC(), id)
	return err
}

// Delete removes the session. Its messages are removed by the
// ON DELETE CASCADE constraint on chat_messages.
func (r *sessionRepository) Delete(id string) error {
	query := `DELETE FROM chat_sessions WHERE id = $1`
	_, err := r.db.Exec(query, id)
	return err
}

func (r *sessionRepository) Count() (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM chat_sessions`
	err := r.db.Get(&count, query)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *sessionRepository) GetRecent(limit int) ([]*models.ChatSession, error) {
	var sessions []*models.ChatSession
	query := `SELECT id, user_id, title, created_at, updated_at FROM chat_sessions ORDER BY updated_at DESC LIMIT $1`
	err := r.db.Select(&sessions, query, limit)
	if err != nil {
		return nil, err
	}
	return sessions, nil
}
