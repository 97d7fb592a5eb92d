package repository

import (
	"assistant-backend/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type StatusRepository interface {
	Create(check *models.StatusCheck) error
	List(limit int) ([]*models.StatusCheck, error)
}

type statusRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewStatusRepository(db *sqlx.DB, logger *zap.Logger) StatusRepository {
	return &statusRepository{db: db, logger: logger}
}

func (r *statusRepository) Create(check *models.StatusCheck) error {
	query := `INSERT INTO status_checks (id, client_name, created_at) VALUES ($1, $2, $3)`
	_, err := r.db.Exec(query, check.ID, check.ClientName, check.CreatedAt)
	return err
}

func (r *statusRepository) List(limit int) ([]*models.StatusCheck, error) {
	var checks []*models.StatusCheck
	query := `SELECT id, client_name, created_at FROM status_checks ORDER BY created_at DESC LIMIT $1`
	err := r.db.Select(&checks, query, limit)
	if err != nil {
		return nil, err
	}
	return checks, nil
}
