package repository

import (
	"database/sql"
	"errors"

	"assistant-backend/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type PromptRepository interface {
	Create(prompt *models.PromptTemplate) error
	List(limit int) ([]*models.PromptTemplate, error)
	Update(id, name, content string) error
	Delete(id string) error
	GetActive() (*models.PromptTemplate, error)
}

type promptRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPromptRepository(db *sqlx.DB, logger *zap.Logger) PromptRepository {
	return &promptRepository{db: db, logger: logger}
}

func (r *promptRepository) Create(prompt *models.PromptTemplate) error {
	query := `INSERT INTO prompt_templates (id, name, content, is_active, created_by, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(query, prompt.ID, prompt.Name, prompt.Content,
		prompt.IsActive, prompt.CreatedBy, prompt.CreatedAt)
	return err
}

func (r *promptRepository) List(limit int) ([]*models.PromptTemplate, error) {
	var prompts []*models.PromptTemplate
	query := `SELECT id, name, content, is_active, created_by, created_at FROM prompt_templates ORDER BY created_at DESC LIMIT $1`
	err := r.db.Select(&prompts, query, limit)
	if err != nil {
		return nil, err
	}
	return prompts, nil
}

func (r *promptRepository) Update(id, name, content string) error {
	query := `UPDATE prompt_templates SET name = $1, content = $2 WHERE id = $3`
	result, err := r.db.Exec(query, name, content, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *promptRepository) Delete(id string) error {
	query := `DELETE FROM prompt_templates WHERE id = $1`
	result, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// GetActive returns the newest active template, or nil when none exists.
func (r *promptRepository) GetActive() (*models.PromptTemplate, error) {
	var prompt models.PromptTemplate
	query := `SELECT id, name, content, is_active, created_by, created_at FROM prompt_templates WHERE is_active = TRUE ORDER BY created_at DESC LIMIT 1`
	err := r.db.Get(&prompt, query)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &prompt, nil
}
