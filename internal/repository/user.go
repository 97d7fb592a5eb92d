package repository

import (
	"database/sql"
	"errors"

	"assistant-backend/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	Count() (int, error)
	GetRecent(limit int) ([]*models.User, error)
}

type userRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewUserRepository(db *sqlx.DB, logger *zap.Logger) UserRepository {
	return &userRepository{db: db, logger: logger}
}

func (r *userRepository) Create(user *models.User) error {
	query := `INSERT INTO users (id, email, username, password_hash, is_admin, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(query, user.ID, user.Email, user.Username, user.PasswordHash,
		user.IsAdmin, user.CreatedAt, user.UpdatedAt)
	return err
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	query := `SELECT id, email, username, password_hash, is_admin, created_at, updated_at FROM users WHERE email = $1`
	err := r.db.Get(&user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	query := `SELECT id, email, username, password_hash, is_admin, created_at, updated_at FROM users WHERE username = $1`
	err := r.db.Get(&user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	query := `SELECT id, email, username, password_hash, is_admin, created_at, updated_at FROM users WHERE id = $1`
	err := r.db.Get(&user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Count() (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM users`
	err := r.db.Get(&count, query)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *userRepository) GetRecent(limit int) ([]*models.User, error) {
	var users []*models.User
	query := `SELECT id, email, username, password_hash, is_admin, created_at, updated_at FROM users ORDER BY created_at DESC LIMIT $1`
	err := r.db.Select(&users, query, limit)
	if err != nil {
		return nil, err
	}
	return users, nil
}
