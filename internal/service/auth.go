package service

import (
	"errors"
	"fmt"
	"time"

	"assistant-backend/internal/models"
	"assistant-backend/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already taken")
)

// loginTokenTTL is the explicit session lifetime for the login flow,
// deliberately longer than the token service's internal default.
const loginTokenTTL = 30 * time.Minute

type AuthService interface {
	Register(email, username, password string) (*models.User, error)
	Login(email, password string) (string, *models.User, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *TokenService
	logger *zap.Logger
}

func NewAuthService(users repository.UserRepository, tokens *TokenService, logger *zap.Logger) AuthService {
	return &authService{users: users, tokens: tokens, logger: logger}
}

// Register creates a new non-admin account. Email and username must each
// be unique across all accounts.
func (s *authService) Register(email, username, password string) (*models.User, error) {
	existing, err := s.users.GetByEmail(email)
	if err != nil {
		s.logger.Error("Failed to check email uniqueness", zap.Error(err))
		return nil, fmt.Errorf("failed to check existing users: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	existing, err = s.users.GetByUsername(username)
	if err != nil {
		s.logger.Error("Failed to check username uniqueness", zap.Error(err))
		return nil, fmt.Errorf("failed to check existing users: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	passwordHash, err := HashPassword(password)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		IsAdmin:      false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(user); err != nil {
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID), zap.String("username", username))
	return user, nil
}

// Login verifies the credentials and mints a session token. An unknown
// email and a wrong password are indistinguishable to the caller.
func (s *authService) Login(email, password string) (string, *models.User, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		s.logger.Error("Failed to get user by email", zap.Error(err))
		return "", nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	if user == nil || !VerifyPassword(password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, loginTokenTTL)
	if err != nil {
		s.logger.Error("Failed to issue session token", zap.Error(err))
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID))
	return token, user, nil
}
