package service

import (
	"errors"
	"fmt"

	"assistant-backend/internal/models"
	"assistant-backend/internal/repository"

	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("not enough permissions")
)

// AccessGuard resolves bearer tokens to stored users and enforces role
// requirements. All authentication failures are decided here; handlers
// behind the guard never see an unauthenticated request.
type AccessGuard struct {
	tokens *TokenService
	users  repository.UserRepository
	logger *zap.Logger
}

func NewAccessGuard(tokens *TokenService, users repository.UserRepository, logger *zap.Logger) *AccessGuard {
	return &AccessGuard{tokens: tokens, users: users, logger: logger}
}

// ResolveUser verifies the token and loads its subject. Any token defect
// collapses to ErrInvalidCredentials; a valid token whose subject no
// longer exists (deleted account) yields ErrUserNotFound. Both are
// unauthenticated outcomes, not internal errors.
func (g *AccessGuard) ResolveUser(tokenString string) (*models.User, error) {
	subjectID, err := g.tokens.Verify(tokenString)
	if err != nil {
		g.logger.Debug("Token verification failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	user, err := g.users.GetByID(subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up token subject: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

// RequireAdmin fails with ErrForbidden unless the user is an admin.
func (g *AccessGuard) RequireAdmin(user *models.User) error {
	if user == nil || !user.IsAdmin {
		return ErrForbidden
	}
	return nil
}
