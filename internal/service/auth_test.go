package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAuthService_RegisterLoginResolve(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	tokens := NewTokenService([]byte("secret"))
	auth := NewAuthService(repo, tokens, zap.NewNop())
	guard := NewAccessGuard(tokens, repo, zap.NewNop())

	user, err := auth.Register("a@x.com", "a", "Secret123!")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.False(t, user.IsAdmin)
	assert.NotEqual(t, "Secret123!", user.PasswordHash)
	assert.True(t, VerifyPassword("Secret123!", user.PasswordHash))

	token, loggedIn, err := auth.Login("a@x.com", "Secret123!")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	resolved, err := guard.ResolveUser(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
	assert.False(t, resolved.IsAdmin)
}

func TestAuthService_RegisterConflicts(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	auth := NewAuthService(repo, NewTokenService([]byte("secret")), zap.NewNop())

	_, err := auth.Register("a@x.com", "a", "Secret123!")
	require.NoError(t, err)

	_, err = auth.Register("a@x.com", "other", "Secret123!")
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = auth.Register("b@x.com", "a", "Secret123!")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthService_LoginFailures(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	auth := NewAuthService(repo, NewTokenService([]byte("secret")), zap.NewNop())

	_, err := auth.Register("a@x.com", "a", "Secret123!")
	require.NoError(t, err)

	// Wrong password and unknown email are indistinguishable.
	_, _, err = auth.Login("a@x.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = auth.Login("nobody@x.com", "Secret123!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
