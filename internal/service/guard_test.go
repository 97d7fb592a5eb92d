package service

import (
	"testing"
	"time"

	"assistant-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeUserRepo is an in-memory repository.UserRepository used across the
// service tests.
type fakeUserRepo struct {
	users map[string]*models.User // keyed by id

	getErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) Create(user *models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByUsername(username string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByID(id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.users[id], nil
}

func (f *fakeUserRepo) Count() (int, error) {
	return len(f.users), nil
}

func (f *fakeUserRepo) GetRecent(limit int) ([]*models.User, error) {
	users := make([]*models.User, 0, len(f.users))
	for _, u := range f.users {
		if len(users) == limit {
			break
		}
		users = append(users, u)
	}
	return users, nil
}

func TestAccessGuard_ResolveUser(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	repo.users["user-1"] = &models.User{ID: "user-1", Email: "a@x.com", Username: "a"}

	tokens := NewTokenService([]byte("secret"))
	guard := NewAccessGuard(tokens, repo, zap.NewNop())

	token, err := tokens.Issue("user-1", time.Hour)
	require.NoError(t, err)

	user, err := guard.ResolveUser(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.False(t, user.IsAdmin)
}

func TestAccessGuard_InvalidToken(t *testing.T) {
	t.Parallel()

	tokens := NewTokenService([]byte("secret"))
	guard := NewAccessGuard(tokens, newFakeUserRepo(), zap.NewNop())

	for _, token := range []string{"", "not.a.jwt"} {
		_, err := guard.ResolveUser(token)
		assert.ErrorIs(t, err, ErrInvalidCredentials, "token %q", token)
	}

	// Expired tokens collapse to the same unauthenticated outcome.
	expired, err := tokens.Issue("user-1", -1*time.Second)
	require.NoError(t, err)
	_, err = guard.ResolveUser(expired)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAccessGuard_DeletedUser(t *testing.T) {
	t.Parallel()

	// Valid unexpired token whose subject no longer exists: the request
	// is unauthenticated, not an internal error.
	tokens := NewTokenService([]byte("secret"))
	guard := NewAccessGuard(tokens, newFakeUserRepo(), zap.NewNop())

	token, err := tokens.Issue("gone-user", time.Hour)
	require.NoError(t, err)

	_, err = guard.ResolveUser(token)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAccessGuard_RequireAdmin(t *testing.T) {
	t.Parallel()

	guard := NewAccessGuard(NewTokenService([]byte("secret")), newFakeUserRepo(), zap.NewNop())

	assert.ErrorIs(t, guard.RequireAdmin(&models.User{ID: "u", IsAdmin: false}), ErrForbidden)
	assert.ErrorIs(t, guard.RequireAdmin(nil), ErrForbidden)
	assert.NoError(t, guard.RequireAdmin(&models.User{ID: "u", IsAdmin: true}))
}
