package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("super-secret"))

	token, err := svc.Issue("user-123", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", subject)
}

func TestTokenService_DefaultTTL(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("super-secret"))

	// A non-positive ttl takes the internal 15-minute default and the
	// token is immediately usable.
	token, err := svc.Issue("user-123", 0)
	require.NoError(t, err)

	subject, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", subject)
}

func TestTokenService_Expired(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("super-secret"))

	token, err := svc.Issue("user-123", -1*time.Second)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenService_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewTokenService([]byte("right-secret"))
	verifier := NewTokenService([]byte("wrong-secret"))

	token, err := issuer.Issue("user-123", time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrTokenSignature)
}

func TestTokenService_Malformed(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("super-secret"))

	for _, token := range []string{"", "not.a.jwt", "garbage"} {
		_, err := svc.Verify(token)
		assert.ErrorIs(t, err, ErrTokenMalformed, "token %q", token)
	}
}

func TestTokenService_TamperedToken(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("super-secret"))

	token, err := svc.Issue("user-123", time.Hour)
	require.NoError(t, err)

	// Flipping any single byte must never verify. Depending on where the
	// byte lands the failure is a signature mismatch or a parse error.
	for i := 0; i < len(token); i++ {
		tampered := []byte(token)
		tampered[i] ^= 0x01
		if string(tampered) == token {
			continue
		}

		_, err := svc.Verify(string(tampered))
		require.Error(t, err, "tampered byte at %d verified", i)
		require.True(t,
			errors.Is(err, ErrTokenSignature) || errors.Is(err, ErrTokenMalformed) || errors.Is(err, ErrTokenExpired),
			"unexpected error kind at byte %d: %v", i, err)
	}
}

func TestTokenService_EmptySubject(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("super-secret"))

	token, err := svc.Issue("", time.Hour)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}
