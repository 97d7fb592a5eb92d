package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_VerifyRoundtrip(t *testing.T) {
	t.Parallel()

	digest, err := HashPassword("Secret123!")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(digest, "$argon2id$"))

	assert.True(t, VerifyPassword("Secret123!", digest))
	assert.False(t, VerifyPassword("secret123!", digest))
	assert.False(t, VerifyPassword("", digest))
}

func TestHashPassword_FreshSaltPerCall(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("same-password")
	require.NoError(t, err)
	second, err := HashPassword("same-password")
	require.NoError(t, err)

	// Different salts, different digests, both verify.
	assert.NotEqual(t, first, second)
	assert.True(t, VerifyPassword("same-password", first))
	assert.True(t, VerifyPassword("same-password", second))
}

func TestVerifyPassword_WrongDigest(t *testing.T) {
	t.Parallel()

	digest, err := HashPassword("password-a")
	require.NoError(t, err)

	assert.False(t, VerifyPassword("password-b", digest))
}

func TestVerifyPassword_MalformedDigest(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		digest string
	}{
		{"empty", ""},
		{"garbage", "not-a-digest"},
		{"wrong scheme", "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
		{"missing sections", "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA"},
		{"bad salt encoding", "$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA"},
		{"bad hash encoding", "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$!!!"},
		{"bad params", "$argon2id$v=19$m=x,t=y,p=z$c2FsdA$aGFzaA"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.False(t, VerifyPassword("anything", tc.digest))
		})
	}
}
