package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// argon2id parameters. Changing these only affects new hashes; stored
// digests carry their own parameters.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

// HashPassword hashes the password with argon2id and a fresh random salt.
// The digest is encoded as $argon2id$v=19$m=65536,t=1,p=4$SALT$HASH.
func HashPassword(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	encodedSalt := base64.RawStdEncoding.EncodeToString(salt)
	encodedHash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads, encodedSalt, encodedHash), nil
}

// VerifyPassword reports whether the digest was produced from the
// password. A malformed digest verifies as false, never as an error.
func VerifyPassword(password, digest string) bool {
	sections := strings.Split(digest, "$")
	// Expected: ["", "argon2id", "v=19", "m=65536,t=1,p=4", "salt", "hash"]
	if len(sections) != 6 || sections[1] != "argon2id" {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(sections[2], "v=%d", &version); err != nil {
		return false
	}

	var m, t uint32
	var p uint8
	if _, err := fmt.Sscanf(sections[3], "m=%d,t=%d,p=%d", &m, &t, &p); err != nil {
		return false
	}
	if m == 0 || t == 0 || p == 0 {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(sections[4])
	if err != nil {
		return false
	}
	hash, err := base64.RawStdEncoding.DecodeString(sections[5])
	if err != nil || len(hash) == 0 {
		return false
	}

	candidate := argon2.IDKey([]byte(password), salt, t, m, p, uint32(len(hash)))

	return subtle.ConstantTimeCompare(candidate, hash) == 1
}
