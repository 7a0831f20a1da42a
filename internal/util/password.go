package util

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for the admin credential. The back office has exactly
// one shared password, so derivation cost can stay on the expensive side.
const (
	credentialSaltLen = 16
	credentialKeyLen  = 32
	credentialPasses  = 1
	credentialMemory  = 64 * 1024
	credentialLanes   = 4
)

// DerivePassword hashes a password with a fresh random salt. It is used when
// provisioning the ADMIN_PASSWORD_HASH / ADMIN_PASSWORD_SALT pair.
func DerivePassword(password string) (hash, salt []byte, err error) {
	if password == "" {
		return nil, nil, errors.New("password cannot be empty")
	}
	salt = make([]byte, credentialSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, err
	}
	return deriveKey(password, salt), salt, nil
}

// VerifyPassword re-derives the candidate and compares in constant time.
func VerifyPassword(password string, salt, expectedHash []byte) bool {
	if password == "" || len(salt) == 0 || len(expectedHash) != credentialKeyLen {
		return false
	}
	candidate := deriveKey(password, salt)
	return subtle.ConstantTimeCompare(candidate, expectedHash) == 1
}

func deriveKey(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, credentialPasses, credentialMemory, credentialLanes, credentialKeyLen)
}
