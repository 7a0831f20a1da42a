package service

import (
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/nuitmaroc/nightlife-api/internal/util"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService gates the back office behind a single shared password. The
// credential is supplied as an argon2 hash plus salt; no user accounts exist.
type AuthService struct {
	passwordHash []byte
	passwordSalt []byte
	sessions     *util.SessionManager
}

func NewAuthService(passwordHashHex, passwordSaltHex string, sessions *util.SessionManager) (*AuthService, error) {
	hash, err := hex.DecodeString(passwordHashHex)
	if err != nil {
		return nil, fmt.Errorf("decode admin password hash: %w", err)
	}
	salt, err := hex.DecodeString(passwordSaltHex)
	if err != nil {
		return nil, fmt.Errorf("decode admin password salt: %w", err)
	}
	return &AuthService{passwordHash: hash, passwordSalt: salt, sessions: sessions}, nil
}

// Login verifies the password and issues a session token.
func (s *AuthService) Login(password string) (string, time.Time, error) {
	if !util.VerifyPassword(password, s.passwordSalt, s.passwordHash) {
		return "", time.Time{}, ErrInvalidCredentials
	}
	return s.sessions.Issue()
}

// CheckSession validates a session token from the cookie.
func (s *AuthService) CheckSession(token string) error {
	if _, err := s.sessions.Verify(token); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
