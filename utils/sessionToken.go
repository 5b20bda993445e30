package utils

import (
	"time"

	"github.com/o1egl/paseto"
	"github.com/pkg/errors"
)

var ErrSessionExpired = errors.New("session expired")

// SessionClaims is the data carried by a session token.
type SessionClaims struct {
	Username string    `json:"username"`
	Expiry   time.Time `json:"expiry"`
}

// SessionTokens issues and reads PASETO v2 local tokens.
type SessionTokens struct {
	key []byte
	ttl time.Duration
}

// NewSessionTokens expects a 32 byte symmetric key.
func NewSessionTokens(key []byte, ttl time.Duration) *SessionTokens {
	return &SessionTokens{key: key, ttl: ttl}
}

// TTL returns how long issued tokens stay valid.
func (s *SessionTokens) TTL() time.Duration {
	return s.ttl
}

// Issue generates a token for username valid from now.
func (s *SessionTokens) Issue(username string, now time.Time) (string, SessionClaims, error) {
	claims := SessionClaims{Username: username, Expiry: now.Add(s.ttl)}
	token, err := paseto.NewV2().Encrypt(s.key, claims, nil)
	if err != nil {
		return "", SessionClaims{}, errors.Wrap(err, "failed to generate token")
	}
	return token, claims, nil
}

// Parse decrypts token and checks its expiry against now.
func (s *SessionTokens) Parse(token string, now time.Time) (*SessionClaims, error) {
	var claims SessionClaims
	if err := paseto.NewV2().Decrypt(token, s.key, &claims, nil); err != nil {
		return nil, errors.Wrap(err, "failed to decrypt token")
	}
	if now.After(claims.Expiry) {
		return nil, ErrSessionExpired
	}
	return &claims, nil
}
