package services

import (
	"context"
	"strings"
	"time"

	"PalmCare/models"
	"PalmCare/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type LoginRequest struct {
	Username string `json:"username"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, utils.NotBlank, validation.Length(1, 100)),
	)
}

// SessionService keeps the display identity of the signed-in user. It does
// not authenticate anyone.
type SessionService struct {
	tokens *utils.SessionTokens
	log    zerolog.Logger
	now    func() time.Time
}

func NewSessionService(tokens *utils.SessionTokens, log zerolog.Logger) *SessionService {
	return &SessionService{tokens: tokens, log: log, now: time.Now}
}

func (s *SessionService) TTL() time.Duration {
	return s.tokens.TTL()
}

// Login derives the display identity for username and issues its token.
func (s *SessionService) Login(ctx context.Context, req LoginRequest) (*models.Session, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	username := strings.TrimSpace(req.Username)
	now := s.now()
	token, claims, err := s.tokens.Issue(username, now)
	if err != nil {
		return nil, err
	}
	session := s.session(username, now)
	session.Token = token
	session.ExpiresAt = claims.Expiry
	s.log.Info().Str("username", username).Str("role", session.Role).Msg("Session started")
	return session, nil
}

// Current reads the identity back from a token.
func (s *SessionService) Current(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, models.ErrNoSession
	}
	now := s.now()
	claims, err := s.tokens.Parse(token, now)
	if err != nil {
		return nil, errors.Wrap(models.ErrNoSession, err.Error())
	}
	session := s.session(claims.Username, now)
	session.ExpiresAt = claims.Expiry
	return session, nil
}

func (s *SessionService) session(username string, now time.Time) *models.Session {
	name, role := utils.DeriveIdentity(username)
	return &models.Session{
		Username:    username,
		DisplayName: name,
		Role:        role,
		Greeting:    utils.Greeting(name, now),
	}
}
