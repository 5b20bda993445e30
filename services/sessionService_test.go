package services

import (
	"context"
	"testing"
	"time"

	"PalmCare/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionService_LoginAndCurrent(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	s.Sessions.now = func() time.Time { return time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC) }

	session, err := s.Sessions.Login(ctx, LoginRequest{Username: " dr.jane_doe "})
	require.NoError(t, err)
	assert.Equal(t, "dr.jane_doe", session.Username)
	assert.Equal(t, "Jane Doe", session.DisplayName)
	assert.Equal(t, models.RoleDoctor, session.Role)
	assert.Equal(t, "Good morning, Jane Doe", session.Greeting)
	assert.NotEmpty(t, session.Token)

	current, err := s.Sessions.Current(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", current.DisplayName)
	assert.Empty(t, current.Token)

	_, err = s.Sessions.Current(ctx, "")
	assert.ErrorIs(t, err, models.ErrNoSession)
	_, err = s.Sessions.Current(ctx, "v2.local.garbage")
	assert.ErrorIs(t, err, models.ErrNoSession)

	var errs validation.Errors
	_, err = s.Sessions.Login(ctx, LoginRequest{Username: "  "})
	assert.ErrorAs(t, err, &errs)
}
