package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestNewSessionExtractsUserID(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"user_id": "11111111-2222-3333-4444-555555555555",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	session, err := NewSession(token)
	require.NoError(t, err)

	assert.Equal(t, "11111111-2222-3333-4444-555555555555", session.UserID().String())
	assert.Equal(t, token, session.Token())
	assert.False(t, session.Expired())
}

func TestNewSessionExpiredToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"user_id": "11111111-2222-3333-4444-555555555555",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	session, err := NewSession(token)
	require.NoError(t, err)
	assert.True(t, session.Expired())
}

func TestNewSessionWithoutExpiry(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"user_id": "11111111-2222-3333-4444-555555555555",
	})

	session, err := NewSession(token)
	require.NoError(t, err)
	assert.False(t, session.Expired())
}

func TestNewSessionMissingUserID(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})

	_, err := NewSession(token)
	assert.Error(t, err)
}

func TestNewSessionBadUserID(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"user_id": "не uuid"})

	_, err := NewSession(token)
	assert.Error(t, err)
}

func TestNewSessionGarbageToken(t *testing.T) {
	_, err := NewSession("definitely.not.a-jwt")
	assert.Error(t, err)
}
