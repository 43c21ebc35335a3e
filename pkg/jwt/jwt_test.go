package jwt

import (
	"testing"
	"time"

	"telemed-scheduler/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	s := testService()

	token, tokenID, err := s.GenerateAccessToken(5, "pat@example.com", "USER")
	require.NoError(t, err)
	assert.NotEmpty(t, tokenID)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(5), claims.UserID)
	assert.Equal(t, "pat@example.com", claims.Email)
	assert.Equal(t, "USER", claims.Role)
	assert.Equal(t, AccessToken, claims.TokenType)
	assert.Equal(t, tokenID, claims.TokenID)
}

func TestRefreshTokenCarriesType(t *testing.T) {
	s := testService()

	token, _, err := s.GenerateRefreshToken(5, "pat@example.com", "USER")
	require.NoError(t, err)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, RefreshToken, claims.TokenType)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	s := testService()
	other := NewJWTService(config.JWTConfig{Secret: "different-secret", AccessExpiry: time.Minute, RefreshExpiry: time.Hour})

	token, _, err := s.GenerateAccessToken(5, "pat@example.com", "USER")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	s := testService()

	_, err := s.ValidateToken("not.a.token")
	assert.Error(t, err)
}
