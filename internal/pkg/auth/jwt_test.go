// internal/pkg/auth/jwt_test.go
package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voltstore/backend/internal/config"
	"github.com/voltstore/backend/internal/pkg/apperr"
)

func jwtTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "voltstore-test"},
		JWT: config.JWTConfig{
			Secret:             "test-secret-key-that-is-long-enough-for-hs256",
			AccessTokenExpiry:  time.Hour,
			RefreshTokenExpiry: 24 * time.Hour,
		},
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	manager := NewJWTManager(jwtTestConfig())

	token, err := manager.GenerateAccessToken(42, "customer@voltstore.com", false)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "customer@voltstore.com", claims.Email)
	assert.False(t, claims.IsAdmin)
	assert.Equal(t, "access", claims.TokenType)
}

func TestAdminClaimCarriedInAccessToken(t *testing.T) {
	manager := NewJWTManager(jwtTestConfig())

	token, err := manager.GenerateAccessToken(1, "admin@voltstore.com", true)
	require.NoError(t, err)

	claims, err := manager.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
}

func TestRefreshTokenRejectedAsAccessToken(t *testing.T) {
	manager := NewJWTManager(jwtTestConfig())

	refresh, err := manager.GenerateRefreshToken(42, "customer@voltstore.com")
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(refresh)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	claims, err := manager.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims.TokenType)
	assert.False(t, claims.IsAdmin, "refresh tokens never carry the admin claim")
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	manager := NewJWTManager(jwtTestConfig())

	token, err := manager.GenerateAccessToken(42, "customer@voltstore.com", false)
	require.NoError(t, err)

	otherCfg := jwtTestConfig()
	otherCfg.JWT.Secret = "a-completely-different-secret-key-value-here"
	other := NewJWTManager(otherCfg)

	_, err = other.ValidateToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	manager := NewJWTManager(jwtTestConfig())

	_, err := manager.ValidateToken("not-a-jwt")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc.def.ghi", ExtractTokenFromHeader("Bearer abc.def.ghi"))
	assert.Equal(t, "", ExtractTokenFromHeader("abc.def.ghi"))
	assert.Equal(t, "", ExtractTokenFromHeader("Bearer"))
	assert.Equal(t, "", ExtractTokenFromHeader(""))
}
