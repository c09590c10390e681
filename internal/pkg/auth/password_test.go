// internal/pkg/auth/password_test.go
package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voltstore/backend/internal/config"
	"github.com/voltstore/backend/internal/pkg/apperr"
	"golang.org/x/crypto/bcrypt"
)

func passwordTestConfig() *config.Config {
	return &config.Config{
		Security: config.SecurityConfig{BcryptCost: bcrypt.MinCost},
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	manager := NewPasswordManager(passwordTestConfig())

	hash, err := manager.HashPassword("customer123")
	require.NoError(t, err)
	assert.NotEqual(t, "customer123", hash)

	assert.NoError(t, manager.VerifyPassword("customer123", hash))
	assert.Error(t, manager.VerifyPassword("wrong-password", hash))
}

func TestHashPasswordRejectsTooShort(t *testing.T) {
	manager := NewPasswordManager(passwordTestConfig())

	_, err := manager.HashPassword("abc")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestHashPasswordRejectsTooLong(t *testing.T) {
	manager := NewPasswordManager(passwordTestConfig())

	_, err := manager.HashPassword(strings.Repeat("a", 129))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestValidatePassword(t *testing.T) {
	manager := NewPasswordManager(passwordTestConfig())

	assert.NoError(t, manager.ValidatePassword("123456"))
	assert.Error(t, manager.ValidatePassword("12345"))
}
