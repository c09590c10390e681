// internal/domain/user/entity_test.go
package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsKnownRole(t *testing.T) {
	assert.True(t, IsKnownRole(RoleCustomer))
	assert.True(t, IsKnownRole(RoleAdmin))
	assert.False(t, IsKnownRole("superuser"))
	assert.False(t, IsKnownRole(""))
}

func TestBeforeCreateNormalizesEmailAndRole(t *testing.T) {
	u := &User{Email: "Customer@VoltStore.com"}

	require.NoError(t, u.BeforeCreate(nil))

	assert.Equal(t, "customer@voltstore.com", u.Email)
	assert.Equal(t, RoleCustomer, u.Role)

	admin := &User{Email: "admin@voltstore.com", Role: RoleAdmin}
	require.NoError(t, admin.BeforeCreate(nil))
	assert.Equal(t, RoleAdmin, admin.Role)
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleCustomer}).IsAdmin())
}

func TestGetDisplayName(t *testing.T) {
	u := &User{FirstName: "Jordan", LastName: "Lee", Email: "jordan@example.com"}
	assert.Equal(t, "Jordan Lee", u.GetDisplayName())

	firstOnly := &User{FirstName: "Jordan", Email: "jordan@example.com"}
	assert.Equal(t, "Jordan", firstOnly.GetDisplayName())

	noName := &User{Email: "jordan@example.com"}
	assert.Equal(t, "jordan@example.com", noName.GetDisplayName())
}
