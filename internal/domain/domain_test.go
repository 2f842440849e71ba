// File: internal/domain/domain_test.go
package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectChannelKey_OrderIndependent(t *testing.T) {
	assert.Equal(t, "2:7", DirectChannelKey(7, 2))
	assert.Equal(t, "2:7", DirectChannelKey(2, 7))
	assert.NotEqual(t, DirectChannelKey(1, 2), DirectChannelKey(1, 3))
}

func TestChannel_HasMember(t *testing.T) {
	ch := &Channel{Members: []ChannelMember{{UserID: 1}, {UserID: 2}}}

	assert.True(t, ch.HasMember(1))
	assert.True(t, ch.HasMember(2))
	assert.False(t, ch.HasMember(3))
}

func TestUser_PasswordRoundTrip(t *testing.T) {
	u := &User{}
	require.NoError(t, u.HashPassword("password123"))

	assert.NotEqual(t, "password123", u.PasswordHash)
	assert.NoError(t, u.ValidatePassword("password123"))
	assert.Error(t, u.ValidatePassword("wrong"))
}

func TestUser_HashPassword_TooShort(t *testing.T) {
	u := &User{}
	assert.Error(t, u.HashPassword("short"))
}

func TestUser_IsValid(t *testing.T) {
	valid := &User{Name: "Alice", Email: "alice@example.com"}
	assert.NoError(t, valid.IsValid())

	noName := &User{Name: "  ", Email: "alice@example.com"}
	assert.Error(t, noName.IsValid())

	longName := &User{Name: "0123456789012345678901234567890", Email: "alice@example.com"}
	assert.Error(t, longName.IsValid())

	badEmail := &User{Name: "Alice", Email: "nope"}
	assert.Error(t, badEmail.IsValid())
}

func TestValidationError_Fields(t *testing.T) {
	err := NewValidationError("name", "name is required")

	assert.Equal(t, "validation failed", err.Error())
	assert.Equal(t, "name is required", err.Fields["name"])
}
