package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailcore/internal/core/id"
	"retailcore/internal/domain/users"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))

	u := &users.User{
		ID:    id.New(),
		Email: "admin@example.com",
		Role:  users.RoleAdmin,
	}

	token, expiresAt, err := svc.GenerateAccessToken(u)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	identity, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), identity.UserID)
	assert.Equal(t, "admin@example.com", identity.Email)
	assert.Equal(t, users.RoleAdmin, identity.Role)
	assert.True(t, identity.IsAdmin())
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("secret-a"))
	other := NewJWTService(DefaultJWTConfig("secret-b"))

	u := &users.User{ID: id.New(), Email: "cashier@example.com", Role: users.RoleCashier}
	token, _, err := svc.GenerateAccessToken(u)
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	cfg := DefaultJWTConfig("test-secret")
	cfg.AccessTokenTTL = -time.Minute
	svc := NewJWTService(cfg)

	u := &users.User{ID: id.New(), Email: "cashier@example.com", Role: users.RoleCashier}
	token, _, err := svc.GenerateAccessToken(u)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}
