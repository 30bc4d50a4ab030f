package identity

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	de, ok := shared.AsDomainError(err)
	require.True(t, ok, "expected a domain error, got %v", err)
	assert.Equal(t, code, de.Code)
}

func TestNewUser(t *testing.T) {
	t.Run("creates active user with hashed password", func(t *testing.T) {
		user, err := NewUser("  JaneDoe ", "secret-pass", RoleCustomer)

		require.NoError(t, err)
		assert.Equal(t, "janedoe", user.Username)
		assert.NotEqual(t, "secret-pass", user.PasswordHash)
		assert.True(t, user.IsActive)
		assert.True(t, user.VerifyPassword("secret-pass"))
		assert.False(t, user.VerifyPassword("wrong-pass"))
	})

	t.Run("accepts email-like usernames", func(t *testing.T) {
		_, err := NewUser("jane+shop@example.com", "secret-pass", RoleCustomer)
		require.NoError(t, err)
	})

	t.Run("fails with short username", func(t *testing.T) {
		_, err := NewUser("ab", "secret-pass", RoleCustomer)
		assert.Contains(t, err.Error(), "at least 3 characters")
	})

	t.Run("fails with invalid characters", func(t *testing.T) {
		_, err := NewUser("jane doe", "secret-pass", RoleCustomer)
		assertCode(t, err, "INVALID_USERNAME")
	})

	t.Run("fails with short password", func(t *testing.T) {
		_, err := NewUser("janedoe", "short", RoleCustomer)
		assert.Contains(t, err.Error(), "at least 8 characters")
	})

	t.Run("fails with unknown role", func(t *testing.T) {
		_, err := NewUser("janedoe", "secret-pass", Role("root"))
		assertCode(t, err, "INVALID_ROLE")
	})
}

func TestUserProfile(t *testing.T) {
	user, err := NewUser("janedoe", "secret-pass", RoleCustomer)
	require.NoError(t, err)

	require.NoError(t, user.SetProfile(Profile{Email: " Jane@Example.COM ", FullName: "Jane Doe"}))
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, 2, user.Version)

	err = user.SetProfile(Profile{Email: "not-an-email"})
	assertCode(t, err, "INVALID_EMAIL")
	assert.Equal(t, "jane@example.com", user.Email)

	p := user.Principal()
	assert.Equal(t, user.ID, p.UserID)
	assert.Equal(t, RoleCustomer, p.Role)
}

func TestPrincipal(t *testing.T) {
	anon := Anonymous()
	assert.True(t, anon.IsAnonymous())
	assert.Nil(t, anon.UserRef())
	assert.True(t, errors.Is(anon.RequireAdmin(), shared.ErrUnauthorized))

	customer := Principal{UserID: uuid.New(), Username: "jane", Role: RoleCustomer}
	require.NoError(t, customer.RequireAuthenticated())
	assert.True(t, errors.Is(customer.RequireAdmin(), shared.ErrForbidden))
	require.NotNil(t, customer.UserRef())
	assert.Equal(t, customer.UserID, *customer.UserRef())

	admin := Principal{UserID: uuid.New(), Username: "root", Role: RoleAdmin}
	assert.True(t, admin.IsAdmin())
	assert.NoError(t, admin.RequireAdmin())
}

func TestIssuedToken(t *testing.T) {
	now := time.Now()
	token := NewIssuedToken("jti-1", uuid.New(), now.Add(time.Hour))

	assert.True(t, token.IsUsable(now))
	assert.False(t, token.IsUsable(now.Add(2*time.Hour)))

	require.NoError(t, token.Revoke(now))
	assert.True(t, token.IsRevoked())
	assert.False(t, token.IsUsable(now))

	err := token.Revoke(now)
	assert.True(t, errors.Is(err, ErrTokenAlreadyRevoked))
}
