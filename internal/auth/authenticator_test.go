package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/incident-service/internal/domain"
)

func TestAuthenticateStoredRoleWins(t *testing.T) {
	repo := &fakeUserRepository{byEmail: map[string]*domain.User{
		"alice@example.com": {ID: 1, Email: "alice@example.com", Name: "Alice Smith", Role: domain.UserRoleAdmin},
	}}
	authenticator := NewAuthenticator(NewRoleResolver(repo))

	principal, err := authenticator.Authenticate(context.Background(), ClaimSet{
		"email": "alice@example.com",
		"name":  "Alice Smith",
		"scp":   "read write",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", principal.Email)
	assert.Equal(t, "Alice Smith", principal.Name)
	// The stored record decides; scope hints on the token do not leak in.
	assert.Equal(t, []string{"ROLE_ADMIN"}, principal.Roles)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	authenticator := NewAuthenticator(NewRoleResolver(&fakeUserRepository{}))

	principal, err := authenticator.Authenticate(context.Background(), ClaimSet{
		"sub": "u1",
		"scp": "read write",
	})
	require.NoError(t, err)

	assert.Equal(t, "u1", principal.Email)
	assert.Equal(t, "", principal.Name)
	assert.Equal(t, []string{"ROLE_USER"}, principal.Roles)
}

func TestAuthenticateMinimalToken(t *testing.T) {
	authenticator := NewAuthenticator(NewRoleResolver(&fakeUserRepository{}))

	principal, err := authenticator.Authenticate(context.Background(), ClaimSet{})
	require.NoError(t, err)

	assert.Equal(t, "", principal.Email)
	assert.NotEmpty(t, principal.Roles)
}
