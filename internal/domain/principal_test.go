package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrincipalHasAuthority(t *testing.T) {
	p := &Principal{Email: "alice@example.com", Roles: []string{"ROLE_ADMIN", "ROLE_READ"}}

	assert.True(t, p.HasAuthority("ROLE_ADMIN"))
	assert.True(t, p.HasAuthority("ROLE_READ"))
	assert.False(t, p.HasAuthority("ROLE_USER"))
	assert.False(t, p.HasAuthority("ADMIN"))

	var nilPrincipal *Principal
	assert.False(t, nilPrincipal.HasAuthority("ROLE_ADMIN"))
}

func TestPrincipalHasRole(t *testing.T) {
	p := &Principal{Email: "alice@example.com", Roles: []string{"ROLE_ADMIN"}}

	assert.True(t, p.HasRole("ROLE_ADMIN"))
	assert.True(t, p.HasRole("admin"))
	assert.True(t, p.HasRole("ADMIN"))
	assert.False(t, p.HasRole("employee"))
	assert.False(t, p.HasRole("ROLE_EMPLOYEE"))
}
