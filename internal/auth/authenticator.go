package auth

import (
	"context"

	"github.com/spec-kit/incident-service/internal/domain"
)

// Authenticator converts a verified claim set into the request principal.
// It assumes signature and expiry were already checked by the caller.
type Authenticator struct {
	resolver *RoleResolver
}

// NewAuthenticator constructs the adapter.
func NewAuthenticator(resolver *RoleResolver) *Authenticator {
	return &Authenticator{resolver: resolver}
}

// Authenticate builds the principal for this request: identity from the
// claim set, roles from the resolver. Absent optional claims degrade to
// defaults; the only error path is a failing role lookup.
func (a *Authenticator) Authenticate(ctx context.Context, cs ClaimSet) (*domain.Principal, error) {
	email := Email(cs)

	roles, err := a.resolver.Resolve(ctx, email)
	if err != nil {
		return nil, err
	}

	return &domain.Principal{
		Email: email,
		Name:  DisplayName(cs),
		Roles: roles,
	}, nil
}
