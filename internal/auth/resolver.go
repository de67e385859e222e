package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/incident-service/internal/repository"
)

// RoleResolver produces the final role set for a request. The persisted
// user record is authoritative: when one exists its role wins over any
// hints carried in the token.
type RoleResolver struct {
	users repository.UserRepository
}

// NewRoleResolver constructs a resolver backed by the user store.
func NewRoleResolver(users repository.UserRepository) *RoleResolver {
	return &RoleResolver{users: users}
}

// Resolve looks up the user record by email and maps its role to a
// singleton authority set. A missing record or an empty role field demotes
// to ROLE_USER; it never rejects the request. Store failures other than
// row absence propagate to the caller.
func (r *RoleResolver) Resolve(ctx context.Context, email string) ([]string, error) {
	user, err := r.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []string{RoleUser}, nil
		}
		return nil, err
	}

	role := strings.TrimSpace(user.Role)
	if role == "" {
		return []string{RoleUser}, nil
	}
	return []string{RolePrefix + strings.ToUpper(role)}, nil
}
