package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/incident-service/internal/domain"
	"github.com/spec-kit/incident-service/internal/repository"
	apperrors "github.com/spec-kit/incident-service/pkg/util"
)

// UserService manages the local user records that back role resolution.
type UserService struct {
	users repository.UserRepository
}

// UserPatch is a partial update for user records. Email is immutable; only
// name and role can change.
type UserPatch struct {
	Name *string
	Role *string
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Register provisions a user record for an identity-provider account.
func (s *UserService) Register(ctx context.Context, email, name, role string) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	user := &domain.User{Email: email, Name: name, Role: role}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetAll returns every user record.
func (s *UserService) GetAll(ctx context.Context) ([]domain.User, error) {
	return s.users.ListAll(ctx)
}

// GetByID fetches a single user record.
func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// GetByEmail fetches a user record by its unique email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users.GetByEmail(ctx, email)
}

// ListByRole returns users carrying the given stored role.
func (s *UserService) ListByRole(ctx context.Context, role string) ([]domain.User, error) {
	return s.users.ListByRole(ctx, role)
}

// Update applies a partial update onto the stored user. Nil fields leave
// the stored value untouched.
func (s *UserService) Update(ctx context.Context, id int64, patch UserPatch) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Role != nil {
		user.Role = *patch.Role
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user record.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.users.Delete(ctx, id)
}
