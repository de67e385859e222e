package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/incident-service/internal/domain"
)

// fakeUserRepository serves records from a map keyed by email. A nil map
// behaves like an empty store; a non-nil err is returned from every call.
type fakeUserRepository struct {
	byEmail map[string]*domain.User
	err     error
}

func (f *fakeUserRepository) Create(ctx context.Context, user *domain.User) error { return f.err }
func (f *fakeUserRepository) Update(ctx context.Context, user *domain.User) error { return f.err }
func (f *fakeUserRepository) Delete(ctx context.Context, id int64) error          { return f.err }

func (f *fakeUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, user := range f.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if user, ok := f.byEmail[email]; ok {
		return user, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepository) ListAll(ctx context.Context) ([]domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	var result []domain.User
	for _, user := range f.byEmail {
		result = append(result, *user)
	}
	return result, nil
}

func (f *fakeUserRepository) ListByRole(ctx context.Context, role string) ([]domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	var result []domain.User
	for _, user := range f.byEmail {
		if user.Role == role {
			result = append(result, *user)
		}
	}
	return result, nil
}

func TestRoleResolver(t *testing.T) {
	tests := []struct {
		name     string
		store    map[string]*domain.User
		email    string
		expected []string
	}{
		{
			name: "stored role is uppercased and prefixed",
			store: map[string]*domain.User{
				"alice@example.com": {ID: 1, Email: "alice@example.com", Role: domain.UserRoleAdmin},
			},
			email:    "alice@example.com",
			expected: []string{"ROLE_ADMIN"},
		},
		{
			name: "lowercase stored role normalizes",
			store: map[string]*domain.User{
				"bob@example.com": {ID: 2, Email: "bob@example.com", Role: "employee"},
			},
			email:    "bob@example.com",
			expected: []string{"ROLE_EMPLOYEE"},
		},
		{
			name:     "unknown user demotes to ROLE_USER",
			store:    nil,
			email:    "nobody@example.com",
			expected: []string{"ROLE_USER"},
		},
		{
			name: "blank stored role demotes to ROLE_USER",
			store: map[string]*domain.User{
				"carol@example.com": {ID: 3, Email: "carol@example.com", Role: "  "},
			},
			email:    "carol@example.com",
			expected: []string{"ROLE_USER"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := NewRoleResolver(&fakeUserRepository{byEmail: tt.store})
			roles, err := resolver.Resolve(context.Background(), tt.email)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, roles)
			assert.NotEmpty(t, roles)
		})
	}
}

func TestRoleResolverStoreError(t *testing.T) {
	storeErr := errors.New("connection reset")
	resolver := NewRoleResolver(&fakeUserRepository{err: storeErr})

	roles, err := resolver.Resolve(context.Background(), "alice@example.com")
	require.ErrorIs(t, err, storeErr)
	assert.Nil(t, roles)
}
