package auth

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/incident-service/internal/domain"
	apperrors "github.com/spec-kit/incident-service/pkg/util"
)

const (
	principalKey   = "auth_principal"
	bearerTokenKey = "auth_bearer_token"
)

// BearerToken is the raw credential of the current request, kept around so
// the logout endpoint can revoke it.
type BearerToken struct {
	Raw       string
	ExpiresAt time.Time
}

// RevocationChecker reports whether a bearer token was revoked.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// AuthMiddleware verifies bearer tokens and attaches the resolved principal
// to the request.
type AuthMiddleware struct {
	verifier      *TokenVerifier
	denylist      RevocationChecker
	authenticator *Authenticator
	logger        *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(verifier *TokenVerifier, denylist RevocationChecker, authenticator *Authenticator, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		verifier:      verifier,
		denylist:      denylist,
		authenticator: authenticator,
		logger:        logger,
	}
}

// Handle enforces authentication for protected routes. Authorization
// failures downstream are distinct; this only answers who the caller is.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}
	tokenStr := parts[1]

	verified, err := m.verifier.Verify(tokenStr)
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	if m.denylist != nil {
		revoked, err := m.denylist.IsRevoked(c.Context(), tokenStr)
		if err != nil {
			// Revocation is best effort; an unreachable list must not take
			// the API down.
			m.logger.Warn("token revocation check failed", zap.Error(err))
		} else if revoked {
			return apperrors.NewUnauthorized("token revoked")
		}
	}

	principal, err := m.authenticator.Authenticate(c.Context(), verified.Claims)
	if err != nil {
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, principal)
	c.Locals(bearerTokenKey, &BearerToken{Raw: tokenStr, ExpiresAt: verified.ExpiresAt})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated principal.
func PrincipalFromContext(c *fiber.Ctx) (*domain.Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*domain.Principal)
	return principal, ok
}

// TokenFromContext retrieves the raw bearer token of the request.
func TokenFromContext(c *fiber.Ctx) (*BearerToken, bool) {
	val := c.Locals(bearerTokenKey)
	if val == nil {
		return nil, false
	}
	token, ok := val.(*BearerToken)
	return token, ok
}
