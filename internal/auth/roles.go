package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/incident-service/pkg/util"
)

// RequireAuthenticated ensures a principal was attached to the request.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}

// RequireRole allows the request only when the principal holds the
// authority string verbatim (e.g. ROLE_ADMIN).
func RequireRole(authority string) fiber.Handler {
	return RequireAnyRole(authority)
}

// RequireAnyRole allows the request when the principal holds any of the
// given authority strings.
func RequireAnyRole(authorities ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(authorities) == 0 {
			return c.Next()
		}
		for _, authority := range authorities {
			if principal.HasAuthority(authority) {
				return c.Next()
			}
		}
		return apperrors.NewForbidden("insufficient role")
	}
}
