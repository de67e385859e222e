package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/incident-service/internal/api/dto"
	"github.com/spec-kit/incident-service/internal/auth"
	apperrors "github.com/spec-kit/incident-service/pkg/util"
)

// AuthHandler exposes endpoints about the authenticated caller.
type AuthHandler struct {
	denylist *auth.TokenDenylist
}

// NewAuthHandler constructs handler.
func NewAuthHandler(denylist *auth.TokenDenylist) *AuthHandler {
	return &AuthHandler{denylist: denylist}
}

// CurrentUser GET /api/auth/user echoes the resolved principal.
func (h *AuthHandler) CurrentUser(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(dto.PrincipalResponse{
		Email: principal.Email,
		Name:  principal.Name,
		Roles: principal.Roles,
	})
}

// Logout POST /api/auth/logout revokes the presented token until it
// expires on its own.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token, ok := auth.TokenFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.denylist.Revoke(c.Context(), token.Raw, token.ExpiresAt); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"message": "logged out"})
}
