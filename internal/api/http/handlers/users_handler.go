package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/incident-service/internal/api/dto"
	"github.com/spec-kit/incident-service/internal/domain"
	"github.com/spec-kit/incident-service/internal/service"
	apperrors "github.com/spec-kit/incident-service/pkg/util"
)

// UsersHandler exposes user record endpoints.
type UsersHandler struct {
	service *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{service: userService}
}

// List GET /api/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.service.GetAll(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(userResponses(users))
}

// Get GET /api/users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return apperrors.NewValidationError("invalid user id", nil)
	}
	user, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(userResponse(user))
}

// GetByEmail GET /api/users/email/:email.
func (h *UsersHandler) GetByEmail(c *fiber.Ctx) error {
	user, err := h.service.GetByEmail(c.Context(), c.Params("email"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(userResponse(user))
}

// ListByRole GET /api/users/role/:role.
func (h *UsersHandler) ListByRole(c *fiber.Ctx) error {
	users, err := h.service.ListByRole(c.Context(), c.Params("role"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(userResponses(users))
}

// Create POST /api/users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Email) == "" {
		return apperrors.NewValidationError("email required", nil)
	}

	user, err := h.service.Register(c.Context(), req.Email, req.Name, req.Role)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(userResponse(user))
}

// Register POST /user-registration. The registration entry point takes its
// fields from query parameters.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	email := c.Query("email")
	name := c.Query("name")
	role := c.Query("role")
	if email == "" || name == "" || role == "" {
		return apperrors.NewValidationError("email, name, role required", nil)
	}

	user, err := h.service.Register(c.Context(), email, name, role)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(userResponse(user))
}

// Update PUT /api/users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return apperrors.NewValidationError("invalid user id", nil)
	}
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.service.Update(c.Context(), id, service.UserPatch{
		Name: req.Name,
		Role: req.Role,
	})
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(userResponse(user))
}

// Delete DELETE /api/users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return apperrors.NewValidationError("invalid user id", nil)
	}
	if err := h.service.Delete(c.Context(), id); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	}
}

func userResponses(users []domain.User) []dto.UserResponse {
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, userResponse(&users[i]))
	}
	return items
}
