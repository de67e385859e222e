package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/incident-service/internal/api/dto"
	"github.com/spec-kit/incident-service/internal/auth"
	"github.com/spec-kit/incident-service/internal/domain"
	"github.com/spec-kit/incident-service/internal/service"
	apperrors "github.com/spec-kit/incident-service/pkg/util"
)

// IncidentsHandler manages incident endpoints.
type IncidentsHandler struct {
	service *service.IncidentService
}

// NewIncidentsHandler constructs handler.
func NewIncidentsHandler(incidentService *service.IncidentService) *IncidentsHandler {
	return &IncidentsHandler{service: incidentService}
}

// List GET /api/incidents.
func (h *IncidentsHandler) List(c *fiber.Ctx) error {
	incidents, err := h.service.GetAll(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(incidentResponses(incidents))
}

// Get GET /api/incidents/:id.
func (h *IncidentsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return apperrors.NewValidationError("invalid incident id", nil)
	}
	incident, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(incidentResponse(incident))
}

// ListByStatus GET /api/incidents/status/:status.
func (h *IncidentsHandler) ListByStatus(c *fiber.Ctx) error {
	status := domain.IncidentStatus(c.Params("status"))
	incidents, err := h.service.ListByStatus(c.Context(), status)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(incidentResponses(incidents))
}

// ListByPriority GET /api/incidents/priority/:priority.
func (h *IncidentsHandler) ListByPriority(c *fiber.Ctx) error {
	priority := domain.IncidentPriority(c.Params("priority"))
	incidents, err := h.service.ListByPriority(c.Context(), priority)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(incidentResponses(incidents))
}

// ListByReporter GET /api/incidents/reporter/:reportedBy.
func (h *IncidentsHandler) ListByReporter(c *fiber.Ctx) error {
	incidents, err := h.service.ListByReporter(c.Context(), c.Params("reportedBy"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(incidentResponses(incidents))
}

// ListByAssignee GET /api/incidents/assigned/:assignedTo.
func (h *IncidentsHandler) ListByAssignee(c *fiber.Ctx) error {
	incidents, err := h.service.ListByAssignee(c.Context(), c.Params("assignedTo"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(incidentResponses(incidents))
}

// Create POST /api/incidents.
func (h *IncidentsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateIncidentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		return apperrors.NewValidationError("title and description required", nil)
	}
	if req.ReportedBy == "" {
		req.ReportedBy = principal.Email
	}

	incident, err := h.service.Create(c.Context(), principal.Email, service.IncidentCreateInput{
		Title:       req.Title,
		Description: req.Description,
		ReportedBy:  req.ReportedBy,
		Category:    req.Category,
		Priority:    req.Priority,
		AssignedTo:  req.AssignedTo,
		Comments:    req.Comments,
		Attachments: req.Attachments,
	})
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(incidentResponse(incident))
}

// Register POST /incident. The registration entry point takes its fields
// from query parameters and forces the "none" priority.
func (h *IncidentsHandler) Register(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	reportedBy := c.Query("reportedBy")
	title := c.Query("title")
	description := c.Query("description")
	category := c.Query("category")
	if reportedBy == "" || title == "" || description == "" || category == "" {
		return apperrors.NewValidationError("reportedBy, title, description, category required", nil)
	}

	incident, err := h.service.Register(c.Context(), principal.Email, reportedBy, title, description, category)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(incidentResponse(incident))
}

// Update PUT /api/incidents/:id.
func (h *IncidentsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := parseID(c.Params("id"))
	if err != nil {
		return apperrors.NewValidationError("invalid incident id", nil)
	}
	var req dto.UpdateIncidentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	incident, err := h.service.Update(c.Context(), principal.Email, id, service.IncidentPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Category:    req.Category,
		AssignedTo:  req.AssignedTo,
		Resolution:  req.Resolution,
		Comments:    req.Comments,
		Attachments: req.Attachments,
	})
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(incidentResponse(incident))
}

// Delete DELETE /api/incidents/:id.
func (h *IncidentsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := parseID(c.Params("id"))
	if err != nil {
		return apperrors.NewValidationError("invalid incident id", nil)
	}
	if err := h.service.Delete(c.Context(), principal.Email, id); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}

func incidentResponse(incident *domain.Incident) dto.IncidentResponse {
	comments := incident.Comments
	if comments == nil {
		comments = []string{}
	}
	attachments := incident.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	return dto.IncidentResponse{
		ID:          incident.ID,
		Title:       incident.Title,
		Description: incident.Description,
		ReportedBy:  incident.ReportedBy,
		ReportedAt:  incident.ReportedAt,
		Status:      incident.Status,
		Priority:    incident.Priority,
		Category:    incident.Category,
		AssignedTo:  incident.AssignedTo,
		Resolution:  incident.Resolution,
		ResolvedAt:  incident.ResolvedAt,
		Comments:    comments,
		Attachments: attachments,
	}
}

func incidentResponses(incidents []domain.Incident) []dto.IncidentResponse {
	items := make([]dto.IncidentResponse, 0, len(incidents))
	for i := range incidents {
		items = append(items, incidentResponse(&incidents[i]))
	}
	return items
}
