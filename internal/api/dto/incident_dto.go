package dto

import (
	"time"

	"github.com/spec-kit/incident-service/internal/domain"
)

// CreateIncidentRequest payload for POST /api/incidents. Status and
// timestamps supplied here are ignored; the service forces them.
type CreateIncidentRequest struct {
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	ReportedBy  string                  `json:"reportedBy"`
	Category    string                  `json:"category"`
	Priority    domain.IncidentPriority `json:"priority"`
	AssignedTo  string                  `json:"assignedTo"`
	Comments    []string                `json:"comments"`
	Attachments []string                `json:"attachments"`
}

// UpdateIncidentRequest is the partial-update payload: absent fields leave
// the stored value untouched, present lists are replaced wholesale.
type UpdateIncidentRequest struct {
	Title       *string                  `json:"title"`
	Description *string                  `json:"description"`
	Status      *domain.IncidentStatus   `json:"status"`
	Priority    *domain.IncidentPriority `json:"priority"`
	Category    *string                  `json:"category"`
	AssignedTo  *string                  `json:"assignedTo"`
	Resolution  *string                  `json:"resolution"`
	Comments    []string                 `json:"comments"`
	Attachments []string                 `json:"attachments"`
}

// IncidentResponse mirrors the stored incident; timestamps render as
// ISO-8601.
type IncidentResponse struct {
	ID          int64                   `json:"id"`
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	ReportedBy  string                  `json:"reportedBy"`
	ReportedAt  time.Time               `json:"reportedAt"`
	Status      domain.IncidentStatus   `json:"status"`
	Priority    domain.IncidentPriority `json:"priority"`
	Category    string                  `json:"category"`
	AssignedTo  string                  `json:"assignedTo,omitempty"`
	Resolution  string                  `json:"resolution,omitempty"`
	ResolvedAt  *time.Time              `json:"resolvedAt,omitempty"`
	Comments    []string                `json:"comments"`
	Attachments []string                `json:"attachments"`
}
