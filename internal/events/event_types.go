package events

import (
	"time"

	"github.com/spec-kit/incident-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventIncidentRegistered EventType = "incident_registered"
	EventIncidentUpdated    EventType = "incident_updated"
	EventIncidentResolved   EventType = "incident_resolved"
	EventIncidentDeleted    EventType = "incident_deleted"
)

// Actor identifies who triggered an event.
type Actor struct {
	Email string `json:"email"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	IncidentID int64       `json:"incident_id"`
	Actor      Actor       `json:"actor"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// IncidentRegisteredPayload payload.
type IncidentRegisteredPayload struct {
	Title      string                  `json:"title"`
	Category   string                  `json:"category"`
	Priority   domain.IncidentPriority `json:"priority"`
	ReportedBy string                  `json:"reportedBy"`
}

// IncidentUpdatedPayload payload.
type IncidentUpdatedPayload struct {
	OldStatus domain.IncidentStatus `json:"oldStatus"`
	NewStatus domain.IncidentStatus `json:"newStatus"`
	Fields    []string              `json:"fields"`
}

// IncidentResolvedPayload payload.
type IncidentResolvedPayload struct {
	Resolution string    `json:"resolution"`
	ResolvedAt time.Time `json:"resolvedAt"`
}

// IncidentDeletedPayload payload.
type IncidentDeletedPayload struct {
	Title string `json:"title"`
}
