package domain

import "time"

// IncidentStatus enumerates lifecycle states for incidents.
type IncidentStatus string

const (
	IncidentStatusOpen       IncidentStatus = "OPEN"
	IncidentStatusInProgress IncidentStatus = "IN_PROGRESS"
	IncidentStatusResolved   IncidentStatus = "RESOLVED"
	IncidentStatusClosed     IncidentStatus = "CLOSED"
)

// IncidentPriority enumerates urgency levels.
type IncidentPriority string

const (
	// IncidentPriorityNone is assigned by the registration endpoint when the
	// reporter supplies no priority.
	IncidentPriorityNone     IncidentPriority = "none"
	IncidentPriorityLow      IncidentPriority = "LOW"
	IncidentPriorityMedium   IncidentPriority = "MEDIUM"
	IncidentPriorityHigh     IncidentPriority = "HIGH"
	IncidentPriorityCritical IncidentPriority = "CRITICAL"
)

// Incident is the aggregate for reported incidents.
type Incident struct {
	ID          int64
	Title       string
	Description string
	ReportedBy  string
	ReportedAt  time.Time
	Status      IncidentStatus
	Priority    IncidentPriority
	Category    string
	AssignedTo  string
	Resolution  string
	ResolvedAt  *time.Time
	Comments    []string
	Attachments []string
}
