package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/incident-service/internal/domain"
	"github.com/spec-kit/incident-service/internal/events"
	"github.com/spec-kit/incident-service/internal/repository"
)

// IncidentService coordinates incident workflows.
type IncidentService struct {
	incidents  repository.IncidentRepository
	dispatcher events.Dispatcher
}

// IncidentDependencies bundles collaborators for the incident service.
type IncidentDependencies struct {
	IncidentRepo repository.IncidentRepository
	Dispatcher   events.Dispatcher
}

// IncidentCreateInput describes the JSON creation payload. Status,
// reportedAt and resolvedAt are always forced by the service regardless of
// caller input.
type IncidentCreateInput struct {
	Title       string
	Description string
	ReportedBy  string
	Category    string
	Priority    domain.IncidentPriority
	AssignedTo  string
	Comments    []string
	Attachments []string
}

// IncidentPatch is a partial update: nil fields leave the stored value
// untouched, non-nil fields overwrite it. List fields are replaced
// wholesale, never merged element-wise.
type IncidentPatch struct {
	Title       *string
	Description *string
	Status      *domain.IncidentStatus
	Priority    *domain.IncidentPriority
	Category    *string
	AssignedTo  *string
	Resolution  *string
	Comments    []string
	Attachments []string
}

// NewIncidentService constructs the service.
func NewIncidentService(deps IncidentDependencies) *IncidentService {
	return &IncidentService{
		incidents:  deps.IncidentRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Register creates an incident from the lightweight registration endpoint.
// The stored incident always starts OPEN with reportedAt set server-side;
// this entry point assigns the literal "none" priority.
func (s *IncidentService) Register(ctx context.Context, actor string, reportedBy, title, description, category string) (*domain.Incident, error) {
	incident := &domain.Incident{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		ReportedBy:  reportedBy,
		ReportedAt:  time.Now(),
		Status:      domain.IncidentStatusOpen,
		Priority:    domain.IncidentPriorityNone,
		Category:    category,
		Comments:    []string{},
		Attachments: []string{},
	}

	if err := s.incidents.Create(ctx, incident); err != nil {
		return nil, err
	}
	s.publishRegistered(ctx, actor, incident)
	return incident, nil
}

// Create creates an incident from a full JSON payload. Unspecified
// priority defaults to MEDIUM here, unlike the registration endpoint.
func (s *IncidentService) Create(ctx context.Context, actor string, input IncidentCreateInput) (*domain.Incident, error) {
	incident := &domain.Incident{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		ReportedBy:  input.ReportedBy,
		ReportedAt:  time.Now(),
		Status:      domain.IncidentStatusOpen,
		Priority:    input.Priority,
		Category:    input.Category,
		AssignedTo:  input.AssignedTo,
		Comments:    input.Comments,
		Attachments: input.Attachments,
	}
	if incident.Priority == "" {
		incident.Priority = domain.IncidentPriorityMedium
	}
	if incident.Comments == nil {
		incident.Comments = []string{}
	}
	if incident.Attachments == nil {
		incident.Attachments = []string{}
	}

	if err := s.incidents.Create(ctx, incident); err != nil {
		return nil, err
	}
	s.publishRegistered(ctx, actor, incident)
	return incident, nil
}

// GetAll returns every incident.
func (s *IncidentService) GetAll(ctx context.Context) ([]domain.Incident, error) {
	return s.incidents.ListAll(ctx)
}

// GetByID fetches a single incident.
func (s *IncidentService) GetByID(ctx context.Context, id int64) (*domain.Incident, error) {
	return s.incidents.GetByID(ctx, id)
}

// ListByStatus returns incidents with the given status.
func (s *IncidentService) ListByStatus(ctx context.Context, status domain.IncidentStatus) ([]domain.Incident, error) {
	return s.incidents.ListByStatus(ctx, status)
}

// ListByPriority returns incidents with the given priority.
func (s *IncidentService) ListByPriority(ctx context.Context, priority domain.IncidentPriority) ([]domain.Incident, error) {
	return s.incidents.ListByPriority(ctx, priority)
}

// ListByReporter returns incidents filed by the given reporter.
func (s *IncidentService) ListByReporter(ctx context.Context, reportedBy string) ([]domain.Incident, error) {
	return s.incidents.ListByReporter(ctx, reportedBy)
}

// ListByAssignee returns incidents assigned to the given operator.
func (s *IncidentService) ListByAssignee(ctx context.Context, assignedTo string) ([]domain.Incident, error) {
	return s.incidents.ListByAssignee(ctx, assignedTo)
}

// Update applies a partial update onto the stored incident. When the patch
// carries a resolution and sets status to RESOLVED, resolvedAt is stamped
// as part of the same update. Applying the same patch twice yields the same
// stored state.
func (s *IncidentService) Update(ctx context.Context, actor string, id int64, patch IncidentPatch) (*domain.Incident, error) {
	incident, err := s.incidents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := incident.Status
	changed := applyIncidentPatch(incident, patch)

	if patch.Resolution != nil && patch.Status != nil && *patch.Status == domain.IncidentStatusResolved {
		now := time.Now()
		incident.ResolvedAt = &now
	}

	if err := s.incidents.Update(ctx, incident); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:       events.EventIncidentUpdated,
		IncidentID: incident.ID,
		Actor:      events.Actor{Email: actor},
		Payload: events.IncidentUpdatedPayload{
			OldStatus: oldStatus,
			NewStatus: incident.Status,
			Fields:    changed,
		},
	})
	if oldStatus != domain.IncidentStatusResolved && incident.Status == domain.IncidentStatusResolved && incident.ResolvedAt != nil {
		s.publishEvent(ctx, events.Event{
			Type:       events.EventIncidentResolved,
			IncidentID: incident.ID,
			Actor:      events.Actor{Email: actor},
			Payload: events.IncidentResolvedPayload{
				Resolution: incident.Resolution,
				ResolvedAt: *incident.ResolvedAt,
			},
		})
	}
	return incident, nil
}

// Delete removes an incident.
func (s *IncidentService) Delete(ctx context.Context, actor string, id int64) error {
	incident, err := s.incidents.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.incidents.Delete(ctx, id); err != nil {
		return err
	}
	s.publishEvent(ctx, events.Event{
		Type:       events.EventIncidentDeleted,
		IncidentID: id,
		Actor:      events.Actor{Email: actor},
		Payload:    events.IncidentDeletedPayload{Title: incident.Title},
	})
	return nil
}

func applyIncidentPatch(incident *domain.Incident, patch IncidentPatch) []string {
	var changed []string
	if patch.Title != nil {
		incident.Title = *patch.Title
		changed = append(changed, "title")
	}
	if patch.Description != nil {
		incident.Description = *patch.Description
		changed = append(changed, "description")
	}
	if patch.Status != nil {
		incident.Status = *patch.Status
		changed = append(changed, "status")
	}
	if patch.Priority != nil {
		incident.Priority = *patch.Priority
		changed = append(changed, "priority")
	}
	if patch.Category != nil {
		incident.Category = *patch.Category
		changed = append(changed, "category")
	}
	if patch.AssignedTo != nil {
		incident.AssignedTo = *patch.AssignedTo
		changed = append(changed, "assignedTo")
	}
	if patch.Resolution != nil {
		incident.Resolution = *patch.Resolution
		changed = append(changed, "resolution")
	}
	if patch.Comments != nil {
		incident.Comments = patch.Comments
		changed = append(changed, "comments")
	}
	if patch.Attachments != nil {
		incident.Attachments = patch.Attachments
		changed = append(changed, "attachments")
	}
	return changed
}

func (s *IncidentService) publishRegistered(ctx context.Context, actor string, incident *domain.Incident) {
	s.publishEvent(ctx, events.Event{
		Type:       events.EventIncidentRegistered,
		IncidentID: incident.ID,
		Actor:      events.Actor{Email: actor},
		Payload: events.IncidentRegisteredPayload{
			Title:      incident.Title,
			Category:   incident.Category,
			Priority:   incident.Priority,
			ReportedBy: incident.ReportedBy,
		},
	})
}

func (s *IncidentService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
