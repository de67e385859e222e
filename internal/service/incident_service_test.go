package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/incident-service/internal/domain"
	"github.com/spec-kit/incident-service/internal/events"
)

// fakeIncidentRepository keeps incidents in a map and assigns sequential
// ids, mirroring the Postgres implementation's error contract.
type fakeIncidentRepository struct {
	store  map[int64]*domain.Incident
	nextID int64
}

func newFakeIncidentRepository() *fakeIncidentRepository {
	return &fakeIncidentRepository{store: make(map[int64]*domain.Incident), nextID: 1}
}

func (f *fakeIncidentRepository) Create(ctx context.Context, incident *domain.Incident) error {
	incident.ID = f.nextID
	f.nextID++
	stored := *incident
	f.store[incident.ID] = &stored
	return nil
}

func (f *fakeIncidentRepository) Update(ctx context.Context, incident *domain.Incident) error {
	if _, ok := f.store[incident.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *incident
	f.store[incident.ID] = &stored
	return nil
}

func (f *fakeIncidentRepository) GetByID(ctx context.Context, id int64) (*domain.Incident, error) {
	incident, ok := f.store[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *incident
	return &copied, nil
}

func (f *fakeIncidentRepository) ListAll(ctx context.Context) ([]domain.Incident, error) {
	return f.filter(func(*domain.Incident) bool { return true }), nil
}

func (f *fakeIncidentRepository) ListByStatus(ctx context.Context, status domain.IncidentStatus) ([]domain.Incident, error) {
	return f.filter(func(i *domain.Incident) bool { return i.Status == status }), nil
}

func (f *fakeIncidentRepository) ListByPriority(ctx context.Context, priority domain.IncidentPriority) ([]domain.Incident, error) {
	return f.filter(func(i *domain.Incident) bool { return i.Priority == priority }), nil
}

func (f *fakeIncidentRepository) ListByReporter(ctx context.Context, reportedBy string) ([]domain.Incident, error) {
	return f.filter(func(i *domain.Incident) bool { return i.ReportedBy == reportedBy }), nil
}

func (f *fakeIncidentRepository) ListByAssignee(ctx context.Context, assignedTo string) ([]domain.Incident, error) {
	return f.filter(func(i *domain.Incident) bool { return i.AssignedTo == assignedTo }), nil
}

func (f *fakeIncidentRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := f.store[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.store, id)
	return nil
}

func (f *fakeIncidentRepository) filter(keep func(*domain.Incident) bool) []domain.Incident {
	var result []domain.Incident
	for _, incident := range f.store {
		if keep(incident) {
			result = append(result, *incident)
		}
	}
	return result
}

func newIncidentServiceForTest() (*IncidentService, *fakeIncidentRepository, events.Dispatcher) {
	repo := newFakeIncidentRepository()
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewIncidentService(IncidentDependencies{IncidentRepo: repo, Dispatcher: dispatcher})
	return svc, repo, dispatcher
}

func strPtr(s string) *string { return &s }

func statusPtr(s domain.IncidentStatus) *domain.IncidentStatus { return &s }

func prioPtr(p domain.IncidentPriority) *domain.IncidentPriority { return &p }

func TestRegisterDefaults(t *testing.T) {
	svc, _, _ := newIncidentServiceForTest()
	before := time.Now()

	incident, err := svc.Register(context.Background(), "alice@example.com",
		"bob@example.com", "  Printer down  ", "No output on floor 3", "hardware")
	require.NoError(t, err)

	assert.Equal(t, "Printer down", incident.Title)
	assert.Equal(t, domain.IncidentStatusOpen, incident.Status)
	assert.Equal(t, domain.IncidentPriorityNone, incident.Priority)
	assert.Equal(t, "bob@example.com", incident.ReportedBy)
	assert.Nil(t, incident.ResolvedAt)
	assert.NotNil(t, incident.Comments)
	assert.NotNil(t, incident.Attachments)
	assert.False(t, incident.ReportedAt.Before(before))
	assert.False(t, incident.ReportedAt.After(time.Now()))
}

func TestCreateDefaultsPriorityToMedium(t *testing.T) {
	svc, _, _ := newIncidentServiceForTest()

	incident, err := svc.Create(context.Background(), "alice@example.com", IncidentCreateInput{
		Title:       "Disk failure",
		Description: "RAID degraded",
		ReportedBy:  "bob@example.com",
		Category:    "hardware",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.IncidentPriorityMedium, incident.Priority)
	assert.Equal(t, domain.IncidentStatusOpen, incident.Status)
	assert.Nil(t, incident.ResolvedAt)
}

func TestCreateKeepsExplicitPriority(t *testing.T) {
	svc, _, _ := newIncidentServiceForTest()

	incident, err := svc.Create(context.Background(), "alice@example.com", IncidentCreateInput{
		Title:      "Core switch down",
		ReportedBy: "bob@example.com",
		Priority:   domain.IncidentPriorityCritical,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.IncidentPriorityCritical, incident.Priority)
}

func TestUpdatePartialLeavesOtherFields(t *testing.T) {
	svc, _, _ := newIncidentServiceForTest()

	created, err := svc.Create(context.Background(), "alice@example.com", IncidentCreateInput{
		Title:       "Disk failure",
		Description: "RAID degraded",
		ReportedBy:  "bob@example.com",
		Category:    "hardware",
		Comments:    []string{"ticket opened"},
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), "alice@example.com", created.ID, IncidentPatch{
		Priority: prioPtr(domain.IncidentPriorityHigh),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.IncidentPriorityHigh, updated.Priority)
	assert.Equal(t, created.Title, updated.Title)
	assert.Equal(t, created.Description, updated.Description)
	assert.Equal(t, created.Status, updated.Status)
	assert.Equal(t, created.Comments, updated.Comments)
	assert.Nil(t, updated.ResolvedAt)
}

func TestUpdateResolutionStampsResolvedAt(t *testing.T) {
	svc, _, _ := newIncidentServiceForTest()

	created, err := svc.Create(context.Background(), "alice@example.com", IncidentCreateInput{
		Title:      "Disk failure",
		ReportedBy: "bob@example.com",
		Category:   "hardware",
	})
	require.NoError(t, err)

	before := time.Now()
	updated, err := svc.Update(context.Background(), "alice@example.com", created.ID, IncidentPatch{
		Status:     statusPtr(domain.IncidentStatusResolved),
		Resolution: strPtr("replaced disk"),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.IncidentStatusResolved, updated.Status)
	assert.Equal(t, "replaced disk", updated.Resolution)
	require.NotNil(t, updated.ResolvedAt)
	assert.False(t, updated.ResolvedAt.Before(before))
	assert.Equal(t, created.Title, updated.Title)
	assert.Equal(t, created.Category, updated.Category)
}

func TestUpdateResolutionWithoutResolvedStatus(t *testing.T) {
	svc, _, _ := newIncidentServiceForTest()

	created, err := svc.Create(context.Background(), "alice@example.com", IncidentCreateInput{
		Title:      "Disk failure",
		ReportedBy: "bob@example.com",
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), "alice@example.com", created.ID, IncidentPatch{
		Resolution: strPtr("swapped cable"),
	})
	require.NoError(t, err)

	assert.Equal(t, "swapped cable", updated.Resolution)
	assert.Nil(t, updated.ResolvedAt)
}

func TestUpdateReplacesListsWholesale(t *testing.T) {
	svc, _, _ := newIncidentServiceForTest()

	created, err := svc.Create(context.Background(), "alice@example.com", IncidentCreateInput{
		Title:      "Disk failure",
		ReportedBy: "bob@example.com",
		Comments:   []string{"first", "second"},
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), "alice@example.com", created.ID, IncidentPatch{
		Comments: []string{"only"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"only"}, updated.Comments)
	assert.Equal(t, created.Attachments, updated.Attachments)
}

func TestUpdateIsIdempotent(t *testing.T) {
	svc, repo, _ := newIncidentServiceForTest()

	created, err := svc.Create(context.Background(), "alice@example.com", IncidentCreateInput{
		Title:      "Disk failure",
		ReportedBy: "bob@example.com",
	})
	require.NoError(t, err)

	patch := IncidentPatch{
		Status:     statusPtr(domain.IncidentStatusInProgress),
		AssignedTo: strPtr("carol@example.com"),
	}
	first, err := svc.Update(context.Background(), "alice@example.com", created.ID, patch)
	require.NoError(t, err)
	second, err := svc.Update(context.Background(), "alice@example.com", created.ID, patch)
	require.NoError(t, err)

	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.AssignedTo, second.AssignedTo)

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.IncidentStatusInProgress, stored.Status)
}

func TestUpdateMissingIncident(t *testing.T) {
	svc, _, _ := newIncidentServiceForTest()

	_, err := svc.Update(context.Background(), "alice@example.com", 99, IncidentPatch{
		Title: strPtr("ghost"),
	})
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestDeletePublishesEvent(t *testing.T) {
	svc, repo, dispatcher := newIncidentServiceForTest()

	var received []events.Event
	dispatcher.Subscribe(events.EventIncidentDeleted, func(ctx context.Context, event events.Event) error {
		received = append(received, event)
		return nil
	})

	created, err := svc.Create(context.Background(), "alice@example.com", IncidentCreateInput{
		Title:      "Disk failure",
		ReportedBy: "bob@example.com",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "alice@example.com", created.ID))

	_, err = repo.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	require.Len(t, received, 1)
	assert.Equal(t, created.ID, received[0].IncidentID)
	assert.Equal(t, "alice@example.com", received[0].Actor.Email)
	assert.NotEmpty(t, received[0].ID)
	assert.False(t, received[0].Timestamp.IsZero())
}

func TestResolvedEventPublishedOnce(t *testing.T) {
	svc, _, dispatcher := newIncidentServiceForTest()

	var resolved int
	dispatcher.Subscribe(events.EventIncidentResolved, func(ctx context.Context, event events.Event) error {
		resolved++
		return nil
	})

	created, err := svc.Create(context.Background(), "alice@example.com", IncidentCreateInput{
		Title:      "Disk failure",
		ReportedBy: "bob@example.com",
	})
	require.NoError(t, err)

	patch := IncidentPatch{
		Status:     statusPtr(domain.IncidentStatusResolved),
		Resolution: strPtr("replaced disk"),
	}
	_, err = svc.Update(context.Background(), "alice@example.com", created.ID, patch)
	require.NoError(t, err)
	_, err = svc.Update(context.Background(), "alice@example.com", created.ID, patch)
	require.NoError(t, err)

	assert.Equal(t, 1, resolved)
}

func TestListFilters(t *testing.T) {
	svc, _, _ := newIncidentServiceForTest()
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice@example.com", IncidentCreateInput{
		Title:      "Disk failure",
		ReportedBy: "bob@example.com",
		Priority:   domain.IncidentPriorityHigh,
		AssignedTo: "carol@example.com",
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "alice@example.com", IncidentCreateInput{
		Title:      "Slow network",
		ReportedBy: "dave@example.com",
	})
	require.NoError(t, err)

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byPriority, err := svc.ListByPriority(ctx, domain.IncidentPriorityHigh)
	require.NoError(t, err)
	require.Len(t, byPriority, 1)
	assert.Equal(t, "Disk failure", byPriority[0].Title)

	byReporter, err := svc.ListByReporter(ctx, "dave@example.com")
	require.NoError(t, err)
	require.Len(t, byReporter, 1)

	byAssignee, err := svc.ListByAssignee(ctx, "carol@example.com")
	require.NoError(t, err)
	require.Len(t, byAssignee, 1)

	open, err := svc.ListByStatus(ctx, domain.IncidentStatusOpen)
	require.NoError(t, err)
	assert.Len(t, open, 2)
}
