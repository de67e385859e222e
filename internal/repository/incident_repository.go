package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/incident-service/internal/domain"
)

const incidentColumns = `id, title, description, reported_by, reported_at, status, priority,
               category, assigned_to, resolution, resolved_at, comments, attachments`

// IncidentRepository encapsulates incident persistence.
type IncidentRepository interface {
	Create(ctx context.Context, incident *domain.Incident) error
	Update(ctx context.Context, incident *domain.Incident) error
	GetByID(ctx context.Context, id int64) (*domain.Incident, error)
	ListAll(ctx context.Context) ([]domain.Incident, error)
	ListByStatus(ctx context.Context, status domain.IncidentStatus) ([]domain.Incident, error)
	ListByPriority(ctx context.Context, priority domain.IncidentPriority) ([]domain.Incident, error)
	ListByReporter(ctx context.Context, reportedBy string) ([]domain.Incident, error)
	ListByAssignee(ctx context.Context, assignedTo string) ([]domain.Incident, error)
	Delete(ctx context.Context, id int64) error
}

type incidentRepository struct {
	pool *pgxpool.Pool
}

// NewIncidentRepository instantiates repository.
func NewIncidentRepository(pool *pgxpool.Pool) IncidentRepository {
	return &incidentRepository{pool: pool}
}

func (r *incidentRepository) Create(ctx context.Context, incident *domain.Incident) error {
	const query = `
        INSERT INTO incidents (title, description, reported_by, reported_at, status, priority,
                               category, assigned_to, resolution, resolved_at, comments, attachments)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		incident.Title,
		incident.Description,
		incident.ReportedBy,
		incident.ReportedAt,
		incident.Status,
		incident.Priority,
		incident.Category,
		incident.AssignedTo,
		incident.Resolution,
		incident.ResolvedAt,
		incident.Comments,
		incident.Attachments,
	).Scan(&incident.ID)
}

func (r *incidentRepository) Update(ctx context.Context, incident *domain.Incident) error {
	const query = `
        UPDATE incidents SET title=$1, description=$2, reported_by=$3, status=$4, priority=$5,
            category=$6, assigned_to=$7, resolution=$8, resolved_at=$9, comments=$10, attachments=$11
        WHERE id=$12`
	cmd, err := r.pool.Exec(ctx, query,
		incident.Title,
		incident.Description,
		incident.ReportedBy,
		incident.Status,
		incident.Priority,
		incident.Category,
		incident.AssignedTo,
		incident.Resolution,
		incident.ResolvedAt,
		incident.Comments,
		incident.Attachments,
		incident.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *incidentRepository) GetByID(ctx context.Context, id int64) (*domain.Incident, error) {
	query := fmt.Sprintf(`SELECT %s FROM incidents WHERE id=$1`, incidentColumns)

	var incident domain.Incident
	if err := r.pool.QueryRow(ctx, query, id).Scan(incidentFields(&incident)...); err != nil {
		return nil, err
	}
	return &incident, nil
}

func (r *incidentRepository) ListAll(ctx context.Context) ([]domain.Incident, error) {
	query := fmt.Sprintf(`SELECT %s FROM incidents ORDER BY reported_at DESC`, incidentColumns)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIncidents(rows)
}

func (r *incidentRepository) ListByStatus(ctx context.Context, status domain.IncidentStatus) ([]domain.Incident, error) {
	return r.listWhere(ctx, "status", status)
}

func (r *incidentRepository) ListByPriority(ctx context.Context, priority domain.IncidentPriority) ([]domain.Incident, error) {
	return r.listWhere(ctx, "priority", priority)
}

func (r *incidentRepository) ListByReporter(ctx context.Context, reportedBy string) ([]domain.Incident, error) {
	return r.listWhere(ctx, "reported_by", reportedBy)
}

func (r *incidentRepository) ListByAssignee(ctx context.Context, assignedTo string) ([]domain.Incident, error) {
	return r.listWhere(ctx, "assigned_to", assignedTo)
}

func (r *incidentRepository) listWhere(ctx context.Context, column string, value any) ([]domain.Incident, error) {
	query := fmt.Sprintf(`SELECT %s FROM incidents WHERE %s=$1 ORDER BY reported_at DESC`,
		incidentColumns, column)
	rows, err := r.pool.Query(ctx, query, value)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIncidents(rows)
}

func (r *incidentRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM incidents WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func incidentFields(incident *domain.Incident) []any {
	return []any{
		&incident.ID,
		&incident.Title,
		&incident.Description,
		&incident.ReportedBy,
		&incident.ReportedAt,
		&incident.Status,
		&incident.Priority,
		&incident.Category,
		&incident.AssignedTo,
		&incident.Resolution,
		&incident.ResolvedAt,
		&incident.Comments,
		&incident.Attachments,
	}
}

func scanIncidents(rows pgx.Rows) ([]domain.Incident, error) {
	var result []domain.Incident
	for rows.Next() {
		var incident domain.Incident
		if err := rows.Scan(incidentFields(&incident)...); err != nil {
			return nil, err
		}
		result = append(result, incident)
	}
	return result, rows.Err()
}
