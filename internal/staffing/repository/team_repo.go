package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stafflow-io/staffing-backend/internal/staffing/domain"
)

// TeamRepo persists project teams in postgres.
type TeamRepo struct {
	db *pgxpool.Pool
}

func NewTeamRepo(db *pgxpool.Pool) *TeamRepo {
	return &TeamRepo{db: db}
}

const teamColumns = `id, project_id, name, start_date, end_date, status, created_at, updated_at`

func (r *TeamRepo) Create(ctx context.Context, t *domain.ProjectTeam) error {
	const q = `
insert into project_teams (id, project_id, name, start_date, end_date, status, created_at, updated_at)
values ($1, $2, $3, $4, $5, $6, $7, $8);
`
	_, err := r.db.Exec(ctx, q, t.ID, t.ProjectID, t.Name, t.StartDate, t.EndDate, string(t.Status), t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert team: %w", err)
	}
	return nil
}

func (r *TeamRepo) GetByID(ctx context.Context, id string) (*domain.ProjectTeam, error) {
	q := `select ` + teamColumns + ` from project_teams where id = $1;`
	return r.get(ctx, q, id)
}

// GetByProject returns the project's most recent non-deleted team, or the
// most recent deleted one if none is active. At most one Active team exists
// per project.
func (r *TeamRepo) GetByProject(ctx context.Context, projectID string) (*domain.ProjectTeam, error) {
	q := `
select ` + teamColumns + `
from project_teams
where project_id = $1
order by (status = 'active') desc, created_at desc
limit 1;
`
	return r.get(ctx, q, projectID)
}

func (r *TeamRepo) Update(ctx context.Context, t *domain.ProjectTeam) error {
	const q = `
update project_teams
set name = $2, start_date = $3, end_date = $4, status = $5, updated_at = $6
where id = $1;
`
	ct, err := r.db.Exec(ctx, q, t.ID, t.Name, t.StartDate, t.EndDate, string(t.Status), t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update team: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("project team %s: %w", t.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *TeamRepo) get(ctx context.Context, q string, args ...any) (*domain.ProjectTeam, error) {
	var t domain.ProjectTeam
	var status string
	err := r.db.QueryRow(ctx, q, args...).
		Scan(&t.ID, &t.ProjectID, &t.Name, &t.StartDate, &t.EndDate, &status, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get team: %w", err)
	}
	t.Status = domain.Status(status)
	return &t, nil
}
