package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stafflow-io/staffing-backend/internal/staffing/domain"
)

// ProjectRepo persists projects in postgres.
type ProjectRepo struct {
	db *pgxpool.Pool
}

func NewProjectRepo(db *pgxpool.Pool) *ProjectRepo {
	return &ProjectRepo{db: db}
}

func (r *ProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	const q = `
insert into projects (id, client_id, name, status, created_at, updated_at)
values ($1, $2, $3, $4, $5, $6);
`
	_, err := r.db.Exec(ctx, q, p.ID, p.ClientID, p.Name, string(p.Status), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	const q = `select id, client_id, name, status, created_at, updated_at from projects where id = $1;`

	var p domain.Project
	var status string
	err := r.db.QueryRow(ctx, q, id).Scan(&p.ID, &p.ClientID, &p.Name, &status, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	p.Status = domain.Status(status)
	return &p, nil
}

// List returns active projects, narrowed to one client when clientID is set.
func (r *ProjectRepo) List(ctx context.Context, clientID string) ([]domain.Project, error) {
	q := `
select id, client_id, name, status, created_at, updated_at
from projects
where status = $1
order by created_at desc;
`
	args := []any{string(domain.StatusActive)}
	if clientID != "" {
		q = `
select id, client_id, name, status, created_at, updated_at
from projects
where status = $1 and client_id = $2
order by created_at desc;
`
		args = append(args, clientID)
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		var p domain.Project
		var status string
		if err := rows.Scan(&p.ID, &p.ClientID, &p.Name, &status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		p.Status = domain.Status(status)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	const q = `
update projects
set name = $2, status = $3, updated_at = $4
where id = $1;
`
	ct, err := r.db.Exec(ctx, q, p.ID, p.Name, string(p.Status), p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", p.ID, domain.ErrNotFound)
	}
	return nil
}
