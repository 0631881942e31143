package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stafflow-io/staffing-backend/internal/staffing/domain"
)

// TaskRepo persists project tasks in postgres.
type TaskRepo struct {
	db *pgxpool.Pool
}

func NewTaskRepo(db *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{db: db}
}

func (r *TaskRepo) Create(ctx context.Context, t *domain.Task) error {
	const q = `
insert into tasks (id, project_id, name, status, created_at, updated_at)
values ($1, $2, $3, $4, $5, $6);
`
	_, err := r.db.Exec(ctx, q, t.ID, t.ProjectID, t.Name, string(t.Status), t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *TaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	const q = `select id, project_id, name, status, created_at, updated_at from tasks where id = $1;`

	var t domain.Task
	var status string
	err := r.db.QueryRow(ctx, q, id).Scan(&t.ID, &t.ProjectID, &t.Name, &status, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	t.Status = domain.Status(status)
	return &t, nil
}

func (r *TaskRepo) ListByProject(ctx context.Context, projectID string) ([]domain.Task, error) {
	const q = `
select id, project_id, name, status, created_at, updated_at
from tasks
where project_id = $1 and status = $2
order by created_at asc;
`
	rows, err := r.db.Query(ctx, q, projectID, string(domain.StatusActive))
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Task, 0, 16)
	for rows.Next() {
		var t domain.Task
		var status string
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Name, &status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		t.Status = domain.Status(status)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TaskRepo) Update(ctx context.Context, t *domain.Task) error {
	const q = `
update tasks
set name = $2, status = $3, updated_at = $4
where id = $1;
`
	ct, err := r.db.Exec(ctx, q, t.ID, t.Name, string(t.Status), t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("task %s: %w", t.ID, domain.ErrNotFound)
	}
	return nil
}
