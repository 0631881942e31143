package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stafflow-io/staffing-backend/internal/staffing/domain"
)

// AssignmentRepo persists consultant assignments in postgres.
type AssignmentRepo struct {
	db *pgxpool.Pool
}

func NewAssignmentRepo(db *pgxpool.Pool) *AssignmentRepo {
	return &AssignmentRepo{db: db}
}

const assignmentColumns = `id, consultant_id, team_id, role_id, dedication, start_date, end_date, status, created_at, updated_at`

func (r *AssignmentRepo) Create(ctx context.Context, a *domain.Assignment) error {
	const q = `
insert into consultant_assignments (id, consultant_id, team_id, role_id, dedication, start_date, end_date, status, created_at, updated_at)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
`
	_, err := r.db.Exec(ctx, q,
		a.ID, a.ConsultantID, a.TeamID, a.RoleID, a.Dedication,
		a.StartDate, a.EndDate, string(a.Status), a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert assignment: %w", err)
	}
	return nil
}

func (r *AssignmentRepo) GetByID(ctx context.Context, id string) (*domain.Assignment, error) {
	q := `select ` + assignmentColumns + ` from consultant_assignments where id = $1;`

	a, err := scanAssignment(r.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get assignment: %w", err)
	}
	return a, nil
}

func (r *AssignmentRepo) ListByTeam(ctx context.Context, teamID string) ([]domain.Assignment, error) {
	q := `
select ` + assignmentColumns + `
from consultant_assignments
where team_id = $1 and status = $2
order by start_date asc;
`
	return r.list(ctx, q, teamID, string(domain.StatusActive))
}

func (r *AssignmentRepo) ListByConsultant(ctx context.Context, consultantID string) ([]domain.Assignment, error) {
	q := `
select ` + assignmentColumns + `
from consultant_assignments
where consultant_id = $1 and status = $2
order by start_date asc;
`
	return r.list(ctx, q, consultantID, string(domain.StatusActive))
}

func (r *AssignmentRepo) Update(ctx context.Context, a *domain.Assignment) error {
	const q = `
update consultant_assignments
set role_id = $2, dedication = $3, start_date = $4, end_date = $5, status = $6, updated_at = $7
where id = $1;
`
	ct, err := r.db.Exec(ctx, q, a.ID, a.RoleID, a.Dedication, a.StartDate, a.EndDate, string(a.Status), a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update assignment: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("assignment %s: %w", a.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *AssignmentRepo) DeleteByTeam(ctx context.Context, teamID string) error {
	const q = `
update consultant_assignments
set status = $3, updated_at = now()
where team_id = $1 and status = $2;
`
	_, err := r.db.Exec(ctx, q, teamID, string(domain.StatusActive), string(domain.StatusDeleted))
	if err != nil {
		return fmt.Errorf("delete assignments by team: %w", err)
	}
	return nil
}

// WithLock runs fn while a transaction holds pg_advisory_xact_lock on the
// hashed key. Competing callers for the same key block until the lock
// transaction commits, which happens only after fn's writes are committed,
// so validate-then-write sequences are serialized per key.
func (r *AssignmentRepo) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin lock tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `select pg_advisory_xact_lock(hashtext($1));`, key); err != nil {
		return fmt.Errorf("acquire advisory lock: %w", err)
	}

	if err := fn(ctx); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *AssignmentRepo) list(ctx context.Context, q string, args ...any) ([]domain.Assignment, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Assignment, 0, 16)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func scanAssignment(row pgx.Row) (*domain.Assignment, error) {
	var a domain.Assignment
	var status string
	err := row.Scan(&a.ID, &a.ConsultantID, &a.TeamID, &a.RoleID, &a.Dedication,
		&a.StartDate, &a.EndDate, &status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.Status = domain.Status(status)
	return &a, nil
}
