package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stafflow-io/staffing-backend/internal/staffing/domain"
)

// RoleRepo persists staffing roles in postgres.
type RoleRepo struct {
	db *pgxpool.Pool
}

func NewRoleRepo(db *pgxpool.Pool) *RoleRepo {
	return &RoleRepo{db: db}
}

func (r *RoleRepo) Create(ctx context.Context, role *domain.Role) error {
	const q = `
insert into roles (id, name, status, created_at, updated_at)
values ($1, $2, $3, $4, $5);
`
	_, err := r.db.Exec(ctx, q, role.ID, role.Name, string(role.Status), role.CreatedAt, role.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert role: %w", err)
	}
	return nil
}

func (r *RoleRepo) GetByID(ctx context.Context, id string) (*domain.Role, error) {
	const q = `select id, name, status, created_at, updated_at from roles where id = $1;`

	var role domain.Role
	var status string
	err := r.db.QueryRow(ctx, q, id).Scan(&role.ID, &role.Name, &status, &role.CreatedAt, &role.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get role: %w", err)
	}
	role.Status = domain.Status(status)
	return &role, nil
}

// Exists reports whether the role exists and is Active.
func (r *RoleRepo) Exists(ctx context.Context, id string) (bool, error) {
	const q = `select exists(select 1 from roles where id = $1 and status = $2);`

	var ok bool
	if err := r.db.QueryRow(ctx, q, id, string(domain.StatusActive)).Scan(&ok); err != nil {
		return false, fmt.Errorf("role exists: %w", err)
	}
	return ok, nil
}

func (r *RoleRepo) List(ctx context.Context) ([]domain.Role, error) {
	const q = `
select id, name, status, created_at, updated_at
from roles
where status = $1
order by name asc;
`
	rows, err := r.db.Query(ctx, q, string(domain.StatusActive))
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Role, 0, 16)
	for rows.Next() {
		var role domain.Role
		var status string
		if err := rows.Scan(&role.ID, &role.Name, &status, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		role.Status = domain.Status(status)
		out = append(out, role)
	}
	return out, rows.Err()
}

func (r *RoleRepo) Update(ctx context.Context, role *domain.Role) error {
	const q = `
update roles
set name = $2, status = $3, updated_at = $4
where id = $1;
`
	ct, err := r.db.Exec(ctx, q, role.ID, role.Name, string(role.Status), role.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("role %s: %w", role.ID, domain.ErrNotFound)
	}
	return nil
}
