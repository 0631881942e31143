package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stafflow-io/staffing-backend/internal/staffing/domain"
)

// ConsultantRepo persists consultants in postgres.
type ConsultantRepo struct {
	db *pgxpool.Pool
}

func NewConsultantRepo(db *pgxpool.Pool) *ConsultantRepo {
	return &ConsultantRepo{db: db}
}

const consultantColumns = `id, first_name, last_name, email, status, created_at, updated_at`

func (r *ConsultantRepo) Create(ctx context.Context, c *domain.Consultant) error {
	const q = `
insert into consultants (id, first_name, last_name, email, status, created_at, updated_at)
values ($1, $2, $3, $4, $5, $6, $7);
`
	_, err := r.db.Exec(ctx, q, c.ID, c.FirstName, c.LastName, c.Email, string(c.Status), c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert consultant: %w", err)
	}
	return nil
}

func (r *ConsultantRepo) GetByID(ctx context.Context, id string) (*domain.Consultant, error) {
	q := `select ` + consultantColumns + ` from consultants where id = $1;`

	var c domain.Consultant
	var status string
	err := r.db.QueryRow(ctx, q, id).
		Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &status, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get consultant: %w", err)
	}
	c.Status = domain.Status(status)
	return &c, nil
}

func (r *ConsultantRepo) List(ctx context.Context) ([]domain.Consultant, error) {
	q := `
select ` + consultantColumns + `
from consultants
where status = $1
order by last_name asc, first_name asc;
`
	rows, err := r.db.Query(ctx, q, string(domain.StatusActive))
	if err != nil {
		return nil, fmt.Errorf("list consultants: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Consultant, 0, 16)
	for rows.Next() {
		var c domain.Consultant
		var status string
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan consultant: %w", err)
		}
		c.Status = domain.Status(status)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ConsultantRepo) Update(ctx context.Context, c *domain.Consultant) error {
	const q = `
update consultants
set first_name = $2, last_name = $3, email = $4, status = $5, updated_at = $6
where id = $1;
`
	ct, err := r.db.Exec(ctx, q, c.ID, c.FirstName, c.LastName, c.Email, string(c.Status), c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update consultant: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("consultant %s: %w", c.ID, domain.ErrNotFound)
	}
	return nil
}
