package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stafflow-io/staffing-backend/internal/staffing/domain"
)

// ClientRepo persists clients in postgres.
type ClientRepo struct {
	db *pgxpool.Pool
}

func NewClientRepo(db *pgxpool.Pool) *ClientRepo {
	return &ClientRepo{db: db}
}

func (r *ClientRepo) Create(ctx context.Context, c *domain.Client) error {
	const q = `
insert into clients (id, name, email, status, created_at, updated_at)
values ($1, $2, $3, $4, $5, $6);
`
	_, err := r.db.Exec(ctx, q, c.ID, c.Name, c.Email, string(c.Status), c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (r *ClientRepo) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	const q = `select id, name, email, status, created_at, updated_at from clients where id = $1;`

	var c domain.Client
	var status string
	err := r.db.QueryRow(ctx, q, id).Scan(&c.ID, &c.Name, &c.Email, &status, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}
	c.Status = domain.Status(status)
	return &c, nil
}

func (r *ClientRepo) List(ctx context.Context) ([]domain.Client, error) {
	const q = `
select id, name, email, status, created_at, updated_at
from clients
where status = $1
order by name asc;
`
	rows, err := r.db.Query(ctx, q, string(domain.StatusActive))
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Client, 0, 16)
	for rows.Next() {
		var c domain.Client
		var status string
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		c.Status = domain.Status(status)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ClientRepo) Update(ctx context.Context, c *domain.Client) error {
	const q = `
update clients
set name = $2, email = $3, status = $4, updated_at = $5
where id = $1;
`
	ct, err := r.db.Exec(ctx, q, c.ID, c.Name, c.Email, string(c.Status), c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("client %s: %w", c.ID, domain.ErrNotFound)
	}
	return nil
}
