package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	staffing "github.com/stafflow-io/staffing-backend/internal/staffing/domain"
	"github.com/stafflow-io/staffing-backend/internal/timesheet/domain"
)

// EntryRepo persists timesheet entries through database/sql (lib/pq driver).
type EntryRepo struct {
	db *sql.DB
}

func NewEntryRepo(db *sql.DB) *EntryRepo {
	return &EntryRepo{db: db}
}

const entryColumns = `id, consultant_id, task_id, work_date, hours, note, status, created_at, updated_at`

func (r *EntryRepo) Create(ctx context.Context, e *domain.Entry) error {
	const q = `
INSERT INTO timesheet_entries (id, consultant_id, task_id, work_date, hours, note, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, q,
		e.ID, e.ConsultantID, e.TaskID, e.WorkDate, e.Hours, e.Note, string(e.Status), e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert timesheet entry: %w", err)
	}
	return nil
}

func (r *EntryRepo) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	q := `SELECT ` + entryColumns + ` FROM timesheet_entries WHERE id = $1`

	e, err := scanEntry(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get timesheet entry: %w", err)
	}
	return e, nil
}

// ListByConsultant returns the consultant's active entries, optionally
// bounded to [from, to] (either may be empty).
func (r *EntryRepo) ListByConsultant(ctx context.Context, consultantID, from, to string) ([]domain.Entry, error) {
	q := `
SELECT ` + entryColumns + `
FROM timesheet_entries
WHERE consultant_id = $1 AND status = $2`
	args := []any{consultantID, string(staffing.StatusActive)}

	if from != "" {
		args = append(args, from)
		q += fmt.Sprintf(" AND work_date >= $%d", len(args))
	}
	if to != "" {
		args = append(args, to)
		q += fmt.Sprintf(" AND work_date <= $%d", len(args))
	}
	q += " ORDER BY work_date ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list timesheet entries: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Entry, 0, 16)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan timesheet entry: %w", err)
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (r *EntryRepo) Update(ctx context.Context, e *domain.Entry) error {
	const q = `
UPDATE timesheet_entries
SET work_date = $2, hours = $3, note = $4, status = $5, updated_at = $6
WHERE id = $1`

	res, err := r.db.ExecContext(ctx, q, e.ID, e.WorkDate, e.Hours, e.Note, string(e.Status), e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update timesheet entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("timesheet entry %s: %w", e.ID, staffing.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*domain.Entry, error) {
	var e domain.Entry
	var status string
	err := row.Scan(&e.ID, &e.ConsultantID, &e.TaskID, &e.WorkDate, &e.Hours, &e.Note, &status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.Status = staffing.Status(status)
	return &e, nil
}
