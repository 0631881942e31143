package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	staffing "github.com/stafflow-io/staffing-backend/internal/staffing/domain"
	"github.com/stafflow-io/staffing-backend/internal/staffing/schedule"
	"github.com/stafflow-io/staffing-backend/internal/timesheet/domain"
)

// EntryRepository is the persistence contract for timesheet entries.
type EntryRepository interface {
	Create(ctx context.Context, e *domain.Entry) error
	GetByID(ctx context.Context, id string) (*domain.Entry, error)
	ListByConsultant(ctx context.Context, consultantID, from, to string) ([]domain.Entry, error)
	Update(ctx context.Context, e *domain.Entry) error
}

type ConsultantLookup interface {
	GetByID(ctx context.Context, id string) (*staffing.Consultant, error)
}

type TaskLookup interface {
	GetByID(ctx context.Context, id string) (*staffing.Task, error)
}

// TimesheetService handles timesheet entry CRUD: a booking of hours by a
// consultant against a project task on one day.
type TimesheetService struct {
	entries     EntryRepository
	consultants ConsultantLookup
	tasks       TaskLookup
	now         func() time.Time
}

func NewTimesheetService(entries EntryRepository, consultants ConsultantLookup, tasks TaskLookup, now func() time.Time) *TimesheetService {
	if now == nil {
		now = time.Now
	}
	return &TimesheetService{
		entries:     entries,
		consultants: consultants,
		tasks:       tasks,
		now:         now,
	}
}

func (s *TimesheetService) Create(ctx context.Context, req *domain.CreateEntryRequest) (*domain.Entry, error) {
	consultant, err := s.consultants.GetByID(ctx, req.ConsultantID)
	if err != nil {
		return nil, err
	}
	if consultant == nil || consultant.Status != staffing.StatusActive {
		return nil, fmt.Errorf("consultant %s: %w", req.ConsultantID, staffing.ErrNotFound)
	}

	task, err := s.tasks.GetByID(ctx, req.TaskID)
	if err != nil {
		return nil, err
	}
	if task == nil || task.Status != staffing.StatusActive {
		return nil, fmt.Errorf("task %s: %w", req.TaskID, staffing.ErrNotFound)
	}

	workDate, err := parseWorkDate(req.WorkDate)
	if err != nil {
		return nil, err
	}
	if err := validateHours(req.Hours); err != nil {
		return nil, err
	}

	now := s.now()
	e := &domain.Entry{
		ID:           uuid.New().String(),
		ConsultantID: req.ConsultantID,
		TaskID:       req.TaskID,
		WorkDate:     workDate,
		Hours:        req.Hours,
		Note:         req.Note,
		Status:       staffing.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.entries.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *TimesheetService) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	return s.load(ctx, id)
}

// ListByConsultant returns the consultant's entries, optionally bounded by
// from/to dates (inclusive, YYYY-MM-DD).
func (s *TimesheetService) ListByConsultant(ctx context.Context, consultantID, from, to string) ([]domain.Entry, error) {
	consultant, err := s.consultants.GetByID(ctx, consultantID)
	if err != nil {
		return nil, err
	}
	if consultant == nil || consultant.Status != staffing.StatusActive {
		return nil, fmt.Errorf("consultant %s: %w", consultantID, staffing.ErrNotFound)
	}

	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(staffing.DateLayout, d); err != nil {
			return nil, fmt.Errorf("date %q is not a valid date: %w", d, staffing.ErrInvalid)
		}
	}

	return s.entries.ListByConsultant(ctx, consultantID, from, to)
}

func (s *TimesheetService) Update(ctx context.Context, id string, req *domain.UpdateEntryRequest) (*domain.Entry, error) {
	e, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.WorkDate != nil {
		workDate, err := parseWorkDate(*req.WorkDate)
		if err != nil {
			return nil, err
		}
		e.WorkDate = workDate
	}
	if req.Hours != nil {
		if err := validateHours(*req.Hours); err != nil {
			return nil, err
		}
		e.Hours = *req.Hours
	}
	if req.Note != nil {
		e.Note = *req.Note
	}
	e.UpdatedAt = s.now()

	if err := s.entries.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *TimesheetService) Delete(ctx context.Context, id string) (*domain.Entry, error) {
	e, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	e.Status = staffing.StatusDeleted
	e.UpdatedAt = s.now()
	if err := s.entries.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *TimesheetService) load(ctx context.Context, id string) (*domain.Entry, error) {
	e, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil || e.Status != staffing.StatusActive {
		return nil, fmt.Errorf("timesheet entry %s: %w", id, staffing.ErrNotFound)
	}
	return e, nil
}

func parseWorkDate(s string) (time.Time, error) {
	d, err := time.Parse(staffing.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("work date %q is not a valid date: %w", s, staffing.ErrInvalid)
	}
	return schedule.Normalize(d), nil
}

func validateHours(h float64) error {
	if h <= 0 || h > 24 {
		return fmt.Errorf("hours must be between 0 and 24, got %g: %w", h, staffing.ErrInvalid)
	}
	return nil
}
