package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	staffing "github.com/stafflow-io/staffing-backend/internal/staffing/domain"
	"github.com/stafflow-io/staffing-backend/internal/timesheet/domain"
)

type memEntries struct {
	items map[string]*domain.Entry
}

func newMemEntries() *memEntries {
	return &memEntries{items: map[string]*domain.Entry{}}
}

func (m *memEntries) Create(_ context.Context, e *domain.Entry) error {
	cp := *e
	m.items[e.ID] = &cp
	return nil
}

func (m *memEntries) GetByID(_ context.Context, id string) (*domain.Entry, error) {
	e, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (m *memEntries) ListByConsultant(_ context.Context, consultantID, from, to string) ([]domain.Entry, error) {
	var out []domain.Entry
	for _, e := range m.items {
		if e.Status != staffing.StatusActive || e.ConsultantID != consultantID {
			continue
		}
		day := e.WorkDate.Format(staffing.DateLayout)
		if from != "" && day < from {
			continue
		}
		if to != "" && day > to {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (m *memEntries) Update(_ context.Context, e *domain.Entry) error {
	if _, ok := m.items[e.ID]; !ok {
		return staffing.ErrNotFound
	}
	cp := *e
	m.items[e.ID] = &cp
	return nil
}

type stubConsultants map[string]staffing.Status

func (s stubConsultants) GetByID(_ context.Context, id string) (*staffing.Consultant, error) {
	st, ok := s[id]
	if !ok {
		return nil, nil
	}
	return &staffing.Consultant{ID: id, Status: st}, nil
}

type stubTasks map[string]staffing.Status

func (s stubTasks) GetByID(_ context.Context, id string) (*staffing.Task, error) {
	st, ok := s[id]
	if !ok {
		return nil, nil
	}
	return &staffing.Task{ID: id, Status: st}, nil
}

func fixedNow() time.Time {
	return time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)
}

func newService() (*TimesheetService, *memEntries) {
	entries := newMemEntries()
	svc := NewTimesheetService(entries,
		stubConsultants{"c1": staffing.StatusActive, "c-gone": staffing.StatusDeleted},
		stubTasks{"task1": staffing.StatusActive, "task-gone": staffing.StatusDeleted},
		fixedNow,
	)
	return svc, entries
}

func entryReq(consultant, task, workDate string, hours float64) *domain.CreateEntryRequest {
	return &domain.CreateEntryRequest{
		ConsultantID: consultant,
		TaskID:       task,
		WorkDate:     workDate,
		Hours:        hours,
	}
}

func TestEntryCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("books hours against a task", func(t *testing.T) {
		svc, _ := newService()
		got, err := svc.Create(ctx, entryReq("c1", "task1", "2026-05-08", 7.5))
		require.NoError(t, err)
		assert.NotEmpty(t, got.ID)
		assert.Equal(t, 7.5, got.Hours)
		assert.Equal(t, staffing.StatusActive, got.Status)
		assert.Equal(t, time.Date(2026, 5, 8, 0, 0, 0, 0, time.UTC), got.WorkDate)
	})

	t.Run("unknown consultant", func(t *testing.T) {
		svc, _ := newService()
		_, err := svc.Create(ctx, entryReq("ghost", "task1", "2026-05-08", 8))
		assert.ErrorIs(t, err, staffing.ErrNotFound)
	})

	t.Run("deleted task", func(t *testing.T) {
		svc, _ := newService()
		_, err := svc.Create(ctx, entryReq("c1", "task-gone", "2026-05-08", 8))
		assert.ErrorIs(t, err, staffing.ErrNotFound)
	})

	t.Run("bad work date", func(t *testing.T) {
		svc, _ := newService()
		_, err := svc.Create(ctx, entryReq("c1", "task1", "08/05/2026", 8))
		assert.ErrorIs(t, err, staffing.ErrInvalid)
	})

	t.Run("hours bounds", func(t *testing.T) {
		svc, _ := newService()
		_, err := svc.Create(ctx, entryReq("c1", "task1", "2026-05-08", 0))
		assert.ErrorIs(t, err, staffing.ErrInvalid)

		_, err = svc.Create(ctx, entryReq("c1", "task1", "2026-05-08", 25))
		assert.ErrorIs(t, err, staffing.ErrInvalid)

		_, err = svc.Create(ctx, entryReq("c1", "task1", "2026-05-08", 24))
		assert.NoError(t, err)
	})
}

func TestEntryList(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	for _, day := range []string{"2026-05-04", "2026-05-05", "2026-05-12"} {
		_, err := svc.Create(ctx, entryReq("c1", "task1", day, 8))
		require.NoError(t, err)
	}

	t.Run("bounded by from and to", func(t *testing.T) {
		list, err := svc.ListByConsultant(ctx, "c1", "2026-05-04", "2026-05-10")
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("unbounded", func(t *testing.T) {
		list, err := svc.ListByConsultant(ctx, "c1", "", "")
		require.NoError(t, err)
		assert.Len(t, list, 3)
	})

	t.Run("bad bound", func(t *testing.T) {
		_, err := svc.ListByConsultant(ctx, "c1", "May 4", "")
		assert.ErrorIs(t, err, staffing.ErrInvalid)
	})

	t.Run("unknown consultant", func(t *testing.T) {
		_, err := svc.ListByConsultant(ctx, "ghost", "", "")
		assert.ErrorIs(t, err, staffing.ErrNotFound)
	})
}

func TestEntryUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	created, err := svc.Create(ctx, entryReq("c1", "task1", "2026-05-08", 8))
	require.NoError(t, err)

	t.Run("partial update", func(t *testing.T) {
		hours := 6.0
		note := "half day plus standup"
		got, err := svc.Update(ctx, created.ID, &domain.UpdateEntryRequest{Hours: &hours, Note: &note})
		require.NoError(t, err)
		assert.Equal(t, 6.0, got.Hours)
		assert.Equal(t, note, got.Note)
	})

	t.Run("invalid hours rejected", func(t *testing.T) {
		hours := -1.0
		_, err := svc.Update(ctx, created.ID, &domain.UpdateEntryRequest{Hours: &hours})
		assert.ErrorIs(t, err, staffing.ErrInvalid)
	})

	t.Run("delete then read", func(t *testing.T) {
		deleted, err := svc.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, staffing.StatusDeleted, deleted.Status)

		_, err = svc.GetByID(ctx, created.ID)
		assert.ErrorIs(t, err, staffing.ErrNotFound)

		_, err = svc.Delete(ctx, created.ID)
		assert.ErrorIs(t, err, staffing.ErrNotFound)
	})
}
