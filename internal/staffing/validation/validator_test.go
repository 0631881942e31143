package validation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stafflow-io/staffing-backend/internal/staffing/domain"
)

type fakeConsultants map[string]*domain.Consultant

func (f fakeConsultants) GetByID(_ context.Context, id string) (*domain.Consultant, error) {
	return f[id], nil
}

type fakeTeams map[string]*domain.ProjectTeam

func (f fakeTeams) GetByID(_ context.Context, id string) (*domain.ProjectTeam, error) {
	return f[id], nil
}

type fakeRoles map[string]bool

func (f fakeRoles) Exists(_ context.Context, id string) (bool, error) {
	return f[id], nil
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 1, 14, 30, 0, 0, time.UTC)
}

func newValidator(consultants fakeConsultants, teams fakeTeams, roles fakeRoles) *Validator {
	return New(consultants, teams, roles, fixedNow)
}

func TestConsultantExists(t *testing.T) {
	ctx := context.Background()
	v := newValidator(fakeConsultants{
		"c-active":  {ID: "c-active", FirstName: "Ana", Status: domain.StatusActive},
		"c-deleted": {ID: "c-deleted", FirstName: "Ben", Status: domain.StatusDeleted},
	}, nil, nil)

	t.Run("active consultant passes", func(t *testing.T) {
		c, err := v.ConsultantExists(ctx, "c-active")
		require.NoError(t, err)
		assert.Equal(t, "Ana", c.FirstName)
	})

	t.Run("absent consultant is not found", func(t *testing.T) {
		_, err := v.ConsultantExists(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("deleted consultant is not found", func(t *testing.T) {
		_, err := v.ConsultantExists(ctx, "c-deleted")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestTeamExists(t *testing.T) {
	ctx := context.Background()
	v := newValidator(nil, fakeTeams{
		"t-active":  {ID: "t-active", ProjectID: "p1", Status: domain.StatusActive},
		"t-deleted": {ID: "t-deleted", ProjectID: "p2", Status: domain.StatusDeleted},
	}, nil)

	t.Run("active team passes", func(t *testing.T) {
		team, err := v.TeamExists(ctx, "t-active")
		require.NoError(t, err)
		assert.Equal(t, "p1", team.ProjectID)
	})

	t.Run("deleted team is not found", func(t *testing.T) {
		_, err := v.TeamExists(ctx, "t-deleted")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestRoleActive(t *testing.T) {
	ctx := context.Background()
	v := newValidator(nil, nil, fakeRoles{"r1": true})

	assert.NoError(t, v.RoleActive(ctx, "r1"))
	assert.ErrorIs(t, v.RoleActive(ctx, "r2"), domain.ErrNotFound)
}

func TestNoDuplicate(t *testing.T) {
	team := []domain.Assignment{
		{ID: "a1", ConsultantID: "c1", RoleID: "r1", Status: domain.StatusActive},
		{ID: "a2", ConsultantID: "c1", RoleID: "r2", Status: domain.StatusActive},
		{ID: "a3", ConsultantID: "c2", RoleID: "r1", Status: domain.StatusDeleted},
	}

	t.Run("same consultant and role conflicts", func(t *testing.T) {
		err := NoDuplicate(team, "c1", "r1", "")
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("same consultant with a different role passes", func(t *testing.T) {
		assert.NoError(t, NoDuplicate(team, "c1", "r3", ""))
	})

	t.Run("deleted assignment does not block the pair", func(t *testing.T) {
		assert.NoError(t, NoDuplicate(team, "c2", "r1", ""))
	})

	t.Run("updated assignment does not collide with itself", func(t *testing.T) {
		assert.NoError(t, NoDuplicate(team, "c1", "r1", "a1"))
	})
}

func TestDateRange(t *testing.T) {
	v := newValidator(nil, nil, nil)

	t.Run("valid range is normalized", func(t *testing.T) {
		start, end, err := v.DateRange("2026-03-01", "2026-06-30")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC), end)
	})

	t.Run("single day range is allowed", func(t *testing.T) {
		_, _, err := v.DateRange("2026-03-10", "2026-03-10")
		assert.NoError(t, err)
	})

	t.Run("start today passes even late in the day", func(t *testing.T) {
		// the injected clock reads 14:30; only the calendar day counts
		_, _, err := v.DateRange("2026-03-01", "2026-03-02")
		assert.NoError(t, err)
	})

	t.Run("unparseable start", func(t *testing.T) {
		_, _, err := v.DateRange("01/03/2026", "2026-06-30")
		assert.ErrorIs(t, err, domain.ErrInvalid)
	})

	t.Run("unparseable end", func(t *testing.T) {
		_, _, err := v.DateRange("2026-03-01", "soon")
		assert.ErrorIs(t, err, domain.ErrInvalid)
	})

	t.Run("start after end", func(t *testing.T) {
		_, _, err := v.DateRange("2026-06-30", "2026-03-01")
		assert.ErrorIs(t, err, domain.ErrInvalid)
	})

	t.Run("start in the past", func(t *testing.T) {
		_, _, err := v.DateRange("2026-02-28", "2026-06-30")
		assert.ErrorIs(t, err, domain.ErrInvalid)
	})
}

func TestNotPast(t *testing.T) {
	v := newValidator(nil, nil, nil)

	assert.NoError(t, v.NotPast("end date", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.NoError(t, v.NotPast("end date", time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)))

	err := v.NotPast("end date", time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC))
	require.ErrorIs(t, err, domain.ErrInvalid)
	assert.Contains(t, err.Error(), "end date 2026-02-28 is before today")
}

func TestDedication(t *testing.T) {
	assert.NoError(t, Dedication(1))
	assert.NoError(t, Dedication(100))
	assert.ErrorIs(t, Dedication(0), domain.ErrInvalid)
	assert.ErrorIs(t, Dedication(-10), domain.ErrInvalid)
	assert.ErrorIs(t, Dedication(101), domain.ErrInvalid)
}

func TestDedicationCeiling(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	existing := []domain.Assignment{
		{ID: "a1", Dedication: 60, StartDate: start, EndDate: end, Status: domain.StatusActive},
	}

	t.Run("within the ceiling", func(t *testing.T) {
		assert.NoError(t, DedicationCeiling(existing, start, end, "", 40))
	})

	t.Run("exactly 100 is allowed", func(t *testing.T) {
		assert.NoError(t, DedicationCeiling(existing, start, end, "", 40))
		assert.Error(t, DedicationCeiling(existing, start, end, "", 41))
	})

	t.Run("exceeding the ceiling conflicts with the total in the message", func(t *testing.T) {
		err := DedicationCeiling(existing, start, end, "", 50)
		require.ErrorIs(t, err, domain.ErrConflict)
		assert.Contains(t, err.Error(), "110%")
	})

	t.Run("excluding the updated assignment frees its share", func(t *testing.T) {
		assert.NoError(t, DedicationCeiling(existing, start, end, "a1", 100))
	})

	t.Run("non-overlapping window ignores the existing load", func(t *testing.T) {
		later := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
		laterEnd := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
		assert.NoError(t, DedicationCeiling(existing, later, laterEnd, "", 100))
	})
}
