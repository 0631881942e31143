package validation

import (
	"context"
	"fmt"
	"time"

	"github.com/stafflow-io/staffing-backend/internal/staffing/domain"
	"github.com/stafflow-io/staffing-backend/internal/staffing/schedule"
)

// Collaborator contracts the validator reads through. Implementations return
// (nil, nil) / (false, nil) when the entity is absent; only infrastructure
// failures surface as errors.

type ConsultantLookup interface {
	GetByID(ctx context.Context, id string) (*domain.Consultant, error)
}

type TeamLookup interface {
	GetByID(ctx context.Context, id string) (*domain.ProjectTeam, error)
}

// RoleLookup reports whether a role exists and is Active.
type RoleLookup interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Validator runs the pre-mutation checks shared by the assignment create and
// update flows. The clock is injected so date rules stay deterministic in
// tests.
type Validator struct {
	consultants ConsultantLookup
	teams       TeamLookup
	roles       RoleLookup
	now         func() time.Time
}

func New(consultants ConsultantLookup, teams TeamLookup, roles RoleLookup, now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	return &Validator{
		consultants: consultants,
		teams:       teams,
		roles:       roles,
		now:         now,
	}
}

// ConsultantExists fails with NotFound when the consultant is absent or
// logically deleted; otherwise it returns the consultant.
func (v *Validator) ConsultantExists(ctx context.Context, id string) (*domain.Consultant, error) {
	c, err := v.consultants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.Status != domain.StatusActive {
		return nil, fmt.Errorf("consultant %s: %w", id, domain.ErrNotFound)
	}
	return c, nil
}

// TeamExists fails with NotFound when the project team is absent or deleted.
func (v *Validator) TeamExists(ctx context.Context, id string) (*domain.ProjectTeam, error) {
	t, err := v.teams.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil || t.Status != domain.StatusActive {
		return nil, fmt.Errorf("project team %s: %w", id, domain.ErrNotFound)
	}
	return t, nil
}

// RoleActive fails with NotFound when the role is absent or not Active.
func (v *Validator) RoleActive(ctx context.Context, id string) error {
	ok, err := v.roles.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("role %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// NoDuplicate fails with Conflict when any Active assignment of the team
// already pairs the consultant with the role. excludeID skips the assignment
// being updated.
func NoDuplicate(teamAssignments []domain.Assignment, consultantID, roleID, excludeID string) error {
	for _, a := range teamAssignments {
		if a.Status != domain.StatusActive {
			continue
		}
		if excludeID != "" && a.ID == excludeID {
			continue
		}
		if a.ConsultantID == consultantID && a.RoleID == roleID {
			return fmt.Errorf("consultant %s already has an active assignment with role %s on this team: %w",
				consultantID, roleID, domain.ErrConflict)
		}
	}
	return nil
}

// ParseDate parses a wire-format date and normalizes it to midnight UTC.
// The label names the offending field in the Invalid error.
func ParseDate(label, s string) (time.Time, error) {
	d, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s %q is not a valid date: %w", label, s, domain.ErrInvalid)
	}
	return schedule.Normalize(d), nil
}

// Ordered fails with Invalid when start lies after end.
func Ordered(start, end time.Time) error {
	if start.After(end) {
		return fmt.Errorf("start date %s is after end date %s: %w",
			start.Format(domain.DateLayout), end.Format(domain.DateLayout), domain.ErrInvalid)
	}
	return nil
}

// NotPast fails with Invalid when the date lies before today. Only dates a
// caller actually supplies go through this check; boundaries carried over
// unchanged from a stored record do not.
func (v *Validator) NotPast(label string, d time.Time) error {
	today := schedule.Normalize(v.now())
	if d.Before(today) {
		return fmt.Errorf("%s %s is before today: %w", label, d.Format(domain.DateLayout), domain.ErrInvalid)
	}
	return nil
}

// DateRange parses and checks a full candidate pair: both must parse, start
// must not be after end, and start must not be before today. Returns the
// normalized dates.
func (v *Validator) DateRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := ParseDate("start date", startStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := ParseDate("end date", endStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if err := Ordered(start, end); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if err := v.NotPast("start date", start); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// Dedication checks the candidate percentage is in (0, 100].
func Dedication(d int) error {
	if d <= 0 || d > 100 {
		return fmt.Errorf("dedication must be between 1 and 100, got %d: %w", d, domain.ErrInvalid)
	}
	return nil
}

// DedicationCeiling accumulates the consultant's other Active, overlapping
// dedications and fails with Conflict when adding the candidate would exceed
// 100%.
func DedicationCeiling(consultantAssignments []domain.Assignment, start, end time.Time, excludeID string, candidate int) error {
	total := schedule.AccumulatedDedication(consultantAssignments, start, end, excludeID)
	if total+candidate > 100 {
		return fmt.Errorf("dedication total would be %d%%, exceeding 100%%: %w", total+candidate, domain.ErrConflict)
	}
	return nil
}
