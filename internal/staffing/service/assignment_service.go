package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stafflow-io/staffing-backend/internal/staffing/domain"
	"github.com/stafflow-io/staffing-backend/internal/staffing/validation"
)

// AssignmentService orchestrates creation, retrieval, update and logical
// deletion of consultant-to-team assignments. Every mutation runs under an
// advisory lock keyed on the consultant so concurrent ceiling and duplicate
// checks cannot both pass on stale reads.
type AssignmentService struct {
	assignments AssignmentRepository
	validator   *validation.Validator
	names       NameResolver
	now         func() time.Time
}

func NewAssignmentService(assignments AssignmentRepository, validator *validation.Validator, names NameResolver, now func() time.Time) *AssignmentService {
	if now == nil {
		now = time.Now
	}
	return &AssignmentService{
		assignments: assignments,
		validator:   validator,
		names:       names,
		now:         now,
	}
}

// Create validates the candidate in order (consultant, team, role, duplicate,
// dates, dedication, ceiling) and persists a new Active assignment. The
// returned record is enriched with consultant, role and project names.
func (s *AssignmentService) Create(ctx context.Context, req *domain.CreateAssignmentRequest) (*domain.EnrichedAssignment, error) {
	var created *domain.Assignment
	var team *domain.ProjectTeam

	err := s.assignments.WithLock(ctx, consultantLockKey(req.ConsultantID), func(ctx context.Context) error {
		if _, err := s.validator.ConsultantExists(ctx, req.ConsultantID); err != nil {
			return err
		}

		t, err := s.validator.TeamExists(ctx, req.TeamID)
		if err != nil {
			return err
		}
		team = t

		if err := s.validator.RoleActive(ctx, req.RoleID); err != nil {
			return err
		}

		teamAssignments, err := s.assignments.ListByTeam(ctx, req.TeamID)
		if err != nil {
			return err
		}
		if err := validation.NoDuplicate(teamAssignments, req.ConsultantID, req.RoleID, ""); err != nil {
			return err
		}

		start, end, err := s.validator.DateRange(req.StartDate, req.EndDate)
		if err != nil {
			return err
		}
		if err := validation.Dedication(req.Dedication); err != nil {
			return err
		}

		consultantAssignments, err := s.assignments.ListByConsultant(ctx, req.ConsultantID)
		if err != nil {
			return err
		}
		if err := validation.DedicationCeiling(consultantAssignments, start, end, "", req.Dedication); err != nil {
			return err
		}

		now := s.now()
		created = &domain.Assignment{
			ID:           uuid.New().String(),
			ConsultantID: req.ConsultantID,
			TeamID:       req.TeamID,
			RoleID:       req.RoleID,
			Dedication:   req.Dedication,
			StartDate:    start,
			EndDate:      end,
			Status:       domain.StatusActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return s.assignments.Create(ctx, created)
	})
	if err != nil {
		return nil, err
	}

	return s.enrich(ctx, created, team.ProjectID)
}

// GetByID returns the enriched assignment. It fails NotFound when the
// assignment is absent or Deleted, and also when its consultant or team has
// been deleted since: the record survives for audit but is orphaned.
func (s *AssignmentService) GetByID(ctx context.Context, id string) (*domain.EnrichedAssignment, error) {
	a, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.validator.ConsultantExists(ctx, a.ConsultantID); err != nil {
		return nil, err
	}
	team, err := s.validator.TeamExists(ctx, a.TeamID)
	if err != nil {
		return nil, err
	}

	return s.enrich(ctx, a, team.ProjectID)
}

// ListByTeam returns the team's Active assignments ordered by start date.
func (s *AssignmentService) ListByTeam(ctx context.Context, teamID string) ([]domain.Assignment, error) {
	if _, err := s.validator.TeamExists(ctx, teamID); err != nil {
		return nil, err
	}
	return s.assignments.ListByTeam(ctx, teamID)
}

// ListByConsultant returns the consultant's Active assignments ordered by
// start date.
func (s *AssignmentService) ListByConsultant(ctx context.Context, consultantID string) ([]domain.Assignment, error) {
	if _, err := s.validator.ConsultantExists(ctx, consultantID); err != nil {
		return nil, err
	}
	return s.assignments.ListByConsultant(ctx, consultantID)
}

// Update merges the partial changes over the stored assignment and
// re-validates with the effective values: role checks when the role changed,
// date coherence always, and the dedication ceiling (excluding the
// assignment itself) when dedication or either date changed.
func (s *AssignmentService) Update(ctx context.Context, id string, req *domain.UpdateAssignmentRequest) (*domain.EnrichedAssignment, error) {
	var updated *domain.Assignment
	var projectID string

	// The consultant is not known before loading the row, so the lock key is
	// resolved inside a first read. The re-read under the lock keeps the
	// merge based on committed state.
	probe, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.assignments.WithLock(ctx, consultantLockKey(probe.ConsultantID), func(ctx context.Context) error {
		a, err := s.load(ctx, id)
		if err != nil {
			return err
		}

		effRole := a.RoleID
		if req.RoleID != nil {
			effRole = *req.RoleID
		}
		effDedication := a.Dedication
		if req.Dedication != nil {
			effDedication = *req.Dedication
		}
		effStart := a.StartDate.Format(domain.DateLayout)
		if req.StartDate != nil {
			effStart = *req.StartDate
		}
		effEnd := a.EndDate.Format(domain.DateLayout)
		if req.EndDate != nil {
			effEnd = *req.EndDate
		}

		roleChanged := effRole != a.RoleID
		if roleChanged {
			if err := s.validator.RoleActive(ctx, effRole); err != nil {
				return err
			}
			teamAssignments, err := s.assignments.ListByTeam(ctx, a.TeamID)
			if err != nil {
				return err
			}
			if err := validation.NoDuplicate(teamAssignments, a.ConsultantID, effRole, a.ID); err != nil {
				return err
			}
		}

		start, end, err := s.validator.DateRange(effStart, effEnd)
		if err != nil {
			return err
		}

		if req.Dedication != nil {
			if err := validation.Dedication(effDedication); err != nil {
				return err
			}
		}

		if req.Dedication != nil || req.StartDate != nil || req.EndDate != nil {
			consultantAssignments, err := s.assignments.ListByConsultant(ctx, a.ConsultantID)
			if err != nil {
				return err
			}
			if err := validation.DedicationCeiling(consultantAssignments, start, end, a.ID, effDedication); err != nil {
				return err
			}
		}

		a.RoleID = effRole
		a.Dedication = effDedication
		a.StartDate = start
		a.EndDate = end
		a.UpdatedAt = s.now()

		if err := s.assignments.Update(ctx, a); err != nil {
			return err
		}
		updated = a

		team, err := s.validator.TeamExists(ctx, a.TeamID)
		if err != nil {
			return err
		}
		projectID = team.ProjectID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.enrich(ctx, updated, projectID)
}

// Delete flips the assignment to Deleted and returns the deleted record.
// Deleting an already-deleted assignment fails NotFound.
func (s *AssignmentService) Delete(ctx context.Context, id string) (*domain.Assignment, error) {
	probe, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	var deleted *domain.Assignment
	err = s.assignments.WithLock(ctx, consultantLockKey(probe.ConsultantID), func(ctx context.Context) error {
		a, err := s.load(ctx, id)
		if err != nil {
			return err
		}
		a.Status = domain.StatusDeleted
		a.UpdatedAt = s.now()
		if err := s.assignments.Update(ctx, a); err != nil {
			return err
		}
		deleted = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// load fetches the assignment and maps absent or Deleted to NotFound.
func (s *AssignmentService) load(ctx context.Context, id string) (*domain.Assignment, error) {
	a, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil || a.Status != domain.StatusActive {
		return nil, fmt.Errorf("assignment %s: %w", id, domain.ErrNotFound)
	}
	return a, nil
}

func (s *AssignmentService) enrich(ctx context.Context, a *domain.Assignment, projectID string) (*domain.EnrichedAssignment, error) {
	consultantName, err := s.names.ConsultantName(ctx, a.ConsultantID)
	if err != nil {
		return nil, err
	}
	roleName, err := s.names.RoleName(ctx, a.RoleID)
	if err != nil {
		return nil, err
	}
	projectName, err := s.names.ProjectName(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return &domain.EnrichedAssignment{
		Assignment:     *a,
		ConsultantName: consultantName,
		RoleName:       roleName,
		ProjectName:    projectName,
	}, nil
}

func consultantLockKey(consultantID string) string {
	return "assignment:consultant:" + consultantID
}
