package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stafflow-io/staffing-backend/internal/staffing/domain"
	"github.com/stafflow-io/staffing-backend/internal/staffing/validation"
)

// TeamService manages project teams: at most one Active team per project,
// date rules as for assignments, and logical deletion cascading to the
// team's assignments.
type TeamService struct {
	teams       TeamRepository
	assignments AssignmentRepository
	projects    ProjectRepository
	validator   *validation.Validator
	now         func() time.Time
}

func NewTeamService(teams TeamRepository, assignments AssignmentRepository, projects ProjectRepository, validator *validation.Validator, now func() time.Time) *TeamService {
	if now == nil {
		now = time.Now
	}
	return &TeamService{
		teams:       teams,
		assignments: assignments,
		projects:    projects,
		validator:   validator,
		now:         now,
	}
}

// Create persists a new Active team after checking the project exists, has
// no Active team yet, and the dates are coherent.
func (s *TeamService) Create(ctx context.Context, req *domain.CreateTeamRequest) (*domain.ProjectTeam, error) {
	var created *domain.ProjectTeam

	err := s.assignments.WithLock(ctx, projectLockKey(req.ProjectID), func(ctx context.Context) error {
		p, err := s.projects.GetByID(ctx, req.ProjectID)
		if err != nil {
			return err
		}
		if p == nil || p.Status != domain.StatusActive {
			return fmt.Errorf("project %s: %w", req.ProjectID, domain.ErrNotFound)
		}

		existing, err := s.teams.GetByProject(ctx, req.ProjectID)
		if err != nil {
			return err
		}
		if existing != nil && existing.Status == domain.StatusActive {
			return fmt.Errorf("project %s already has an active team: %w", req.ProjectID, domain.ErrConflict)
		}

		start, end, err := s.validator.DateRange(req.StartDate, req.EndDate)
		if err != nil {
			return err
		}

		now := s.now()
		created = &domain.ProjectTeam{
			ID:        uuid.New().String(),
			ProjectID: req.ProjectID,
			Name:      req.Name,
			StartDate: start,
			EndDate:   end,
			Status:    domain.StatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return s.teams.Create(ctx, created)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetByID fails NotFound when the team is absent or Deleted.
func (s *TeamService) GetByID(ctx context.Context, id string) (*domain.ProjectTeam, error) {
	return s.load(ctx, id)
}

// GetByProject fails NotFound when the project has no Active team.
func (s *TeamService) GetByProject(ctx context.Context, projectID string) (*domain.ProjectTeam, error) {
	t, err := s.teams.GetByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if t == nil || t.Status != domain.StatusActive {
		return nil, fmt.Errorf("project %s has no active team: %w", projectID, domain.ErrNotFound)
	}
	return t, nil
}

// Update merges the supplied fields. Supplied dates are checked against
// today; the effective pair is checked for order.
func (s *TeamService) Update(ctx context.Context, id string, req *domain.UpdateTeamRequest) (*domain.ProjectTeam, error) {
	var updated *domain.ProjectTeam

	probe, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.assignments.WithLock(ctx, projectLockKey(probe.ProjectID), func(ctx context.Context) error {
		t, err := s.load(ctx, id)
		if err != nil {
			return err
		}

		if req.Name != nil {
			t.Name = *req.Name
		}

		// Only supplied dates are checked against today: a running team's
		// unchanged start date stays valid, and extending its end date must
		// not fail on it. The effective pair is still checked for order.
		if req.StartDate != nil || req.EndDate != nil {
			effStart, effEnd := t.StartDate, t.EndDate
			if req.StartDate != nil {
				d, err := validation.ParseDate("start date", *req.StartDate)
				if err != nil {
					return err
				}
				if err := s.validator.NotPast("start date", d); err != nil {
					return err
				}
				effStart = d
			}
			if req.EndDate != nil {
				d, err := validation.ParseDate("end date", *req.EndDate)
				if err != nil {
					return err
				}
				if err := s.validator.NotPast("end date", d); err != nil {
					return err
				}
				effEnd = d
			}
			if err := validation.Ordered(effStart, effEnd); err != nil {
				return err
			}
			t.StartDate = effStart
			t.EndDate = effEnd
		}

		t.UpdatedAt = s.now()
		if err := s.teams.Update(ctx, t); err != nil {
			return err
		}
		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete logically deletes the team's assignments first, then the team
// itself, and returns the deleted team.
func (s *TeamService) Delete(ctx context.Context, id string) (*domain.ProjectTeam, error) {
	probe, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	var deleted *domain.ProjectTeam
	err = s.assignments.WithLock(ctx, projectLockKey(probe.ProjectID), func(ctx context.Context) error {
		t, err := s.load(ctx, id)
		if err != nil {
			return err
		}

		if err := s.assignments.DeleteByTeam(ctx, t.ID); err != nil {
			return err
		}

		t.Status = domain.StatusDeleted
		t.UpdatedAt = s.now()
		if err := s.teams.Update(ctx, t); err != nil {
			return err
		}
		deleted = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func (s *TeamService) load(ctx context.Context, id string) (*domain.ProjectTeam, error) {
	t, err := s.teams.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil || t.Status != domain.StatusActive {
		return nil, fmt.Errorf("project team %s: %w", id, domain.ErrNotFound)
	}
	return t, nil
}

func projectLockKey(projectID string) string {
	return "team:project:" + projectID
}
