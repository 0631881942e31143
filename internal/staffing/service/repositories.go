package service

import (
	"context"

	"github.com/stafflow-io/staffing-backend/internal/staffing/domain"
)

// Repository contracts the use cases depend on. Postgres implementations
// live in internal/staffing/repository; tests substitute in-memory fakes.
// Lookups return (nil, nil) when the entity is absent.

type AssignmentRepository interface {
	Create(ctx context.Context, a *domain.Assignment) error
	// GetByID returns the assignment regardless of status.
	GetByID(ctx context.Context, id string) (*domain.Assignment, error)
	// ListByTeam returns the team's Active assignments ordered by start date.
	ListByTeam(ctx context.Context, teamID string) ([]domain.Assignment, error)
	// ListByConsultant returns the consultant's Active assignments ordered by start date.
	ListByConsultant(ctx context.Context, consultantID string) ([]domain.Assignment, error)
	Update(ctx context.Context, a *domain.Assignment) error
	// DeleteByTeam logically deletes every Active assignment of the team.
	DeleteByTeam(ctx context.Context, teamID string) error
	// WithLock runs fn while holding an advisory lock on key, serializing
	// concurrent validate-then-write sequences for the same consultant or team.
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

type TeamRepository interface {
	Create(ctx context.Context, t *domain.ProjectTeam) error
	GetByID(ctx context.Context, id string) (*domain.ProjectTeam, error)
	GetByProject(ctx context.Context, projectID string) (*domain.ProjectTeam, error)
	Update(ctx context.Context, t *domain.ProjectTeam) error
}

type ConsultantRepository interface {
	Create(ctx context.Context, c *domain.Consultant) error
	GetByID(ctx context.Context, id string) (*domain.Consultant, error)
	List(ctx context.Context) ([]domain.Consultant, error)
	Update(ctx context.Context, c *domain.Consultant) error
}

type RoleRepository interface {
	Create(ctx context.Context, r *domain.Role) error
	GetByID(ctx context.Context, id string) (*domain.Role, error)
	// Exists reports whether the role exists and is Active.
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]domain.Role, error)
	Update(ctx context.Context, r *domain.Role) error
}

type ClientRepository interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context) ([]domain.Client, error)
	Update(ctx context.Context, c *domain.Client) error
}

type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, clientID string) ([]domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
}

type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
}

// NameResolver provides the display names used to enrich assignment
// responses. The redis-backed implementation falls through to the
// repositories on a miss.
type NameResolver interface {
	ConsultantName(ctx context.Context, id string) (string, error)
	RoleName(ctx context.Context, id string) (string, error)
	ProjectName(ctx context.Context, id string) (string, error)
}

// Invalidation hooks the CRUD services call after a rename or delete so the
// cached display name cannot outlive the record it was read from. A nil hook
// means no cache is configured.

type ConsultantNameInvalidator interface {
	InvalidateConsultant(ctx context.Context, id string)
}

type RoleNameInvalidator interface {
	InvalidateRole(ctx context.Context, id string)
}

type ProjectNameInvalidator interface {
	InvalidateProject(ctx context.Context, id string)
}
