package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stafflow-io/staffing-backend/internal/staffing/domain"
)

// ProjectService handles project CRUD. A project belongs to a client and is
// what a team (and, through it, assignments) attach to.
type ProjectService struct {
	projects ProjectRepository
	clients  ClientRepository
	names    ProjectNameInvalidator
	now      func() time.Time
}

func NewProjectService(projects ProjectRepository, clients ClientRepository, names ProjectNameInvalidator, now func() time.Time) *ProjectService {
	if now == nil {
		now = time.Now
	}
	return &ProjectService{projects: projects, clients: clients, names: names, now: now}
}

func (s *ProjectService) Create(ctx context.Context, req *domain.CreateProjectRequest) (*domain.Project, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("project name is required: %w", domain.ErrInvalid)
	}

	client, err := s.clients.GetByID(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil || client.Status != domain.StatusActive {
		return nil, fmt.Errorf("client %s: %w", req.ClientID, domain.ErrNotFound)
	}

	now := s.now()
	p := &domain.Project{
		ID:        uuid.New().String(),
		ClientID:  req.ClientID,
		Name:      strings.TrimSpace(req.Name),
		Status:    domain.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProjectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.load(ctx, id)
}

// List returns active projects, optionally narrowed to one client.
func (s *ProjectService) List(ctx context.Context, clientID string) ([]domain.Project, error) {
	return s.projects.List(ctx, clientID)
}

func (s *ProjectService) Update(ctx context.Context, id string, req *domain.UpdateProjectRequest) (*domain.Project, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	p.UpdatedAt = s.now()
	if err := s.projects.Update(ctx, p); err != nil {
		return nil, err
	}
	if s.names != nil {
		s.names.InvalidateProject(ctx, p.ID)
	}
	return p, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) (*domain.Project, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Status = domain.StatusDeleted
	p.UpdatedAt = s.now()
	if err := s.projects.Update(ctx, p); err != nil {
		return nil, err
	}
	if s.names != nil {
		s.names.InvalidateProject(ctx, p.ID)
	}
	return p, nil
}

func (s *ProjectService) load(ctx context.Context, id string) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.Status != domain.StatusActive {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	return p, nil
}
