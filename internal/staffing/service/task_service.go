package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stafflow-io/staffing-backend/internal/staffing/domain"
)

// TaskService handles project task CRUD. Timesheet entries are booked
// against tasks.
type TaskService struct {
	tasks    TaskRepository
	projects ProjectRepository
	now      func() time.Time
}

func NewTaskService(tasks TaskRepository, projects ProjectRepository, now func() time.Time) *TaskService {
	if now == nil {
		now = time.Now
	}
	return &TaskService{tasks: tasks, projects: projects, now: now}
}

func (s *TaskService) Create(ctx context.Context, req *domain.CreateTaskRequest) (*domain.Task, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("task name is required: %w", domain.ErrInvalid)
	}

	p, err := s.projects.GetByID(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.Status != domain.StatusActive {
		return nil, fmt.Errorf("project %s: %w", req.ProjectID, domain.ErrNotFound)
	}

	now := s.now()
	t := &domain.Task{
		ID:        uuid.New().String(),
		ProjectID: req.ProjectID,
		Name:      strings.TrimSpace(req.Name),
		Status:    domain.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.load(ctx, id)
}

func (s *TaskService) ListByProject(ctx context.Context, projectID string) ([]domain.Task, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.Status != domain.StatusActive {
		return nil, fmt.Errorf("project %s: %w", projectID, domain.ErrNotFound)
	}
	return s.tasks.ListByProject(ctx, projectID)
}

func (s *TaskService) Update(ctx context.Context, id string, req *domain.UpdateTaskRequest) (*domain.Task, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		t.Name = strings.TrimSpace(*req.Name)
	}
	t.UpdatedAt = s.now()
	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) (*domain.Task, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Status = domain.StatusDeleted
	t.UpdatedAt = s.now()
	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) load(ctx context.Context, id string) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil || t.Status != domain.StatusActive {
		return nil, fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}
	return t, nil
}
