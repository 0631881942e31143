package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stafflow-io/staffing-backend/internal/staffing/domain"
)

// RoleService handles role CRUD with soft deletion.
type RoleService struct {
	roles RoleRepository
	names RoleNameInvalidator
	now   func() time.Time
}

func NewRoleService(roles RoleRepository, names RoleNameInvalidator, now func() time.Time) *RoleService {
	if now == nil {
		now = time.Now
	}
	return &RoleService{roles: roles, names: names, now: now}
}

func (s *RoleService) Create(ctx context.Context, req *domain.CreateRoleRequest) (*domain.Role, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("role name is required: %w", domain.ErrInvalid)
	}

	now := s.now()
	r := &domain.Role{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(req.Name),
		Status:    domain.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.roles.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *RoleService) GetByID(ctx context.Context, id string) (*domain.Role, error) {
	return s.load(ctx, id)
}

func (s *RoleService) List(ctx context.Context) ([]domain.Role, error) {
	return s.roles.List(ctx)
}

func (s *RoleService) Update(ctx context.Context, id string, req *domain.UpdateRoleRequest) (*domain.Role, error) {
	r, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		r.Name = strings.TrimSpace(*req.Name)
	}
	r.UpdatedAt = s.now()
	if err := s.roles.Update(ctx, r); err != nil {
		return nil, err
	}
	if s.names != nil {
		s.names.InvalidateRole(ctx, r.ID)
	}
	return r, nil
}

func (s *RoleService) Delete(ctx context.Context, id string) (*domain.Role, error) {
	r, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	r.Status = domain.StatusDeleted
	r.UpdatedAt = s.now()
	if err := s.roles.Update(ctx, r); err != nil {
		return nil, err
	}
	if s.names != nil {
		s.names.InvalidateRole(ctx, r.ID)
	}
	return r, nil
}

func (s *RoleService) load(ctx context.Context, id string) (*domain.Role, error) {
	r, err := s.roles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil || r.Status != domain.StatusActive {
		return nil, fmt.Errorf("role %s: %w", id, domain.ErrNotFound)
	}
	return r, nil
}
