package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stafflow-io/staffing-backend/internal/staffing/domain"
)

// ConsultantService handles consultant CRUD with soft deletion.
type ConsultantService struct {
	consultants ConsultantRepository
	names       ConsultantNameInvalidator
	now         func() time.Time
}

func NewConsultantService(consultants ConsultantRepository, names ConsultantNameInvalidator, now func() time.Time) *ConsultantService {
	if now == nil {
		now = time.Now
	}
	return &ConsultantService{consultants: consultants, names: names, now: now}
}

func (s *ConsultantService) Create(ctx context.Context, req *domain.CreateConsultantRequest) (*domain.Consultant, error) {
	if strings.TrimSpace(req.FirstName) == "" {
		return nil, fmt.Errorf("first name is required: %w", domain.ErrInvalid)
	}
	if strings.TrimSpace(req.Email) == "" {
		return nil, fmt.Errorf("email is required: %w", domain.ErrInvalid)
	}

	now := s.now()
	c := &domain.Consultant{
		ID:        uuid.New().String(),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.TrimSpace(req.Email),
		Status:    domain.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.consultants.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ConsultantService) GetByID(ctx context.Context, id string) (*domain.Consultant, error) {
	return s.load(ctx, id)
}

func (s *ConsultantService) List(ctx context.Context) ([]domain.Consultant, error) {
	return s.consultants.List(ctx)
}

func (s *ConsultantService) Update(ctx context.Context, id string, req *domain.UpdateConsultantRequest) (*domain.Consultant, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		c.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		c.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		c.Email = strings.TrimSpace(*req.Email)
	}
	c.UpdatedAt = s.now()

	if err := s.consultants.Update(ctx, c); err != nil {
		return nil, err
	}
	if s.names != nil {
		s.names.InvalidateConsultant(ctx, c.ID)
	}
	return c, nil
}

func (s *ConsultantService) Delete(ctx context.Context, id string) (*domain.Consultant, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Status = domain.StatusDeleted
	c.UpdatedAt = s.now()
	if err := s.consultants.Update(ctx, c); err != nil {
		return nil, err
	}
	if s.names != nil {
		s.names.InvalidateConsultant(ctx, c.ID)
	}
	return c, nil
}

func (s *ConsultantService) load(ctx context.Context, id string) (*domain.Consultant, error) {
	c, err := s.consultants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.Status != domain.StatusActive {
		return nil, fmt.Errorf("consultant %s: %w", id, domain.ErrNotFound)
	}
	return c, nil
}
