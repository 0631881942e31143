package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stafflow-io/staffing-backend/internal/staffing/domain"
)

// ClientService handles client CRUD with soft deletion.
type ClientService struct {
	clients ClientRepository
	now     func() time.Time
}

func NewClientService(clients ClientRepository, now func() time.Time) *ClientService {
	if now == nil {
		now = time.Now
	}
	return &ClientService{clients: clients, now: now}
}

func (s *ClientService) Create(ctx context.Context, req *domain.CreateClientRequest) (*domain.Client, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("client name is required: %w", domain.ErrInvalid)
	}

	now := s.now()
	c := &domain.Client{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Status:    domain.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.clients.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ClientService) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	return s.load(ctx, id)
}

func (s *ClientService) List(ctx context.Context) ([]domain.Client, error) {
	return s.clients.List(ctx)
}

func (s *ClientService) Update(ctx context.Context, id string, req *domain.UpdateClientRequest) (*domain.Client, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		c.Email = strings.TrimSpace(*req.Email)
	}
	c.UpdatedAt = s.now()
	if err := s.clients.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ClientService) Delete(ctx context.Context, id string) (*domain.Client, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Status = domain.StatusDeleted
	c.UpdatedAt = s.now()
	if err := s.clients.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ClientService) load(ctx context.Context, id string) (*domain.Client, error) {
	c, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.Status != domain.StatusActive {
		return nil, fmt.Errorf("client %s: %w", id, domain.ErrNotFound)
	}
	return c, nil
}
