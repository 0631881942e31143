package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stafflow-io/staffing-backend/internal/staffing/domain"
)

type memConsultants struct {
	items map[string]*domain.Consultant
}

func newMemConsultants() *memConsultants {
	return &memConsultants{items: map[string]*domain.Consultant{}}
}

func (m *memConsultants) Create(_ context.Context, c *domain.Consultant) error {
	cp := *c
	m.items[c.ID] = &cp
	return nil
}

func (m *memConsultants) GetByID(_ context.Context, id string) (*domain.Consultant, error) {
	c, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *memConsultants) List(_ context.Context) ([]domain.Consultant, error) {
	var out []domain.Consultant
	for _, c := range m.items {
		if c.Status == domain.StatusActive {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memConsultants) Update(_ context.Context, c *domain.Consultant) error {
	if _, ok := m.items[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	m.items[c.ID] = &cp
	return nil
}

func TestConsultantCRUD(t *testing.T) {
	ctx := context.Background()
	svc := NewConsultantService(newMemConsultants(), nil, testClock)

	t.Run("create trims and activates", func(t *testing.T) {
		got, err := svc.Create(ctx, &domain.CreateConsultantRequest{
			FirstName: "  Ana ",
			LastName:  "Silva",
			Email:     " ana@example.com ",
		})
		require.NoError(t, err)
		assert.Equal(t, "Ana", got.FirstName)
		assert.Equal(t, "ana@example.com", got.Email)
		assert.Equal(t, domain.StatusActive, got.Status)
		assert.Equal(t, "Ana Silva", got.FullName())
	})

	t.Run("first name required", func(t *testing.T) {
		_, err := svc.Create(ctx, &domain.CreateConsultantRequest{FirstName: "  ", Email: "x@example.com"})
		assert.ErrorIs(t, err, domain.ErrInvalid)
	})

	t.Run("email required", func(t *testing.T) {
		_, err := svc.Create(ctx, &domain.CreateConsultantRequest{FirstName: "Ana"})
		assert.ErrorIs(t, err, domain.ErrInvalid)
	})

	t.Run("update merges supplied fields only", func(t *testing.T) {
		created, err := svc.Create(ctx, &domain.CreateConsultantRequest{
			FirstName: "Ben", LastName: "Moore", Email: "ben@example.com",
		})
		require.NoError(t, err)

		last := "Mota"
		got, err := svc.Update(ctx, created.ID, &domain.UpdateConsultantRequest{LastName: &last})
		require.NoError(t, err)
		assert.Equal(t, "Ben", got.FirstName)
		assert.Equal(t, "Mota", got.LastName)
	})

	t.Run("soft delete hides the record", func(t *testing.T) {
		created, err := svc.Create(ctx, &domain.CreateConsultantRequest{
			FirstName: "Eva", Email: "eva@example.com",
		})
		require.NoError(t, err)

		deleted, err := svc.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusDeleted, deleted.Status)

		_, err = svc.GetByID(ctx, created.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		_, err = svc.Delete(ctx, created.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

type recordingInvalidator struct {
	ids []string
}

func (r *recordingInvalidator) InvalidateConsultant(_ context.Context, id string) {
	r.ids = append(r.ids, id)
}

func TestConsultantUpdateInvalidatesCachedName(t *testing.T) {
	ctx := context.Background()
	inv := &recordingInvalidator{}
	svc := NewConsultantService(newMemConsultants(), inv, testClock)

	created, err := svc.Create(ctx, &domain.CreateConsultantRequest{
		FirstName: "Ana", LastName: "Silva", Email: "ana@example.com",
	})
	require.NoError(t, err)
	assert.Empty(t, inv.ids)

	last := "Mota"
	_, err = svc.Update(ctx, created.ID, &domain.UpdateConsultantRequest{LastName: &last})
	require.NoError(t, err)
	assert.Equal(t, []string{created.ID}, inv.ids)

	_, err = svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{created.ID, created.ID}, inv.ids)
}

func TestTaskCreateRequiresActiveProject(t *testing.T) {
	ctx := context.Background()

	tasks := &memTasks{items: map[string]*domain.Task{}}
	projects := memProjects{"p1": domain.StatusActive, "p-gone": domain.StatusDeleted}
	svc := NewTaskService(tasks, projects, testClock)

	t.Run("active project", func(t *testing.T) {
		got, err := svc.Create(ctx, &domain.CreateTaskRequest{ProjectID: "p1", Name: "API design"})
		require.NoError(t, err)
		assert.Equal(t, "p1", got.ProjectID)
	})

	t.Run("deleted project", func(t *testing.T) {
		_, err := svc.Create(ctx, &domain.CreateTaskRequest{ProjectID: "p-gone", Name: "API design"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("blank name", func(t *testing.T) {
		_, err := svc.Create(ctx, &domain.CreateTaskRequest{ProjectID: "p1", Name: "   "})
		assert.ErrorIs(t, err, domain.ErrInvalid)
	})
}

type memTasks struct {
	items map[string]*domain.Task
}

func (m *memTasks) Create(_ context.Context, t *domain.Task) error {
	cp := *t
	m.items[t.ID] = &cp
	return nil
}

func (m *memTasks) GetByID(_ context.Context, id string) (*domain.Task, error) {
	t, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (m *memTasks) ListByProject(_ context.Context, projectID string) ([]domain.Task, error) {
	var out []domain.Task
	for _, t := range m.items {
		if t.Status == domain.StatusActive && t.ProjectID == projectID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *memTasks) Update(_ context.Context, t *domain.Task) error {
	if _, ok := m.items[t.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *t
	m.items[t.ID] = &cp
	return nil
}
