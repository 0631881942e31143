package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stafflow-io/staffing-backend/internal/staffing/domain"
	"github.com/stafflow-io/staffing-backend/pkg/logger"
)

const (
	consultantKeyPrefix = "staff:name:consultant:" // staff:name:consultant:{id} -> display name
	roleKeyPrefix       = "staff:name:role:"       // staff:name:role:{id} -> role name
	projectKeyPrefix    = "staff:name:project:"    // staff:name:project:{id} -> project name
	nameTTL             = 12 * time.Hour
)

// Sources the cache falls through to on a miss.

type ConsultantSource interface {
	GetByID(ctx context.Context, id string) (*domain.Consultant, error)
}

type RoleSource interface {
	GetByID(ctx context.Context, id string) (*domain.Role, error)
}

type ProjectSource interface {
	GetByID(ctx context.Context, id string) (*domain.Project, error)
}

// NameCache is a redis read-through cache for the display names used to
// enrich assignment responses. Redis failures are non-fatal: the lookup
// falls through to the repository.
type NameCache struct {
	client      *redis.Client
	consultants ConsultantSource
	roles       RoleSource
	projects    ProjectSource
}

func NewNameCache(client *redis.Client, consultants ConsultantSource, roles RoleSource, projects ProjectSource) *NameCache {
	return &NameCache{
		client:      client,
		consultants: consultants,
		roles:       roles,
		projects:    projects,
	}
}

func (c *NameCache) ConsultantName(ctx context.Context, id string) (string, error) {
	return c.lookup(ctx, consultantKeyPrefix+id, func() (string, error) {
		consultant, err := c.consultants.GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		if consultant == nil {
			return "", fmt.Errorf("consultant %s: %w", id, domain.ErrNotFound)
		}
		return consultant.FullName(), nil
	})
}

func (c *NameCache) RoleName(ctx context.Context, id string) (string, error) {
	return c.lookup(ctx, roleKeyPrefix+id, func() (string, error) {
		role, err := c.roles.GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		if role == nil {
			return "", fmt.Errorf("role %s: %w", id, domain.ErrNotFound)
		}
		return role.Name, nil
	})
}

func (c *NameCache) ProjectName(ctx context.Context, id string) (string, error) {
	return c.lookup(ctx, projectKeyPrefix+id, func() (string, error) {
		project, err := c.projects.GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		if project == nil {
			return "", fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
		}
		return project.Name, nil
	})
}

// Invalidate drops the cached name for an updated or deleted entity. The key
// prefixes are exported through the typed helpers below.
func (c *NameCache) InvalidateConsultant(ctx context.Context, id string) {
	c.invalidate(ctx, consultantKeyPrefix+id)
}

func (c *NameCache) InvalidateRole(ctx context.Context, id string) {
	c.invalidate(ctx, roleKeyPrefix+id)
}

func (c *NameCache) InvalidateProject(ctx context.Context, id string) {
	c.invalidate(ctx, projectKeyPrefix+id)
}

func (c *NameCache) lookup(ctx context.Context, key string, miss func() (string, error)) (string, error) {
	if c.client != nil {
		val, err := c.client.Get(ctx, key).Result()
		if err == nil {
			return val, nil
		}
		if err != redis.Nil {
			logger.Debug().Err(err).Str("key", key).Msg("name cache read failed")
		}
	}

	name, err := miss()
	if err != nil {
		return "", err
	}

	if c.client != nil {
		if err := c.client.Set(ctx, key, name, nameTTL).Err(); err != nil {
			logger.Debug().Err(err).Str("key", key).Msg("name cache write failed")
		}
	}
	return name, nil
}

func (c *NameCache) invalidate(ctx context.Context, key string) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		logger.Debug().Err(err).Str("key", key).Msg("name cache invalidate failed")
	}
}
