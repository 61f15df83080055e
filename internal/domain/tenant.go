package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Tenant is an isolated workspace. Every other entity is scoped to exactly
// one tenant and repositories never return rows across tenant boundaries.
type Tenant struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type TenantRepository interface {
	Create(ctx context.Context, t *Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*Tenant, error)
	List(ctx context.Context) ([]*Tenant, error)
}
