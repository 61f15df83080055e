package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
}

// NewProject creates a Project with validated required fields.
func NewProject(tenantID uuid.UUID, name, description string) (*Project, error) {
	if tenantID == uuid.Nil {
		return nil, errors.New("project: tenant ID is required")
	}
	if name == "" {
		return nil, errors.New("project: name is required")
	}
	return &Project{
		ID:          uuid.New(),
		TenantID:    tenantID,
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
	}, nil
}

type ProjectRepository interface {
	Create(ctx context.Context, p *Project) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*Project, error)
	Update(ctx context.Context, p *Project) error
	List(ctx context.Context, tenantID uuid.UUID) ([]*Project, error)
	// Delete removes the project and returns its last-known state.
	Delete(ctx context.Context, tenantID, id uuid.UUID) (*Project, error)
}
