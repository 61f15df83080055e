package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type InventoryItem struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	ProjectID uuid.UUID
	Name      string
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewInventoryItem creates an item bound to a project. Quantity is expected
// to be non-negative but is not enforced here, matching the store schema.
func NewInventoryItem(tenantID, projectID uuid.UUID, name string, quantity int) (*InventoryItem, error) {
	if tenantID == uuid.Nil {
		return nil, errors.New("item: tenant ID is required")
	}
	if projectID == uuid.Nil {
		return nil, errors.New("item: project ID is required")
	}
	if name == "" {
		return nil, errors.New("item: name is required")
	}
	now := time.Now()
	return &InventoryItem{
		ID:        uuid.New(),
		TenantID:  tenantID,
		ProjectID: projectID,
		Name:      name,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ItemPatch holds the fields of a partial update. Nil fields are left
// untouched by the store.
type ItemPatch struct {
	Name     *string
	Quantity *int
}

// ProjectSummary is a per-project inventory aggregate used by the dashboard.
type ProjectSummary struct {
	ProjectID     uuid.UUID
	ProjectName   string
	ItemCount     int64
	TotalQuantity int64
}

type ItemRepository interface {
	Create(ctx context.Context, item *InventoryItem) error
	CreateBatch(ctx context.Context, items []*InventoryItem) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*InventoryItem, error)
	ListByProject(ctx context.Context, tenantID, projectID uuid.UUID) ([]*InventoryItem, error)
	// Patch applies a partial update and returns the post-update row.
	Patch(ctx context.Context, tenantID, id uuid.UUID, patch ItemPatch) (*InventoryItem, error)
	// Delete removes the item and returns its last-known state.
	Delete(ctx context.Context, tenantID, id uuid.UUID) (*InventoryItem, error)
	Summary(ctx context.Context, tenantID uuid.UUID) ([]*ProjectSummary, error)
}
