package v1

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stocktrail/stocktrail/internal/domain"
)

// DataStore abstracts the repository accessor pattern for handler testing.
// *postgres.Store satisfies this interface.
type DataStore interface {
	Tenants() domain.TenantRepository
	Users() domain.UserRepository
	Projects() domain.ProjectRepository
	Items() domain.ItemRepository
	Audit() domain.AuditRepository
}

// AuthService abstracts authentication operations for handler testing.
// *auth.Service satisfies this interface.
type AuthService interface {
	Register(ctx context.Context, tenantID uuid.UUID, email, password, name, role string) (*domain.User, error)
	Login(ctx context.Context, tenantID uuid.UUID, email, password string) (accessToken, refreshToken string, err error)
	RefreshToken(ctx context.Context, refreshToken string) (string, error)
	GenerateAPIKey(ctx context.Context, tenantID, userID uuid.UUID, name string, expiresAt *time.Time) (string, *domain.APIKey, error)
}

// InventoryService abstracts the cached and audited mutation pipeline for
// handler testing. *inventory.Service satisfies this interface.
type InventoryService interface {
	List(ctx context.Context, tenantID, projectID uuid.UUID) ([]*domain.InventoryItem, error)
	Get(ctx context.Context, tenantID, id uuid.UUID) (*domain.InventoryItem, error)
	Create(ctx context.Context, tenantID, projectID uuid.UUID, name string, quantity int, actor domain.Actor) (*domain.InventoryItem, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, patch domain.ItemPatch, actor domain.Actor) (*domain.InventoryItem, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID, actor domain.Actor) (*domain.InventoryItem, error)
	Import(ctx context.Context, tenantID, projectID uuid.UUID, items []*domain.InventoryItem, actor domain.Actor) error
}
