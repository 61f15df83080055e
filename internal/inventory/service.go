package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/stocktrail/stocktrail/internal/domain"
	"github.com/stocktrail/stocktrail/internal/notify"
)

// auditCollection is the collection name recorded for item mutations.
const auditCollection = "InventoryItem"

// ListingCache is the read-through cache consumed by the pipeline.
// *redisstore.ListingCache satisfies it.
type ListingCache interface {
	Get(ctx context.Context, projectID uuid.UUID) ([]*domain.InventoryItem, bool, error)
	Put(ctx context.Context, projectID uuid.UUID, items []*domain.InventoryItem) error
	Invalidate(ctx context.Context, projectID uuid.UUID) error
}

// Service runs every inventory mutation through a fixed pipeline:
// store write, broadcast, cache invalidation, audit record. The cache entry
// for the affected project is always gone before a mutation returns, so a
// caller that waits for the response never reads pre-mutation cached data.
// Concurrent mutations are not serialized; the last store write wins and each
// request emits its own broadcast and audit entry.
type Service struct {
	items    domain.ItemRepository
	projects domain.ProjectRepository
	cache    ListingCache
	audit    domain.AuditRepository
	notifier notify.Broadcaster
}

func NewService(items domain.ItemRepository, projects domain.ProjectRepository, cache ListingCache, audit domain.AuditRepository, notifier notify.Broadcaster) *Service {
	return &Service{
		items:    items,
		projects: projects,
		cache:    cache,
		audit:    audit,
		notifier: notifier,
	}
}

// ownProject verifies the project belongs to the tenant. The cache is keyed
// by project ID alone, so every project-scoped entry point must establish
// ownership before the cache is read or written; otherwise a caller holding
// a foreign project UUID could read or clobber another tenant's listing.
func (s *Service) ownProject(ctx context.Context, tenantID, projectID uuid.UUID) error {
	if _, err := s.projects.GetByID(ctx, tenantID, projectID); err != nil {
		return err
	}
	return nil
}

// List returns a project's items, consulting the cache first. A cache hit
// never touches the item store. On a miss the store is queried and the cache
// repopulated with the fixed TTL. Cache errors on this path degrade to a
// store-only read rather than failing the request. Returns
// domain.ErrNotFound, without touching the cache, when the project is not
// the tenant's.
func (s *Service) List(ctx context.Context, tenantID, projectID uuid.UUID) ([]*domain.InventoryItem, error) {
	if err := s.ownProject(ctx, tenantID, projectID); err != nil {
		return nil, fmt.Errorf("inventory.List: %w", err)
	}

	cached, hit, err := s.cache.Get(ctx, projectID)
	if err != nil {
		log.Warn().Err(err).Str("project_id", projectID.String()).Msg("inventory: cache read failed, falling back to store")
	}
	if hit {
		return cached, nil
	}

	items, err := s.items.ListByProject(ctx, tenantID, projectID)
	if err != nil {
		return nil, fmt.Errorf("inventory.List: %w", err)
	}

	if putErr := s.cache.Put(ctx, projectID, items); putErr != nil {
		log.Warn().Err(putErr).Str("project_id", projectID.String()).Msg("inventory: cache populate failed")
	}

	return items, nil
}

// Create inserts a new item under a project and runs the mutation pipeline.
// The project ID comes from the route, never from the payload. Returns
// domain.ErrNotFound with no side effects when the project is not the
// tenant's.
func (s *Service) Create(ctx context.Context, tenantID, projectID uuid.UUID, name string, quantity int, actor domain.Actor) (*domain.InventoryItem, error) {
	if err := s.ownProject(ctx, tenantID, projectID); err != nil {
		return nil, fmt.Errorf("inventory.Create: %w", err)
	}

	item, err := domain.NewInventoryItem(tenantID, projectID, name, quantity)
	if err != nil {
		return nil, fmt.Errorf("inventory.Create: %w", err)
	}

	if err := s.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("inventory.Create: %w", err)
	}

	s.notifier.Broadcast(ctx, tenantID, notify.Event{
		Event:  notify.EventInventoryUpdated,
		Action: notify.ActionCreate,
		Item:   item,
	})

	if err := s.cache.Invalidate(ctx, projectID); err != nil {
		return nil, fmt.Errorf("inventory.Create: %w", err)
	}

	if err := s.recordAudit(ctx, tenantID, item, domain.OpCreate, actor); err != nil {
		return nil, fmt.Errorf("inventory.Create: %w", err)
	}

	return item, nil
}

// Get returns a single item by ID, or domain.ErrNotFound. Single-item reads
// skip the listing cache.
func (s *Service) Get(ctx context.Context, tenantID, id uuid.UUID) (*domain.InventoryItem, error) {
	item, err := s.items.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("inventory.Get: %w", err)
	}
	return item, nil
}

// Update applies a partial update and runs the mutation pipeline. Returns
// domain.ErrNotFound with no side effects when the item does not exist.
func (s *Service) Update(ctx context.Context, tenantID, id uuid.UUID, patch domain.ItemPatch, actor domain.Actor) (*domain.InventoryItem, error) {
	item, err := s.items.Patch(ctx, tenantID, id, patch)
	if err != nil {
		return nil, fmt.Errorf("inventory.Update: %w", err)
	}

	s.notifier.Broadcast(ctx, tenantID, notify.Event{
		Event:  notify.EventInventoryUpdated,
		Action: notify.ActionUpdate,
		Item:   item,
	})

	if err := s.cache.Invalidate(ctx, item.ProjectID); err != nil {
		return nil, fmt.Errorf("inventory.Update: %w", err)
	}

	if err := s.recordAudit(ctx, tenantID, item, domain.OpUpdate, actor); err != nil {
		return nil, fmt.Errorf("inventory.Update: %w", err)
	}

	return item, nil
}

// Delete removes an item and runs the mutation pipeline. Returns the removed
// item's last-known state, or domain.ErrNotFound with no side effects.
func (s *Service) Delete(ctx context.Context, tenantID, id uuid.UUID, actor domain.Actor) (*domain.InventoryItem, error) {
	item, err := s.items.Delete(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("inventory.Delete: %w", err)
	}

	s.notifier.Broadcast(ctx, tenantID, notify.Event{
		Event:  notify.EventInventoryUpdated,
		Action: notify.ActionDelete,
		Item:   item,
	})

	if err := s.cache.Invalidate(ctx, item.ProjectID); err != nil {
		return nil, fmt.Errorf("inventory.Delete: %w", err)
	}

	if err := s.recordAudit(ctx, tenantID, item, domain.OpDelete, actor); err != nil {
		return nil, fmt.Errorf("inventory.Delete: %w", err)
	}

	return item, nil
}

// Import bulk-inserts items under a project. The whole batch shares one
// broadcast, one cache invalidation, and one IMPORT audit entry carrying the
// row count.
func (s *Service) Import(ctx context.Context, tenantID, projectID uuid.UUID, items []*domain.InventoryItem, actor domain.Actor) error {
	if err := s.ownProject(ctx, tenantID, projectID); err != nil {
		return fmt.Errorf("inventory.Import: %w", err)
	}

	if err := s.items.CreateBatch(ctx, items); err != nil {
		return fmt.Errorf("inventory.Import: %w", err)
	}

	s.notifier.Broadcast(ctx, tenantID, notify.Event{
		Event:  notify.EventInventoryUpdated,
		Action: notify.ActionImport,
		Count:  len(items),
	})

	if err := s.cache.Invalidate(ctx, projectID); err != nil {
		return fmt.Errorf("inventory.Import: %w", err)
	}

	entry := &domain.AuditEntry{
		ID:         uuid.New(),
		TenantID:   tenantID,
		Collection: auditCollection,
		DocumentID: projectID,
		Operation:  domain.OpImport,
		Actor:      actor.OrUnknown(),
		Details:    map[string]any{"count": len(items)},
		CreatedAt:  time.Now(),
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		return fmt.Errorf("inventory.Import: %w", err)
	}

	return nil
}

func (s *Service) recordAudit(ctx context.Context, tenantID uuid.UUID, item *domain.InventoryItem, op string, actor domain.Actor) error {
	entry := &domain.AuditEntry{
		ID:         uuid.New(),
		TenantID:   tenantID,
		Collection: auditCollection,
		DocumentID: item.ID,
		Operation:  op,
		Actor:      actor.OrUnknown(),
		Details:    snapshot(item),
		CreatedAt:  time.Now(),
	}

	if err := s.audit.Record(ctx, entry); err != nil {
		return fmt.Errorf("record audit: %w", err)
	}

	return nil
}

// snapshot captures the item state stored in the audit entry's details.
func snapshot(item *domain.InventoryItem) map[string]any {
	return map[string]any{
		"id":         item.ID.String(),
		"project_id": item.ProjectID.String(),
		"name":       item.Name,
		"quantity":   item.Quantity,
	}
}
