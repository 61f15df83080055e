package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stocktrail/stocktrail/internal/domain"
)

type ItemRepo struct {
	pool *pgxpool.Pool
}

func NewItemRepo(pool *pgxpool.Pool) *ItemRepo {
	return &ItemRepo{pool: pool}
}

const itemColumns = `id, tenant_id, project_id, name, quantity, created_at, updated_at`

func (r *ItemRepo) Create(ctx context.Context, item *domain.InventoryItem) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO inventory_items (id, tenant_id, project_id, name, quantity, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		item.ID, item.TenantID, item.ProjectID, item.Name, item.Quantity,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("itemRepo.Create: %w", err)
	}

	return nil
}

func (r *ItemRepo) CreateBatch(ctx context.Context, items []*domain.InventoryItem) error {
	if len(items) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(
			`INSERT INTO inventory_items (id, tenant_id, project_id, name, quantity, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			item.ID, item.TenantID, item.ProjectID, item.Name, item.Quantity,
			item.CreatedAt, item.UpdatedAt,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range items {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("itemRepo.CreateBatch: %w", err)
		}
	}

	return nil
}

func (r *ItemRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.InventoryItem, error) {
	var item domain.InventoryItem

	err := r.pool.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM inventory_items WHERE tenant_id = $1 AND id = $2`,
		tenantID, id,
	).Scan(&item.ID, &item.TenantID, &item.ProjectID, &item.Name, &item.Quantity,
		&item.CreatedAt, &item.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("itemRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("itemRepo.GetByID: %w", err)
	}

	return &item, nil
}

func (r *ItemRepo) ListByProject(ctx context.Context, tenantID, projectID uuid.UUID) ([]*domain.InventoryItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+itemColumns+` FROM inventory_items
		 WHERE tenant_id = $1 AND project_id = $2 ORDER BY created_at`,
		tenantID, projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("itemRepo.ListByProject: %w", err)
	}
	defer rows.Close()

	var items []*domain.InventoryItem
	for rows.Next() {
		var item domain.InventoryItem

		err = rows.Scan(&item.ID, &item.TenantID, &item.ProjectID, &item.Name, &item.Quantity,
			&item.CreatedAt, &item.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("itemRepo.ListByProject: scan: %w", err)
		}
		items = append(items, &item)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("itemRepo.ListByProject: rows: %w", err)
	}

	return items, nil
}

// Patch applies a partial update and returns the post-update row in a single
// round trip. COALESCE leaves nil patch fields untouched.
func (r *ItemRepo) Patch(ctx context.Context, tenantID, id uuid.UUID, patch domain.ItemPatch) (*domain.InventoryItem, error) {
	var item domain.InventoryItem

	err := r.pool.QueryRow(ctx,
		`UPDATE inventory_items
		 SET name = COALESCE($1, name), quantity = COALESCE($2, quantity), updated_at = $3
		 WHERE tenant_id = $4 AND id = $5
		 RETURNING `+itemColumns,
		patch.Name, patch.Quantity, time.Now(), tenantID, id,
	).Scan(&item.ID, &item.TenantID, &item.ProjectID, &item.Name, &item.Quantity,
		&item.CreatedAt, &item.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("itemRepo.Patch: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("itemRepo.Patch: %w", err)
	}

	return &item, nil
}

func (r *ItemRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) (*domain.InventoryItem, error) {
	var item domain.InventoryItem

	err := r.pool.QueryRow(ctx,
		`DELETE FROM inventory_items WHERE tenant_id = $1 AND id = $2
		 RETURNING `+itemColumns,
		tenantID, id,
	).Scan(&item.ID, &item.TenantID, &item.ProjectID, &item.Name, &item.Quantity,
		&item.CreatedAt, &item.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("itemRepo.Delete: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("itemRepo.Delete: %w", err)
	}

	return &item, nil
}

func (r *ItemRepo) Summary(ctx context.Context, tenantID uuid.UUID) ([]*domain.ProjectSummary, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT p.id, p.name, COUNT(i.id), COALESCE(SUM(i.quantity), 0)
		 FROM projects p
		 LEFT JOIN inventory_items i ON i.project_id = p.id AND i.tenant_id = p.tenant_id
		 WHERE p.tenant_id = $1
		 GROUP BY p.id, p.name
		 ORDER BY p.name`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("itemRepo.Summary: %w", err)
	}
	defer rows.Close()

	var summaries []*domain.ProjectSummary
	for rows.Next() {
		var s domain.ProjectSummary

		err = rows.Scan(&s.ProjectID, &s.ProjectName, &s.ItemCount, &s.TotalQuantity)
		if err != nil {
			return nil, fmt.Errorf("itemRepo.Summary: scan: %w", err)
		}
		summaries = append(summaries, &s)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("itemRepo.Summary: rows: %w", err)
	}

	return summaries, nil
}
