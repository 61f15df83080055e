package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stocktrail/stocktrail/internal/domain"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// --- Users ---

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (id, tenant_id, email, password_hash, name, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.TenantID, u.Email, u.PasswordHash, u.Name, u.Role,
		u.CreatedAt, u.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("userRepo.Create: %w", domain.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("userRepo.Create: %w", err)
	}

	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.User, error) {
	var u domain.User

	err := r.pool.QueryRow(ctx,
		`SELECT id, tenant_id, email, password_hash, name, role, created_at, updated_at
		 FROM users WHERE tenant_id = $1 AND id = $2`,
		tenantID, id,
	).Scan(&u.ID, &u.TenantID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("userRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("userRepo.GetByID: %w", err)
	}

	return &u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*domain.User, error) {
	var u domain.User

	err := r.pool.QueryRow(ctx,
		`SELECT id, tenant_id, email, password_hash, name, role, created_at, updated_at
		 FROM users WHERE tenant_id = $1 AND email = $2`,
		tenantID, email,
	).Scan(&u.ID, &u.TenantID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("userRepo.GetByEmail: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("userRepo.GetByEmail: %w", err)
	}

	return &u, nil
}

func (r *UserRepo) Update(ctx context.Context, u *domain.User) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET email = $1, password_hash = $2, name = $3, role = $4, updated_at = $5
		 WHERE tenant_id = $6 AND id = $7`,
		u.Email, u.PasswordHash, u.Name, u.Role, u.UpdatedAt, u.TenantID, u.ID,
	)
	if err != nil {
		return fmt.Errorf("userRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("userRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *UserRepo) List(ctx context.Context, tenantID uuid.UUID) ([]*domain.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, tenant_id, email, password_hash, name, role, created_at, updated_at
		 FROM users WHERE tenant_id = $1 ORDER BY created_at`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("userRepo.List: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var u domain.User

		err = rows.Scan(&u.ID, &u.TenantID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.CreatedAt, &u.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("userRepo.List: scan: %w", err)
		}
		users = append(users, &u)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("userRepo.List: rows: %w", err)
	}

	return users, nil
}

// --- API keys ---

func (r *UserRepo) CreateAPIKey(ctx context.Context, key *domain.APIKey) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO api_keys (id, tenant_id, user_id, name, key_hash, prefix, last_used_at, expires_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		key.ID, key.TenantID, key.UserID, key.Name, key.KeyHash, key.Prefix,
		key.LastUsedAt, key.ExpiresAt, key.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("userRepo.CreateAPIKey: %w", err)
	}

	return nil
}

// GetAPIKeyByPrefix looks up an API key by its 8-char prefix. A uuid.Nil
// tenantID matches any tenant; API key auth has no tenant context yet.
func (r *UserRepo) GetAPIKeyByPrefix(ctx context.Context, tenantID uuid.UUID, prefix string) (*domain.APIKey, error) {
	var key domain.APIKey

	err := r.pool.QueryRow(ctx,
		`SELECT id, tenant_id, user_id, name, key_hash, prefix, last_used_at, expires_at, created_at
		 FROM api_keys WHERE ($1 = '00000000-0000-0000-0000-000000000000'::uuid OR tenant_id = $1) AND prefix = $2`,
		tenantID, prefix,
	).Scan(&key.ID, &key.TenantID, &key.UserID, &key.Name, &key.KeyHash, &key.Prefix,
		&key.LastUsedAt, &key.ExpiresAt, &key.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("userRepo.GetAPIKeyByPrefix: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("userRepo.GetAPIKeyByPrefix: %w", err)
	}

	return &key, nil
}

func (r *UserRepo) ListAPIKeys(ctx context.Context, tenantID, userID uuid.UUID) ([]*domain.APIKey, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, tenant_id, user_id, name, key_hash, prefix, last_used_at, expires_at, created_at
		 FROM api_keys WHERE tenant_id = $1 AND user_id = $2 ORDER BY created_at`,
		tenantID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("userRepo.ListAPIKeys: %w", err)
	}
	defer rows.Close()

	var keys []*domain.APIKey
	for rows.Next() {
		var key domain.APIKey

		err = rows.Scan(&key.ID, &key.TenantID, &key.UserID, &key.Name, &key.KeyHash, &key.Prefix,
			&key.LastUsedAt, &key.ExpiresAt, &key.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("userRepo.ListAPIKeys: scan: %w", err)
		}
		keys = append(keys, &key)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("userRepo.ListAPIKeys: rows: %w", err)
	}

	return keys, nil
}

func (r *UserRepo) DeleteAPIKey(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM api_keys WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("userRepo.DeleteAPIKey: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("userRepo.DeleteAPIKey: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *UserRepo) UpdateAPIKeyLastUsed(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE api_keys SET last_used_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("userRepo.UpdateAPIKeyLastUsed: %w", err)
	}

	return nil
}
