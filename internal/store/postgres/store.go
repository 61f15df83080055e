package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stocktrail/stocktrail/internal/domain"
)

type Store struct {
	pool     *pgxpool.Pool
	tenants  *TenantRepo
	users    *UserRepo
	projects *ProjectRepo
	items    *ItemRepo
	audit    *AuditRepo
}

func New(ctx context.Context, dsn string, maxConns int32) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: parse config: %w", err)
	}

	cfg.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: connect: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	return &Store{
		pool:     pool,
		tenants:  NewTenantRepo(pool),
		users:    NewUserRepo(pool),
		projects: NewProjectRepo(pool),
		items:    NewItemRepo(pool),
		audit:    NewAuditRepo(pool),
	}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Tenants() domain.TenantRepository   { return s.tenants }
func (s *Store) Users() domain.UserRepository       { return s.users }
func (s *Store) Projects() domain.ProjectRepository { return s.projects }
func (s *Store) Items() domain.ItemRepository       { return s.items }
func (s *Store) Audit() domain.AuditRepository      { return s.audit }

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
