package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Supported user roles.
const (
	RoleManager    = "manager"
	RoleAccountant = "accountant"
	RoleData       = "data-manager"
	RoleLogistics  = "logistic-officer"
)

type User struct {
	ID           uuid.UUID
	TenantID     uuid.UUID
	Email        string
	PasswordHash string // argon2id
	Name         string
	Role         string // one of the Role* constants
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type APIKey struct {
	ID         uuid.UUID
	TenantID   uuid.UUID
	UserID     uuid.UUID
	Name       string
	KeyHash    string     // SHA-256
	Prefix     string     // first 8 chars for identification
	LastUsedAt *time.Time // nullable
	ExpiresAt  *time.Time // nullable
	CreatedAt  time.Time
}

// ValidRole reports whether role is one of the supported role values.
func ValidRole(role string) bool {
	switch role {
	case RoleManager, RoleAccountant, RoleData, RoleLogistics:
		return true
	}
	return false
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*User, error)
	Update(ctx context.Context, u *User) error
	List(ctx context.Context, tenantID uuid.UUID) ([]*User, error)

	// API keys
	CreateAPIKey(ctx context.Context, key *APIKey) error
	GetAPIKeyByPrefix(ctx context.Context, tenantID uuid.UUID, prefix string) (*APIKey, error)
	ListAPIKeys(ctx context.Context, tenantID, userID uuid.UUID) ([]*APIKey, error)
	DeleteAPIKey(ctx context.Context, id uuid.UUID) error
	UpdateAPIKeyLastUsed(ctx context.Context, id uuid.UUID) error
}
