package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Audit operations. One entry is recorded per successful mutation.
const (
	OpCreate = "CREATE"
	OpUpdate = "UPDATE"
	OpDelete = "DELETE"
	OpImport = "IMPORT"
)

// UnknownActor is recorded when a mutation carries no authenticated identity.
const UnknownActor = "Unknown"

// Actor is an optional authenticated principal name. The zero value means
// the request was anonymous.
type Actor struct {
	Name string
}

// OrUnknown resolves the actor to a recordable string, substituting the
// placeholder for absent identity.
func (a Actor) OrUnknown() string {
	if a.Name == "" {
		return UnknownActor
	}
	return a.Name
}

type AuditEntry struct {
	ID         uuid.UUID
	TenantID   uuid.UUID
	Collection string // "InventoryItem", "Project"
	DocumentID uuid.UUID
	Operation  string // one of the Op* constants
	Actor      string // principal name or UnknownActor
	Details    map[string]any
	CreatedAt  time.Time
}

type AuditRepository interface {
	Record(ctx context.Context, entry *AuditEntry) error
	ListByTenant(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*AuditEntry, error)
	ListByDocument(ctx context.Context, tenantID uuid.UUID, collection string, documentID uuid.UUID) ([]*AuditEntry, error)
}
