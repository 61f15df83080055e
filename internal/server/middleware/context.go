package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/stocktrail/stocktrail/internal/domain"
)

type contextKey string

const (
	ContextKeyTenantID contextKey = "tenant_id"
	ContextKeyUserID   contextKey = "user_id"
	ContextKeyUserName contextKey = "user_name"
	ContextKeyUserRole contextKey = "role"
)

func TenantIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	v, ok := ctx.Value(ContextKeyTenantID).(uuid.UUID)
	return v, ok
}

func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	v, ok := ctx.Value(ContextKeyUserID).(uuid.UUID)
	return v, ok
}

func UserNameFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ContextKeyUserName).(string)
	return v, ok
}

func RoleFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ContextKeyUserRole).(string)
	return v, ok
}

// ActorFromContext resolves the audit actor for the request. A request with no
// authenticated display name yields the zero Actor, which renders as "Unknown".
func ActorFromContext(ctx context.Context) domain.Actor {
	name, _ := UserNameFromContext(ctx)
	return domain.Actor{Name: name}
}
