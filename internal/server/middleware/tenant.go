package middleware

import (
	"net/http"

	"github.com/google/uuid"
)

// RequireTenant rejects requests whose context lacks a usable tenant ID. Runs
// after Auth; every tenant-scoped route group mounts it so handlers can trust
// TenantIDFromContext.
func RequireTenant() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tid, ok := TenantIDFromContext(r.Context()); !ok || tid == uuid.Nil {
				http.Error(w, `{"title":"Forbidden","status":403,"detail":"valid tenant required"}`, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
