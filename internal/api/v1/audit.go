package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/stocktrail/stocktrail/internal/domain"
	"github.com/stocktrail/stocktrail/internal/server/middleware"
)

type ListAuditInput struct {
	Limit  int `query:"limit" default:"50" minimum:"1" maximum:"200" doc:"Page size"`
	Offset int `query:"offset" default:"0" minimum:"0" doc:"Page offset"`
}

type ListAuditOutput struct {
	Body []*domain.AuditEntry
}

type DocumentAuditInput struct {
	Collection string    `path:"collection" doc:"Audited collection name"`
	DocumentID uuid.UUID `path:"documentID" doc:"Document ID"`
}

type DocumentAuditOutput struct {
	Body []*domain.AuditEntry
}

// RegisterAuditRoutes exposes the tenant audit trail. The routes are mounted
// inside an RBAC-gated router group, so handlers only need tenant context.
func RegisterAuditRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "list-audit-trail",
		Method:      http.MethodGet,
		Path:        "/audit",
		Summary:     "List the tenant's audit trail, newest first",
		Tags:        []string{"Audit"},
	}, func(ctx context.Context, input *ListAuditInput) (*ListAuditOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}

		entries, err := store.Audit().ListByTenant(ctx, tenantID, input.Limit, input.Offset)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list audit trail", err)
		}

		return &ListAuditOutput{Body: entries}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "document-audit-history",
		Method:      http.MethodGet,
		Path:        "/audit/{collection}/{documentID}",
		Summary:     "List audit entries for a single document",
		Tags:        []string{"Audit"},
	}, func(ctx context.Context, input *DocumentAuditInput) (*DocumentAuditOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}

		entries, err := store.Audit().ListByDocument(ctx, tenantID, input.Collection, input.DocumentID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list document history", err)
		}

		return &DocumentAuditOutput{Body: entries}, nil
	})
}
