package v1

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/stocktrail/stocktrail/internal/domain"
	"github.com/stocktrail/stocktrail/internal/server/middleware"
)

type CreateTenantInput struct {
	Body struct {
		Name string `json:"name" minLength:"1" maxLength:"255" doc:"Tenant name"`
		Slug string `json:"slug" minLength:"1" maxLength:"63" pattern:"^[a-z0-9]+(?:-[a-z0-9]+)*$" doc:"URL-safe slug (lowercase alphanumeric with hyphens)"`
	}
}

type CreateTenantOutput struct {
	Status int
	Body   *domain.Tenant
}

type CurrentTenantInput struct{}

type CurrentTenantOutput struct {
	Body *domain.Tenant
}

// RegisterTenantBootstrapRoutes mounts unauthenticated tenant creation. A new
// workspace has no users yet, so the first tenant of an installation cannot
// require credentials.
func RegisterTenantBootstrapRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-tenant",
		Method:        http.MethodPost,
		Path:          "/tenants",
		Summary:       "Create a new tenant",
		Tags:          []string{"Tenants"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *CreateTenantInput) (*CreateTenantOutput, error) {
		if _, err := store.Tenants().GetBySlug(ctx, input.Body.Slug); err == nil {
			return nil, huma.Error409Conflict("slug already taken")
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, huma.Error500InternalServerError("failed to check slug", err)
		}

		now := time.Now()
		t := &domain.Tenant{
			ID:        uuid.New(),
			Name:      input.Body.Name,
			Slug:      input.Body.Slug,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := store.Tenants().Create(ctx, t); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return nil, huma.Error409Conflict("slug already taken")
			}
			return nil, huma.Error500InternalServerError("failed to create tenant", err)
		}

		return &CreateTenantOutput{Status: http.StatusCreated, Body: t}, nil
	})
}

// RegisterTenantRoutes mounts the authenticated tenant surface.
func RegisterTenantRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "current-tenant",
		Method:      http.MethodGet,
		Path:        "/tenants/current",
		Summary:     "Get the caller's tenant",
		Tags:        []string{"Tenants"},
	}, func(ctx context.Context, _ *CurrentTenantInput) (*CurrentTenantOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}

		t, err := store.Tenants().GetByID(ctx, tenantID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("tenant not found")
			}
			return nil, huma.Error500InternalServerError("failed to get tenant", err)
		}

		return &CurrentTenantOutput{Body: t}, nil
	})
}
