package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/stocktrail/stocktrail/internal/domain"
	"github.com/stocktrail/stocktrail/internal/notify"
	"github.com/stocktrail/stocktrail/internal/server/middleware"
)

// Roles allowed to mutate projects and inventory. Accountants get read-only
// access plus the audit trail.
var mutationRoles = map[string]struct{}{
	domain.RoleManager:   {},
	domain.RoleData:      {},
	domain.RoleLogistics: {},
}

func requireMutationRole(ctx context.Context) error {
	role, ok := middleware.RoleFromContext(ctx)
	if !ok {
		return huma.Error401Unauthorized("authentication required")
	}
	if _, allowed := mutationRoles[role]; !allowed {
		return huma.Error403Forbidden("role not permitted to modify records")
	}
	return nil
}

type CreateProjectInput struct {
	Body struct {
		Name        string `json:"name" minLength:"1" maxLength:"255" doc:"Project name"`
		Description string `json:"description,omitempty" maxLength:"2000" doc:"Project description"`
	}
}

type CreateProjectOutput struct {
	Body *domain.Project
}

type ListProjectsInput struct{}

type ListProjectsOutput struct {
	Body []*domain.Project
}

type GetProjectInput struct {
	ID uuid.UUID `path:"id" doc:"Project ID"`
}

type GetProjectOutput struct {
	Body *domain.Project
}

type UpdateProjectInput struct {
	ID   uuid.UUID `path:"id" doc:"Project ID"`
	Body struct {
		Name        string `json:"name,omitempty" maxLength:"255" doc:"Project name"`
		Description string `json:"description,omitempty" maxLength:"2000" doc:"Project description"`
	}
}

type UpdateProjectOutput struct {
	Body *domain.Project
}

type DeleteProjectInput struct {
	ID uuid.UUID `path:"id" doc:"Project ID"`
}

type DeleteProjectOutput struct {
	Body *domain.Project
}

func RegisterProjectRoutes(api huma.API, store DataStore, notifier notify.Broadcaster) {
	huma.Register(api, huma.Operation{
		OperationID: "create-project",
		Method:      http.MethodPost,
		Path:        "/projects",
		Summary:     "Create a new project",
		Tags:        []string{"Projects"},
	}, func(ctx context.Context, input *CreateProjectInput) (*CreateProjectOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}
		if err := requireMutationRole(ctx); err != nil {
			return nil, err
		}

		p, err := domain.NewProject(tenantID, input.Body.Name, input.Body.Description)
		if err != nil {
			return nil, huma.Error400BadRequest(err.Error())
		}

		if createErr := store.Projects().Create(ctx, p); createErr != nil {
			return nil, huma.Error500InternalServerError("failed to create project", createErr)
		}

		notifier.Broadcast(ctx, tenantID, notify.Event{
			Event:   notify.EventProjectUpdated,
			Action:  notify.ActionCreate,
			Project: p,
		})

		return &CreateProjectOutput{Body: p}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-projects",
		Method:      http.MethodGet,
		Path:        "/projects",
		Summary:     "List projects in current tenant",
		Tags:        []string{"Projects"},
	}, func(ctx context.Context, _ *ListProjectsInput) (*ListProjectsOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}

		projects, err := store.Projects().List(ctx, tenantID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list projects", err)
		}

		return &ListProjectsOutput{Body: projects}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-project",
		Method:      http.MethodGet,
		Path:        "/projects/{id}",
		Summary:     "Get a project by ID",
		Tags:        []string{"Projects"},
	}, func(ctx context.Context, input *GetProjectInput) (*GetProjectOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}

		p, err := store.Projects().GetByID(ctx, tenantID, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("project not found")
			}
			return nil, huma.Error500InternalServerError("failed to get project", err)
		}

		return &GetProjectOutput{Body: p}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-project",
		Method:      http.MethodPut,
		Path:        "/projects/{id}",
		Summary:     "Update a project",
		Tags:        []string{"Projects"},
	}, func(ctx context.Context, input *UpdateProjectInput) (*UpdateProjectOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}
		if err := requireMutationRole(ctx); err != nil {
			return nil, err
		}

		existing, err := store.Projects().GetByID(ctx, tenantID, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("project not found")
			}
			return nil, huma.Error500InternalServerError("failed to get project", err)
		}

		if input.Body.Name != "" {
			existing.Name = input.Body.Name
		}
		if input.Body.Description != "" {
			existing.Description = input.Body.Description
		}

		if err := store.Projects().Update(ctx, existing); err != nil {
			return nil, huma.Error500InternalServerError("failed to update project", err)
		}

		notifier.Broadcast(ctx, tenantID, notify.Event{
			Event:   notify.EventProjectUpdated,
			Action:  notify.ActionUpdate,
			Project: existing,
		})

		return &UpdateProjectOutput{Body: existing}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-project",
		Method:      http.MethodDelete,
		Path:        "/projects/{id}",
		Summary:     "Delete a project",
		Tags:        []string{"Projects"},
	}, func(ctx context.Context, input *DeleteProjectInput) (*DeleteProjectOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}
		if err := requireMutationRole(ctx); err != nil {
			return nil, err
		}

		removed, err := store.Projects().Delete(ctx, tenantID, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("project not found")
			}
			return nil, huma.Error500InternalServerError("failed to delete project", err)
		}

		notifier.Broadcast(ctx, tenantID, notify.Event{
			Event:   notify.EventProjectUpdated,
			Action:  notify.ActionDelete,
			Project: removed,
		})

		return &DeleteProjectOutput{Body: removed}, nil
	})
}
