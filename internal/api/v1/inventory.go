package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/stocktrail/stocktrail/internal/domain"
	"github.com/stocktrail/stocktrail/internal/server/middleware"
)

type ListInventoryInput struct {
	ProjectID uuid.UUID `path:"projectID" doc:"Project ID"`
}

type ListInventoryOutput struct {
	Body []*domain.InventoryItem
}

type CreateItemInput struct {
	ProjectID uuid.UUID `path:"projectID" doc:"Project ID"`
	Body      struct {
		Name     string `json:"name" minLength:"1" maxLength:"255" doc:"Item name"`
		Quantity int    `json:"quantity" minimum:"0" doc:"Stock quantity"`
	}
}

type CreateItemOutput struct {
	Status int
	Body   *domain.InventoryItem
}

type GetItemInput struct {
	ID uuid.UUID `path:"id" doc:"Item ID"`
}

type GetItemOutput struct {
	Body *domain.InventoryItem
}

type UpdateItemInput struct {
	ID   uuid.UUID `path:"id" doc:"Item ID"`
	Body struct {
		Name     *string `json:"name,omitempty" maxLength:"255" doc:"Item name"`
		Quantity *int    `json:"quantity,omitempty" minimum:"0" doc:"Stock quantity"`
	}
}

type UpdateItemOutput struct {
	Body *domain.InventoryItem
}

type DeleteItemInput struct {
	ID uuid.UUID `path:"id" doc:"Item ID"`
}

type DeleteItemOutput struct {
	Body *domain.InventoryItem
}

func RegisterInventoryRoutes(api huma.API, svc InventoryService) {
	huma.Register(api, huma.Operation{
		OperationID: "list-inventory",
		Method:      http.MethodGet,
		Path:        "/projects/{projectID}/inventory",
		Summary:     "List a project's inventory items",
		Description: "Served from the listing cache when warm; otherwise reads the store and repopulates it.",
		Tags:        []string{"Inventory"},
	}, func(ctx context.Context, input *ListInventoryInput) (*ListInventoryOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}

		items, err := svc.List(ctx, tenantID, input.ProjectID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("project not found")
			}
			return nil, huma.Error500InternalServerError("failed to list inventory", err)
		}

		return &ListInventoryOutput{Body: items}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-item",
		Method:      http.MethodGet,
		Path:        "/inventory/{id}",
		Summary:     "Get an inventory item",
		Tags:        []string{"Inventory"},
	}, func(ctx context.Context, input *GetItemInput) (*GetItemOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}

		item, err := svc.Get(ctx, tenantID, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("item not found")
			}
			return nil, huma.Error500InternalServerError("failed to get item", err)
		}

		return &GetItemOutput{Body: item}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-item",
		Method:        http.MethodPost,
		Path:          "/projects/{projectID}/inventory",
		Summary:       "Add an inventory item",
		Tags:          []string{"Inventory"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *CreateItemInput) (*CreateItemOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}
		if err := requireMutationRole(ctx); err != nil {
			return nil, err
		}

		item, err := svc.Create(ctx, tenantID, input.ProjectID, input.Body.Name, input.Body.Quantity, middleware.ActorFromContext(ctx))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("project not found")
			}
			return nil, huma.Error500InternalServerError("failed to create item", err)
		}

		return &CreateItemOutput{Status: http.StatusCreated, Body: item}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-item",
		Method:      http.MethodPut,
		Path:        "/inventory/{id}",
		Summary:     "Update an inventory item",
		Description: "Partial merge: absent fields keep their stored values.",
		Tags:        []string{"Inventory"},
	}, func(ctx context.Context, input *UpdateItemInput) (*UpdateItemOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}
		if err := requireMutationRole(ctx); err != nil {
			return nil, err
		}

		patch := domain.ItemPatch{Name: input.Body.Name, Quantity: input.Body.Quantity}
		item, err := svc.Update(ctx, tenantID, input.ID, patch, middleware.ActorFromContext(ctx))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("item not found")
			}
			return nil, huma.Error500InternalServerError("failed to update item", err)
		}

		return &UpdateItemOutput{Body: item}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-item",
		Method:      http.MethodDelete,
		Path:        "/inventory/{id}",
		Summary:     "Delete an inventory item",
		Tags:        []string{"Inventory"},
	}, func(ctx context.Context, input *DeleteItemInput) (*DeleteItemOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}
		if err := requireMutationRole(ctx); err != nil {
			return nil, err
		}

		item, err := svc.Delete(ctx, tenantID, input.ID, middleware.ActorFromContext(ctx))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("item not found")
			}
			return nil, huma.Error500InternalServerError("failed to delete item", err)
		}

		return &DeleteItemOutput{Body: item}, nil
	})
}
