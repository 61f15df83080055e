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

type CreateAPIKeyInput struct {
	Body struct {
		Name      string     `json:"name" minLength:"1" maxLength:"255" doc:"Key label"`
		ExpiresAt *time.Time `json:"expires_at,omitempty" doc:"Optional expiry"`
	}
}

type CreateAPIKeyOutput struct {
	Status int
	Body   struct {
		Key    string         `json:"key" doc:"Raw API key, shown only once"`
		APIKey *domain.APIKey `json:"api_key"`
	}
}

type ListAPIKeysInput struct{}

type ListAPIKeysOutput struct {
	Body []*domain.APIKey
}

type DeleteAPIKeyInput struct {
	ID uuid.UUID `path:"id" doc:"API key ID"`
}

func RegisterAPIKeyRoutes(api huma.API, store DataStore, authSvc AuthService) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-apikey",
		Method:        http.MethodPost,
		Path:          "/apikeys",
		Summary:       "Create an API key for the current user",
		Tags:          []string{"APIKeys"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *CreateAPIKeyInput) (*CreateAPIKeyOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		if input.Body.ExpiresAt != nil && input.Body.ExpiresAt.Before(time.Now()) {
			return nil, huma.Error400BadRequest("expires_at must be in the future")
		}

		rawKey, key, err := authSvc.GenerateAPIKey(ctx, tenantID, userID, input.Body.Name, input.Body.ExpiresAt)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to create api key", err)
		}

		// Never return the stored hash.
		key.KeyHash = ""

		out := &CreateAPIKeyOutput{Status: http.StatusCreated}
		out.Body.Key = rawKey
		out.Body.APIKey = key
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-apikeys",
		Method:      http.MethodGet,
		Path:        "/apikeys",
		Summary:     "List the current user's API keys",
		Tags:        []string{"APIKeys"},
	}, func(ctx context.Context, _ *ListAPIKeysInput) (*ListAPIKeysOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		keys, err := store.Users().ListAPIKeys(ctx, tenantID, userID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list api keys", err)
		}

		for _, k := range keys {
			k.KeyHash = ""
		}

		return &ListAPIKeysOutput{Body: keys}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-apikey",
		Method:      http.MethodDelete,
		Path:        "/apikeys/{id}",
		Summary:     "Revoke an API key",
		Tags:        []string{"APIKeys"},
	}, func(ctx context.Context, input *DeleteAPIKeyInput) (*struct{}, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		// Only the key's owner may revoke it.
		keys, err := store.Users().ListAPIKeys(ctx, tenantID, userID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list api keys", err)
		}
		owned := false
		for _, k := range keys {
			if k.ID == input.ID {
				owned = true
				break
			}
		}
		if !owned {
			return nil, huma.Error404NotFound("api key not found")
		}

		if err := store.Users().DeleteAPIKey(ctx, input.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("api key not found")
			}
			return nil, huma.Error500InternalServerError("failed to delete api key", err)
		}

		return nil, nil
	})
}
