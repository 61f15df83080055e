package v1_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/stocktrail/stocktrail/internal/api/v1"
	"github.com/stocktrail/stocktrail/internal/domain"
)

func TestCreateAPIKeyEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		tid := uuid.New()
		uid := uuid.New()

		_, api := humatest.New(t)
		authSvc := &mockAuthService{
			generateAPIKeyFunc: func(_ context.Context, tenantID, userID uuid.UUID, name string, expiresAt *time.Time) (string, *domain.APIKey, error) {
				assert.Equal(t, tid, tenantID)
				assert.Equal(t, uid, userID)
				assert.Equal(t, "ci-key", name)
				assert.Nil(t, expiresAt)
				return "stkt_rawsecret", &domain.APIKey{ID: uuid.New(), TenantID: tenantID, UserID: userID, Name: name, KeyHash: "hash", Prefix: "stkt_raw"}, nil
			},
		}
		v1.RegisterAPIKeyRoutes(api, &mockDataStore{}, authSvc)

		resp := api.PostCtx(userCtx(tid, uid, "alice", domain.RoleManager), "/apikeys", map[string]any{
			"name": "ci-key",
		})

		require.Equal(t, http.StatusCreated, resp.Code)

		var body struct {
			Key    string        `json:"key"`
			APIKey domain.APIKey `json:"api_key"`
		}
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		assert.Equal(t, "stkt_rawsecret", body.Key)
		assert.Empty(t, body.APIKey.KeyHash, "hash must never leave the server")
	})

	t.Run("past_expiry_rejected", func(t *testing.T) {
		t.Parallel()

		tid := uuid.New()
		_, api := humatest.New(t)
		v1.RegisterAPIKeyRoutes(api, &mockDataStore{}, &mockAuthService{})

		resp := api.PostCtx(userCtx(tid, uuid.New(), "alice", domain.RoleManager), "/apikeys", map[string]any{
			"name":       "old-key",
			"expires_at": time.Now().Add(-time.Hour).Format(time.RFC3339),
		})

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("missing_user_context", func(t *testing.T) {
		t.Parallel()

		tid := uuid.New()
		_, api := humatest.New(t)
		v1.RegisterAPIKeyRoutes(api, &mockDataStore{}, &mockAuthService{})

		resp := api.PostCtx(tenantCtx(tid), "/apikeys", map[string]any{
			"name": "ci-key",
		})

		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})
}

func TestListAPIKeysEndpoint(t *testing.T) {
	t.Parallel()

	tid := uuid.New()
	uid := uuid.New()
	keys := []*domain.APIKey{
		{ID: uuid.New(), TenantID: tid, UserID: uid, Name: "ci-key", KeyHash: "hash-1", Prefix: "stkt_aaa"},
		{ID: uuid.New(), TenantID: tid, UserID: uid, Name: "backup-key", KeyHash: "hash-2", Prefix: "stkt_bbb"},
	}

	_, api := humatest.New(t)
	store := &mockDataStore{
		users: &mockUserRepo{
			listAPIKeysFunc: func(_ context.Context, tenantID, userID uuid.UUID) ([]*domain.APIKey, error) {
				assert.Equal(t, tid, tenantID)
				assert.Equal(t, uid, userID)
				return keys, nil
			},
		},
	}
	v1.RegisterAPIKeyRoutes(api, store, &mockAuthService{})

	resp := api.GetCtx(userCtx(tid, uid, "alice", domain.RoleManager), "/apikeys")

	require.Equal(t, http.StatusOK, resp.Code)

	var body []domain.APIKey
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body, 2)
	for _, k := range body {
		assert.Empty(t, k.KeyHash)
	}
}

func TestDeleteAPIKeyEndpoint(t *testing.T) {
	t.Parallel()

	tid := uuid.New()
	uid := uuid.New()
	keyID := uuid.New()

	t.Run("owner_can_revoke", func(t *testing.T) {
		t.Parallel()

		deleted := false
		_, api := humatest.New(t)
		store := &mockDataStore{
			users: &mockUserRepo{
				listAPIKeysFunc: func(_ context.Context, _, _ uuid.UUID) ([]*domain.APIKey, error) {
					return []*domain.APIKey{{ID: keyID, TenantID: tid, UserID: uid}}, nil
				},
				deleteAPIKeyFunc: func(_ context.Context, id uuid.UUID) error {
					assert.Equal(t, keyID, id)
					deleted = true
					return nil
				},
			},
		}
		v1.RegisterAPIKeyRoutes(api, store, &mockAuthService{})

		resp := api.DeleteCtx(userCtx(tid, uid, "alice", domain.RoleManager), "/apikeys/"+keyID.String())

		assert.Equal(t, http.StatusNoContent, resp.Code)
		assert.True(t, deleted)
	})

	t.Run("foreign_key_is_404", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		store := &mockDataStore{
			users: &mockUserRepo{
				listAPIKeysFunc: func(_ context.Context, _, _ uuid.UUID) ([]*domain.APIKey, error) {
					return nil, nil
				},
			},
		}
		v1.RegisterAPIKeyRoutes(api, store, &mockAuthService{})

		resp := api.DeleteCtx(userCtx(tid, uid, "alice", domain.RoleManager), "/apikeys/"+uuid.NewString())

		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}
