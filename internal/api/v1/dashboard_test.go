package v1_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/stocktrail/stocktrail/internal/api/v1"
	"github.com/stocktrail/stocktrail/internal/domain"
)

func TestDashboardSummary(t *testing.T) {
	t.Parallel()

	t.Run("aggregates_tenant_totals", func(t *testing.T) {
		t.Parallel()

		tid := uuid.New()
		summaries := []*domain.ProjectSummary{
			{ProjectID: uuid.New(), ProjectName: "warehouse-a", ItemCount: 3, TotalQuantity: 200},
			{ProjectID: uuid.New(), ProjectName: "warehouse-b", ItemCount: 1, TotalQuantity: 50},
		}

		_, api := humatest.New(t)
		store := &mockDataStore{
			items: &mockItemRepo{
				summaryFunc: func(_ context.Context, tenantID uuid.UUID) ([]*domain.ProjectSummary, error) {
					assert.Equal(t, tid, tenantID)
					return summaries, nil
				},
			},
		}
		v1.RegisterDashboardRoutes(api, store)

		resp := api.GetCtx(roleCtx(tid, domain.RoleAccountant), "/dashboard/summary")

		require.Equal(t, http.StatusOK, resp.Code)

		var body struct {
			Projects      []domain.ProjectSummary `json:"projects"`
			TotalItems    int64                   `json:"total_items"`
			TotalQuantity int64                   `json:"total_quantity"`
		}
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		require.Len(t, body.Projects, 2)
		assert.Equal(t, int64(4), body.TotalItems)
		assert.Equal(t, int64(250), body.TotalQuantity)
	})

	t.Run("empty_tenant", func(t *testing.T) {
		t.Parallel()

		tid := uuid.New()
		_, api := humatest.New(t)
		store := &mockDataStore{
			items: &mockItemRepo{
				summaryFunc: func(_ context.Context, _ uuid.UUID) ([]*domain.ProjectSummary, error) {
					return nil, nil
				},
			},
		}
		v1.RegisterDashboardRoutes(api, store)

		resp := api.GetCtx(managerCtx(tid), "/dashboard/summary")

		require.Equal(t, http.StatusOK, resp.Code)

		var body struct {
			TotalItems    int64 `json:"total_items"`
			TotalQuantity int64 `json:"total_quantity"`
		}
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		assert.Zero(t, body.TotalItems)
		assert.Zero(t, body.TotalQuantity)
	})

	t.Run("store_error", func(t *testing.T) {
		t.Parallel()

		tid := uuid.New()
		_, api := humatest.New(t)
		store := &mockDataStore{
			items: &mockItemRepo{
				summaryFunc: func(_ context.Context, _ uuid.UUID) ([]*domain.ProjectSummary, error) {
					return nil, errors.New("pg: query timeout")
				},
			},
		}
		v1.RegisterDashboardRoutes(api, store)

		resp := api.GetCtx(managerCtx(tid), "/dashboard/summary")

		assert.Equal(t, http.StatusInternalServerError, resp.Code)
	})
}
