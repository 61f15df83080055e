package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/stocktrail/stocktrail/internal/domain"
	"github.com/stocktrail/stocktrail/internal/server/middleware"
)

type DashboardSummaryInput struct{}

type DashboardSummaryOutput struct {
	Body struct {
		Projects      []*domain.ProjectSummary `json:"projects"`
		TotalItems    int64                    `json:"total_items"`
		TotalQuantity int64                    `json:"total_quantity"`
	}
}

func RegisterDashboardRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "dashboard-summary",
		Method:      http.MethodGet,
		Path:        "/dashboard/summary",
		Summary:     "Per-project inventory totals for the current tenant",
		Tags:        []string{"Dashboard"},
	}, func(ctx context.Context, _ *DashboardSummaryInput) (*DashboardSummaryOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}

		summaries, err := store.Items().Summary(ctx, tenantID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to aggregate inventory", err)
		}

		out := &DashboardSummaryOutput{}
		out.Body.Projects = summaries
		for _, s := range summaries {
			out.Body.TotalItems += s.ItemCount
			out.Body.TotalQuantity += s.TotalQuantity
		}
		return out, nil
	})
}
