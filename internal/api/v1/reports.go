package v1

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/stocktrail/stocktrail/internal/domain"
	"github.com/stocktrail/stocktrail/internal/report"
	"github.com/stocktrail/stocktrail/internal/server/middleware"
)

// CSV import rewrites inventory in bulk, so it is held to the stricter
// data-entry roles.
var importRoles = map[string]struct{}{
	domain.RoleManager: {},
	domain.RoleData:    {},
}

type ExportCSVInput struct {
	ProjectID uuid.UUID `path:"projectID" doc:"Project ID"`
}

type ExportCSVOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

type ImportCSVInput struct {
	ProjectID uuid.UUID `path:"projectID" doc:"Project ID"`
	RawBody   []byte    `contentType:"text/csv"`
}

type ImportCSVOutput struct {
	Body struct {
		Imported int `json:"imported" doc:"Number of rows inserted"`
	}
}

type ChartInput struct {
	ProjectID uuid.UUID `path:"projectID" doc:"Project ID"`
}

type ChartOutput struct {
	Body struct {
		URL string `json:"url" doc:"QuickChart image URL"`
	}
}

type ProjectPDFInput struct {
	ProjectID uuid.UUID `path:"projectID" doc:"Project ID"`
	StartDate string    `query:"start_date" doc:"Include items created on or after this date (YYYY-MM-DD or RFC 3339)"`
	EndDate   string    `query:"end_date" doc:"Include items created on or before this date (YYYY-MM-DD or RFC 3339)"`
}

type ProjectPDFOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

// parseReportDate accepts the date forms report consumers send: a bare date
// or a full RFC 3339 timestamp.
func parseReportDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD or RFC 3339)", value)
	}
	return t, nil
}

func RegisterReportRoutes(api huma.API, store DataStore, svc InventoryService) {
	huma.Register(api, huma.Operation{
		OperationID: "export-inventory-csv",
		Method:      http.MethodGet,
		Path:        "/projects/{projectID}/report/csv",
		Summary:     "Export a project's inventory as CSV",
		Tags:        []string{"Reports"},
	}, func(ctx context.Context, input *ExportCSVInput) (*ExportCSVOutput, error) {
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

		data, err := report.MarshalItemsCSV(items)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to build csv", err)
		}

		return &ExportCSVOutput{ContentType: "text/csv", Body: data}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "import-inventory-csv",
		Method:      http.MethodPost,
		Path:        "/projects/{projectID}/report/import",
		Summary:     "Bulk import inventory items from CSV",
		Tags:        []string{"Reports"},
	}, func(ctx context.Context, input *ImportCSVInput) (*ImportCSVOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}
		role, _ := middleware.RoleFromContext(ctx)
		if _, allowed := importRoles[role]; !allowed {
			return nil, huma.Error403Forbidden("role not permitted to import inventory")
		}

		items, err := report.ParseItemsCSV(bytes.NewReader(input.RawBody), tenantID, input.ProjectID)
		if err != nil {
			if errors.Is(err, report.ErrBadHeader) {
				return nil, huma.Error400BadRequest(err.Error())
			}
			return nil, huma.Error400BadRequest("malformed csv: " + err.Error())
		}
		if len(items) == 0 {
			return nil, huma.Error400BadRequest("csv contains no data rows")
		}

		if err := svc.Import(ctx, tenantID, input.ProjectID, items, middleware.ActorFromContext(ctx)); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("project not found")
			}
			return nil, huma.Error500InternalServerError("failed to import inventory", err)
		}

		out := &ImportCSVOutput{}
		out.Body.Imported = len(items)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "inventory-chart",
		Method:      http.MethodGet,
		Path:        "/projects/{projectID}/report/chart",
		Summary:     "Bar chart URL for a project's item quantities",
		Tags:        []string{"Reports"},
	}, func(ctx context.Context, input *ChartInput) (*ChartOutput, error) {
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

		url, err := report.ChartURL(items)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to build chart url", err)
		}

		out := &ChartOutput{}
		out.Body.URL = url
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "project-report-pdf",
		Method:      http.MethodGet,
		Path:        "/projects/{projectID}/report/pdf",
		Summary:     "Download a PDF report for a project",
		Description: "Project details plus its inventory items, optionally restricted to a creation-date range.",
		Tags:        []string{"Reports"},
	}, func(ctx context.Context, input *ProjectPDFInput) (*ProjectPDFOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}

		var rng report.DateRange
		if input.StartDate != "" {
			from, err := parseReportDate(input.StartDate)
			if err != nil {
				return nil, huma.Error400BadRequest(err.Error())
			}
			rng.From = from
		}
		if input.EndDate != "" {
			to, err := parseReportDate(input.EndDate)
			if err != nil {
				return nil, huma.Error400BadRequest(err.Error())
			}
			rng.To = to
		}

		project, err := store.Projects().GetByID(ctx, tenantID, input.ProjectID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("project not found")
			}
			return nil, huma.Error500InternalServerError("failed to get project", err)
		}

		items, err := svc.List(ctx, tenantID, input.ProjectID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list inventory", err)
		}

		data, err := report.MarshalProjectPDF(project, report.FilterItems(items, rng), rng)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to build pdf", err)
		}

		return &ProjectPDFOutput{
			ContentType:        "application/pdf",
			ContentDisposition: `attachment; filename="project_report.pdf"`,
			Body:               data,
		}, nil
	})
}
