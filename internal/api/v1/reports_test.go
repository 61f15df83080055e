package v1_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/stocktrail/stocktrail/internal/api/v1"
	"github.com/stocktrail/stocktrail/internal/domain"
)

// ---------------------------------------------------------------------------
// GET /projects/{projectID}/report/csv
// ---------------------------------------------------------------------------

func TestExportCSV(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		tid := uuid.New()
		pid := uuid.New()
		now := time.Now().Truncate(time.Second)
		items := []*domain.InventoryItem{
			{ID: uuid.New(), TenantID: tid, ProjectID: pid, Name: "bolts", Quantity: 120, CreatedAt: now, UpdatedAt: now},
		}

		_, api := humatest.New(t)
		svc := &mockInventoryService{
			listFunc: func(_ context.Context, _, _ uuid.UUID) ([]*domain.InventoryItem, error) {
				return items, nil
			},
		}
		v1.RegisterReportRoutes(api, &mockDataStore{}, svc)

		resp := api.GetCtx(roleCtx(tid, domain.RoleAccountant), "/projects/"+pid.String()+"/report/csv")

		require.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, "text/csv", resp.Header().Get("Content-Type"))

		body := resp.Body.String()
		assert.True(t, strings.HasPrefix(body, "id,name,quantity,created_at"), "header row first")
		assert.Contains(t, body, "bolts,120")
	})

	t.Run("missing_tenant_context", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		v1.RegisterReportRoutes(api, &mockDataStore{}, &mockInventoryService{})

		resp := api.GetCtx(context.Background(), "/projects/"+uuid.NewString()+"/report/csv")

		assert.Equal(t, http.StatusForbidden, resp.Code)
	})
}

// ---------------------------------------------------------------------------
// POST /projects/{projectID}/report/import
// ---------------------------------------------------------------------------

func TestImportCSV(t *testing.T) {
	t.Parallel()

	const csvBody = "name,quantity\nbolts,120\nnuts,80\n"

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		tid := uuid.New()
		pid := uuid.New()

		_, api := humatest.New(t)
		svc := &mockInventoryService{
			importFunc: func(_ context.Context, tenantID, projectID uuid.UUID, items []*domain.InventoryItem, actor domain.Actor) error {
				assert.Equal(t, tid, tenantID)
				assert.Equal(t, pid, projectID)
				require.Len(t, items, 2)
				assert.Equal(t, "bolts", items[0].Name)
				assert.Equal(t, 120, items[0].Quantity)
				assert.Equal(t, "alice", actor.OrUnknown())
				return nil
			},
		}
		v1.RegisterReportRoutes(api, &mockDataStore{}, svc)

		resp := api.PostCtx(userCtx(tid, uuid.New(), "alice", domain.RoleData),
			"/projects/"+pid.String()+"/report/import",
			"Content-Type: text/csv",
			strings.NewReader(csvBody))

		require.Equal(t, http.StatusOK, resp.Code)

		var body struct {
			Imported int `json:"imported"`
		}
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		assert.Equal(t, 2, body.Imported)
	})

	t.Run("logistic_officer_forbidden", func(t *testing.T) {
		t.Parallel()

		tid := uuid.New()
		_, api := humatest.New(t)
		v1.RegisterReportRoutes(api, &mockDataStore{}, &mockInventoryService{})

		resp := api.PostCtx(roleCtx(tid, domain.RoleLogistics),
			"/projects/"+uuid.NewString()+"/report/import",
			"Content-Type: text/csv",
			strings.NewReader(csvBody))

		assert.Equal(t, http.StatusForbidden, resp.Code)
	})

	t.Run("bad_header", func(t *testing.T) {
		t.Parallel()

		tid := uuid.New()
		_, api := humatest.New(t)
		v1.RegisterReportRoutes(api, &mockDataStore{}, &mockInventoryService{})

		resp := api.PostCtx(managerCtx(tid),
			"/projects/"+uuid.NewString()+"/report/import",
			"Content-Type: text/csv",
			strings.NewReader("sku,count\nX1,5\n"))

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("empty_file", func(t *testing.T) {
		t.Parallel()

		tid := uuid.New()
		_, api := humatest.New(t)
		v1.RegisterReportRoutes(api, &mockDataStore{}, &mockInventoryService{})

		resp := api.PostCtx(managerCtx(tid),
			"/projects/"+uuid.NewString()+"/report/import",
			"Content-Type: text/csv",
			strings.NewReader("name,quantity\n"))

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

// ---------------------------------------------------------------------------
// GET /projects/{projectID}/report/chart
// ---------------------------------------------------------------------------

func TestInventoryChart(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		tid := uuid.New()
		pid := uuid.New()
		items := []*domain.InventoryItem{
			{ID: uuid.New(), TenantID: tid, ProjectID: pid, Name: "bolts", Quantity: 120},
		}

		_, api := humatest.New(t)
		svc := &mockInventoryService{
			listFunc: func(_ context.Context, _, _ uuid.UUID) ([]*domain.InventoryItem, error) {
				return items, nil
			},
		}
		v1.RegisterReportRoutes(api, &mockDataStore{}, svc)

		resp := api.GetCtx(roleCtx(tid, domain.RoleAccountant), "/projects/"+pid.String()+"/report/chart")

		require.Equal(t, http.StatusOK, resp.Code)

		var body struct {
			URL string `json:"url"`
		}
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		assert.True(t, strings.HasPrefix(body.URL, "https://quickchart.io/chart?c="))
	})
}

// ---------------------------------------------------------------------------
// GET /projects/{projectID}/report/pdf
// ---------------------------------------------------------------------------

func TestProjectPDF(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		tid := uuid.New()
		pid := uuid.New()
		items := []*domain.InventoryItem{
			{ID: uuid.New(), TenantID: tid, ProjectID: pid, Name: "bolts", Quantity: 120},
			{ID: uuid.New(), TenantID: tid, ProjectID: pid, Name: "nuts", Quantity: 80},
		}

		_, api := humatest.New(t)
		store := &mockDataStore{projects: &mockProjectRepo{
			getByIDFunc: func(_ context.Context, tenantID, id uuid.UUID) (*domain.Project, error) {
				assert.Equal(t, tid, tenantID)
				assert.Equal(t, pid, id)
				return &domain.Project{ID: pid, TenantID: tid, Name: "Warehouse", Description: "north site"}, nil
			},
		}}
		svc := &mockInventoryService{
			listFunc: func(_ context.Context, _, _ uuid.UUID) ([]*domain.InventoryItem, error) {
				return items, nil
			},
		}
		v1.RegisterReportRoutes(api, store, svc)

		resp := api.GetCtx(roleCtx(tid, domain.RoleAccountant), "/projects/"+pid.String()+"/report/pdf")

		require.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, "application/pdf", resp.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="project_report.pdf"`, resp.Header().Get("Content-Disposition"))
		assert.True(t, strings.HasPrefix(resp.Body.String(), "%PDF"), "body starts with a PDF header")
	})

	t.Run("unknown_project", func(t *testing.T) {
		t.Parallel()

		tid := uuid.New()
		_, api := humatest.New(t)
		store := &mockDataStore{projects: &mockProjectRepo{
			getByIDFunc: func(_ context.Context, _, _ uuid.UUID) (*domain.Project, error) {
				return nil, domain.ErrNotFound
			},
		}}
		v1.RegisterReportRoutes(api, store, &mockInventoryService{})

		resp := api.GetCtx(roleCtx(tid, domain.RoleManager), "/projects/"+uuid.NewString()+"/report/pdf")

		assert.Equal(t, http.StatusNotFound, resp.Code)
	})

	t.Run("bad_start_date", func(t *testing.T) {
		t.Parallel()

		tid := uuid.New()
		_, api := humatest.New(t)
		v1.RegisterReportRoutes(api, &mockDataStore{}, &mockInventoryService{})

		resp := api.GetCtx(roleCtx(tid, domain.RoleManager),
			"/projects/"+uuid.NewString()+"/report/pdf?start_date=notadate")

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("missing_tenant_context", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		v1.RegisterReportRoutes(api, &mockDataStore{}, &mockInventoryService{})

		resp := api.GetCtx(context.Background(), "/projects/"+uuid.NewString()+"/report/pdf")

		assert.Equal(t, http.StatusForbidden, resp.Code)
	})
}
