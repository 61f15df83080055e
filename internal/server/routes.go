package server

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	v1 "github.com/stocktrail/stocktrail/internal/api/v1"
	"github.com/stocktrail/stocktrail/internal/api/ws"
	"github.com/stocktrail/stocktrail/internal/auth"
	"github.com/stocktrail/stocktrail/internal/inventory"
	"github.com/stocktrail/stocktrail/internal/notify"
	"github.com/stocktrail/stocktrail/internal/store/postgres"
)

func registerAuthRoutes(api huma.API, store *postgres.Store, authSvc *auth.Service) {
	v1.RegisterAuthRoutes(api, store, authSvc)
	v1.RegisterTenantBootstrapRoutes(api, store)
}

func registerAPIRoutes(api huma.API, store *postgres.Store, authSvc *auth.Service, invSvc *inventory.Service, notifier notify.Broadcaster) {
	v1.RegisterTenantRoutes(api, store)
	v1.RegisterProjectRoutes(api, store, notifier)
	v1.RegisterInventoryRoutes(api, invSvc)
	v1.RegisterDashboardRoutes(api, store)
	v1.RegisterReportRoutes(api, store, invSvc)
	v1.RegisterAPIKeyRoutes(api, store, authSvc)
}

func registerAuditRoutes(api huma.API, store *postgres.Store) {
	v1.RegisterAuditRoutes(api, store)
}

func registerWSRoutes(r chi.Router, hub *ws.Hub) {
	r.Get("/inventory", hub.ServeInventory)
}
