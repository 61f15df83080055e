package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/stocktrail/stocktrail/internal/api/ws"
	"github.com/stocktrail/stocktrail/internal/auth"
	"github.com/stocktrail/stocktrail/internal/config"
	"github.com/stocktrail/stocktrail/internal/domain"
	"github.com/stocktrail/stocktrail/internal/inventory"
	"github.com/stocktrail/stocktrail/internal/notify"
	"github.com/stocktrail/stocktrail/internal/server/middleware"
	"github.com/stocktrail/stocktrail/internal/store/postgres"
	redisstore "github.com/stocktrail/stocktrail/internal/store/redis"
)

// Server is the HTTP server that wires all application routes and middleware.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	store      *postgres.Store
	auth       *auth.Service
	inventory  *inventory.Service
	notifier   *notify.Notifier
	wsHub      *ws.Hub
	cfg        *config.Config
}

// New creates a Server with all routes wired. ctx bounds the background
// goroutines owned by the rate limiters; cancel it on shutdown.
func New(ctx context.Context, cfg *config.Config, store *postgres.Store, redisClient *redisstore.Client, authSvc *auth.Service, invSvc *inventory.Service, notifier *notify.Notifier) *Server {
	router := chi.NewRouter()

	// Global middleware stack.
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(chimw.Logger)
	router.Use(chimw.Recoverer)
	router.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-API-Key", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)

	hub := ws.NewHub(redisClient.PubSub())

	s := &Server{
		router:    router,
		store:     store,
		auth:      authSvc,
		inventory: invSvc,
		notifier:  notifier,
		wsHub:     hub,
		cfg:       cfg,
		httpServer: &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}

	// Mount API routes on /api/v1 with three sub-groups:
	// 1. Unauthenticated group for auth and tenant bootstrap.
	// 2. Authenticated group for tenant-scoped resources.
	// 3. Nested role-gated group for the audit trail.
	router.Route("/api/v1", func(r chi.Router) {
		// Unauthenticated routes (register, login, refresh, tenant bootstrap).
		// Rate limited by client IP since there is no tenant to key on yet.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimitByIP(ctx, 10, 20))

			authConfig := huma.DefaultConfig("StockTrail Auth API", "1.0.0")
			authConfig.Servers = []*huma.Server{
				{URL: "/api/v1"},
			}
			authAPI := humachi.New(r, authConfig)
			registerAuthRoutes(authAPI, store, authSvc)
		})

		// Authenticated routes (everything else).
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT.Secret, store.Users()))
			r.Use(middleware.RequireTenant())
			r.Use(middleware.RateLimit(ctx, 100, 200))

			apiConfig := huma.DefaultConfig("StockTrail API", "1.0.0")
			apiConfig.Servers = []*huma.Server{
				{URL: "/api/v1"},
			}
			api := humachi.New(r, apiConfig)
			registerAPIRoutes(api, store, authSvc, invSvc, notifier)

			// Audit trail is restricted to managers and accountants.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(domain.RoleManager, domain.RoleAccountant))

				auditConfig := huma.DefaultConfig("StockTrail Audit API", "1.0.0")
				auditConfig.Servers = []*huma.Server{
					{URL: "/api/v1"},
				}
				auditAPI := humachi.New(r, auditConfig)
				registerAuditRoutes(auditAPI, store)
			})
		})
	})

	// WebSocket routes.
	router.Route("/ws", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT.Secret, store.Users()))
		registerWSRoutes(r, hub)
	})

	// Health check (unauthenticated).
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	return s
}

// Start begins listening for HTTP requests.
func (s *Server) Start(_ context.Context) error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.Start: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}
