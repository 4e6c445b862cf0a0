package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"sales-dashboard/internal/config"
	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/handlers"
	"sales-dashboard/internal/observability"
)

type Server struct {
	router         chi.Router
	logger         *slog.Logger
	metrics        *observability.Metrics
	apiHandlers    *handlers.APIHandlers
	sseHandlers    *handlers.SSEHandlers
	exportHandlers *handlers.ExportHandlers
}

type TemplateHandlers struct {
	Dashboard http.HandlerFunc
}

func NewServer(dashboard handlers.Renderer, cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger, templateHandlers *TemplateHandlers) *Server {
	s := &Server{
		router:         chi.NewRouter(),
		logger:         logger,
		metrics:        metrics,
		apiHandlers:    handlers.NewAPIHandlers(dashboard, logger),
		sseHandlers:    handlers.NewSSEHandlers(dashboard, logger),
		exportHandlers: handlers.NewExportHandlers(dashboard, logger),
	}
	s.setupRoutes(cfg.Security, templateHandlers)
	return s
}

func (s *Server) setupRoutes(security config.SecurityConfig, templateHandlers *TemplateHandlers) {
	r := s.router
	r.Use(s.metrics.Middleware)

	// Dashboard routes
	r.Get("/", templateHandlers.Dashboard)
	r.Get("/health", s.apiHandlers.HandleHealth)
	r.Get("/admin/stats", s.apiHandlers.HandleStats)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	// REST API endpoints
	r.Route("/api", func(r chi.Router) {
		r.Get("/dashboard", s.apiHandlers.HandleDashboard)
		r.Get("/records", s.apiHandlers.HandleRecords)
		r.Get("/revenue/{view}", s.apiHandlers.HandleRevenue)
		r.Get("/sales/{view}", s.apiHandlers.HandleSales)
		r.Get("/sellers", s.apiHandlers.HandleSellers)
	})

	// Datastar SSE endpoints
	r.Route("/sse", func(r chi.Router) {
		r.Get("/dashboard", s.sseHandlers.HandleDashboard)
		r.Get("/revenue", s.sseHandlers.HandleRevenue)
		r.Get("/sales", s.sseHandlers.HandleSales)
		r.Get("/sellers", s.sseHandlers.HandleSellers)
	})

	// Exports fetch the full record set, so they get a tighter budget.
	r.Route("/export", func(r chi.Router) {
		r.Use(httprate.Limit(security.ExportPerMinute, time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(s.exportLimited),
		))
		r.Get("/records.csv", s.exportHandlers.HandleRecordsCSV)
	})
}

func (s *Server) exportLimited(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())
	errors.WriteError(w, s.logger, errors.RateLimit("Too many exports, try again in a minute"), requestID)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
