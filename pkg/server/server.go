package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mission-control/core/internal/config"
	"github.com/mission-control/core/pkg/catalog"
	"github.com/mission-control/core/pkg/handlers/analytics"
	"github.com/mission-control/core/pkg/handlers/health"
	"github.com/mission-control/core/pkg/handlers/ideas"
	"github.com/mission-control/core/pkg/handlers/projects"
	scheduleh "github.com/mission-control/core/pkg/handlers/schedule"
	"github.com/mission-control/core/pkg/handlers/tasks"
	"github.com/mission-control/core/pkg/handlers/team"
	"github.com/mission-control/core/pkg/jobsource"
	"github.com/mission-control/core/pkg/logger"
	"github.com/mission-control/core/pkg/metrics"
	"github.com/mission-control/core/pkg/middleware"
	"github.com/mission-control/core/pkg/schedule"
	"github.com/mission-control/core/pkg/services"
	"github.com/mission-control/core/pkg/store"
)

// Server represents the API server
type Server struct {
	router   *http.ServeMux
	http     *http.Server
	addr     string
	logger   *logger.Logger
	store    store.Store
	metrics  *metrics.Metrics
	handlers struct {
		health    *health.Handler
		schedule  *scheduleh.Handler
		tasks     *tasks.Handler
		ideas     *ideas.Handler
		projects  *projects.Handler
		team      *team.Handler
		analytics *analytics.Handler
	}
}

// New creates a new server instance backed by the configured store and the openclaw CLI
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Server, error) {
	st, err := store.Open(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	m := metrics.New("mission_control")
	source := jobsource.NewCLI(cfg.Source, log, m)

	srv, err := NewWithDeps(cfg, st, source, m, log)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	return srv, nil
}

// NewWithDeps wires the server from already constructed dependencies
func NewWithDeps(cfg *config.Config, st store.Store, source jobsource.JobLister, m *metrics.Metrics, log *logger.Logger) (*Server, error) {
	cat, err := catalog.Default()
	if err != nil {
		return nil, err
	}

	server := &Server{
		router:  http.NewServeMux(),
		addr:    cfg.Server.Host + ":" + cfg.Server.Port,
		logger:  log,
		store:   st,
		metrics: m,
	}

	taskService := services.NewTaskService(st, cat, log)
	ideaService := services.NewIdeaService(st, cat, log)
	projectService := services.NewProjectService(cat, source, cfg.Trading.KalshiStatePath, log)
	analyticsService := services.NewAnalyticsService(st, log)

	// Initialize handlers
	server.handlers.health = health.NewHandler(log)
	server.handlers.schedule = scheduleh.NewHandler(schedule.NewService(source, log), log)
	server.handlers.tasks = tasks.NewHandler(taskService, log)
	server.handlers.ideas = ideas.NewHandler(ideaService, log)
	server.handlers.projects = projects.NewHandler(projectService, taskService, log)
	server.handlers.team = team.NewHandler(cat, log)
	server.handlers.analytics = analytics.NewHandler(analyticsService, taskService, log)

	// Setup routes
	server.setupRoutes()

	server.http = &http.Server{
		Addr:              server.addr,
		Handler:           server.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return server, nil
}

// handle registers a route with CORS, request ids and metrics
func (s *Server) handle(pattern string, h http.HandlerFunc) {
	s.router.HandleFunc(pattern, middleware.CORS(middleware.RequestID(s.logger, middleware.Instrument(pattern, s.metrics, h))))
}

// setupRoutes configures all the API routes
func (s *Server) setupRoutes() {
	// Health check endpoint
	s.handle("/health", s.handlers.health.HealthCheck)
	s.router.Handle("/metrics", s.metrics.Handler())

	// Simple root endpoint
	s.handle("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if _, err := fmt.Fprintf(w, "Mission Control API - OK"); err != nil {
			http.Error(w, "Failed to write response", http.StatusInternalServerError)
		}
	})

	// Schedule endpoints
	s.handle("/api/schedule", s.handlers.schedule.Events)
	s.handle("/api/schedule/upcoming", s.handlers.schedule.Upcoming)
	s.handle("/api/schedule/always-running", s.handlers.schedule.AlwaysRunning)
	s.handle("/api/schedule/tasks", s.handlers.schedule.Scheduled)

	// Task endpoints
	s.handle("/api/task", s.handlers.tasks.Task)
	s.handle("/api/tasks", s.handlers.tasks.Board)
	s.handle("/api/notifications", s.handlers.tasks.Notifications)

	// Idea endpoints
	s.handle("/api/ideas", s.handlers.ideas.Ideas)
	s.handle("/api/ideas/build", s.handlers.ideas.Build)
	s.handle("/api/ideas/remove", s.handlers.ideas.Remove)

	// Overview endpoints
	s.handle("/api/projects", s.handlers.projects.Projects)
	s.handle("/api/systems", s.handlers.projects.Systems)
	s.handle("/api/dashboard", s.handlers.projects.Dashboard)
	s.handle("/api/team", s.handlers.team.List)

	// Analytics endpoints
	s.handle("/api/analytics", s.handlers.analytics.Stats)
	s.handle("/api/analytics/progress", s.handlers.analytics.Progress)
}

// Handler exposes the routed handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.logger.Info().
		Str("action", "server_start").
		Str("addr", s.addr).
		Msg("Starting API server")

	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed to start on %s: %w", s.addr, err)
	}

	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Close releases the store
func (s *Server) Close() {
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Error().Err(err).Str("action", "store_close_failed").Msg("Failed to close store")
			return
		}
		s.logger.Info().Msg("Store closed")
	}
}
