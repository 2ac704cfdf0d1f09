package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"strings"
	"syscall"

	"github.com/go-chi/chi/v5"

	"storydash/internal/charts"
	"storydash/internal/config"
	"storydash/internal/dataprocessing"
	apierrors "storydash/internal/errors"
	"storydash/internal/infrastructure"
	"storydash/internal/metrics"
	customMiddleware "storydash/internal/middleware"
	"storydash/internal/services"
	handlers "storydash/internal/transport/http"
)

// Application represents the main application container
type Application struct {
	Config           *config.Config
	Paths            *config.Paths
	Router           *chi.Mux
	Server           *http.Server
	Logger           *slog.Logger
	Metrics          *metrics.Registry
	Tracing          *infrastructure.Tracing
	DashboardService *services.DashboardService
	HealthService    *services.HealthService
}

// NewApplication wires the dashboard from a loaded configuration. The logger
// is expected to come from infrastructure.InitializeLogger.
func NewApplication(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", config.AppVersion))

	paths, err := config.ResolvePaths(cfg.Sources)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	paths.LogPathResolution(logger)

	tracing, err := infrastructure.InitializeTracing(cfg.Tracing, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	app := &Application{
		Config:  cfg,
		Paths:   paths,
		Logger:  logger,
		Metrics: metrics.NewRegistry(),
		Tracing: tracing,
	}

	app.initializeServices()
	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices initializes all application services
func (a *Application) initializeServices() {
	source := dataprocessing.NewCSVSource(a.Paths, a.Config.Sources.Columns)
	a.DashboardService = services.NewDashboardService(a.Config, a.Paths, source, a.Metrics, a.Logger)
	a.HealthService = services.NewHealthService(config.AppVersion, a.Paths, a.Logger)
}

// setupRouter configures the HTTP router with all routes.
// Ordering: RequestID → RealIP → Tracing → Metrics → ErrorMiddleware → SecurityHeaders → RateLimit
func (a *Application) setupRouter() {
	r := chi.NewRouter()
	errorHandler := apierrors.NewErrorHandler(a.Logger, false)

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.Tracing())
	r.Use(customMiddleware.Metrics(a.Metrics))
	r.Use(apierrors.NewErrorMiddleware(errorHandler, a.Logger).Handler)
	r.Use(customMiddleware.SecurityHeaders)
	r.Use(customMiddleware.Compress(5))

	if a.Config.Server.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Server.RateLimit.RPS,
			a.Config.Server.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	r.Get("/", handlers.ServeDashboard(a.Paths, a.DashboardService.DefaultRows(), a.Logger))
	r.Handle("/metrics", a.Metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(customMiddleware.Timeout(config.DefaultRequestTimeout))

		healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/health/live", healthHandler.LivenessCheck)
		r.Get("/version", healthHandler.Version)

		dashboardHandler := handlers.NewDashboardHandler(
			a.DashboardService,
			charts.NewRenderer(charts.DefaultSize),
			a.Logger,
			errorHandler,
		)
		r.Mount("/charts", dashboardHandler.Routes())
		r.Get("/geo/choropleth", dashboardHandler.GetChoropleth)
		r.Get("/export.xlsx", dashboardHandler.ExportWorkbook)
	})

	a.Router = r
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Start starts the HTTP server in the background. A listen failure cancels ctx
// through cancel.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "Starting application",
		slog.String("name", config.AppName),
		slog.String("version", config.AppVersion),
		slog.Int("port", a.Config.Server.Port),
		slog.String("level", a.Config.Logging.Level))

	if err := a.performStartupHealthCheck(ctx); err != nil {
		a.Logger.WarnContext(ctx, "Startup health check warnings", slog.String("warnings", err.Error()))
	}

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	a.Logger.InfoContext(ctx, "Application started successfully",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))
	return nil
}

// Stop shuts the server down and flushes pending spans
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if err := a.Tracing.Shutdown(shutdownCtx); err != nil {
		a.Logger.ErrorContext(ctx, "Error shutting down tracing", slog.String("error", err.Error()))
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return nil
}

// Run runs the application until interrupted
func (a *Application) Run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	<-ctx.Done()
	a.Logger.InfoContext(ctx, "Received interrupt signal")

	return a.Stop(ctx)
}

// performStartupHealthCheck reports input files that cannot be found. Missing
// files are not fatal: only the charts reading them fail.
func (a *Application) performStartupHealthCheck(ctx context.Context) error {
	missing := a.Paths.MissingSources()
	if !config.FileExists(a.Paths.Boundaries) {
		missing["boundaries"] = a.Paths.Boundaries
	}
	if len(missing) == 0 {
		a.Logger.InfoContext(ctx, "Startup health check passed")
		return nil
	}

	warnings := make([]string, 0, len(missing))
	for name, path := range missing {
		warnings = append(warnings, fmt.Sprintf("%s source not found: %s", name, path))
	}
	return fmt.Errorf("startup health check warnings: %s", strings.Join(warnings, "; "))
}
