package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"linkpulse/internal/config"
	"linkpulse/internal/infrastructure"
	"linkpulse/internal/parsing"
	"linkpulse/internal/store"
	transport "linkpulse/internal/transport/http"
)

const (
	// AppName is the application name used in logs and health responses.
	AppName = "LinkPulse"
	// Version is the application version.
	Version = "1.0.0"
)

// Application holds the wired components of the web service.
type Application struct {
	Config *config.Config
	Logger *slog.Logger
	Router chi.Router
	Server *http.Server

	Parser   *parsing.Parser
	Datasets *store.DatasetStore
}

// NewApplication creates a fully wired application from configuration.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	slog.SetDefault(logger)

	app := &Application{
		Config: cfg,
		Logger: logger,
	}

	app.initializeServices()
	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices constructs the parsing and storage layers.
func (a *Application) initializeServices() {
	a.Parser = parsing.NewParser(a.Logger, parsing.Limits{
		MaxFileSize:  a.Config.Ingest.MaxFileSizeBytes(),
		MaxSheetRows: a.Config.Ingest.MaxSheetRows,
	})
	a.Datasets = store.NewDatasetStore(a.Config.Paths.DataDir, a.Logger)
}

// setupRouter configures the chi router and mounts all route groups.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	uploadHandler := transport.NewUploadHandler(
		a.Parser,
		a.Datasets,
		a.Logger,
		a.Config.Ingest.UploadRPS,
		a.Config.Ingest.UploadBurst,
		a.Config.Ingest.MaxFileSizeBytes(),
	)
	datasetHandler := transport.NewDatasetHandler(a.Datasets, a.Logger)
	healthHandler := transport.NewHealthHandler(Version)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/upload", uploadHandler.Routes())
		r.Mount("/datasets", datasetHandler.Routes())
	})
	r.Mount("/healthz", healthHandler.Routes())

	a.Router = r
}

// createServer builds the HTTP server from configuration.
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Start launches the HTTP server without blocking. A listen failure cancels
// the supplied context.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "Starting application",
		slog.String("name", AppName),
		slog.String("version", Version),
		slog.Int("port", a.Config.Server.Port),
		slog.String("level", a.Config.Logging.Level),
		slog.String("data_dir", a.Config.Paths.DataDir))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	return nil
}

// Stop gracefully shuts down the HTTP server.
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		a.Logger.ErrorContext(ctx, "Server shutdown error", slog.String("error", err.Error()))
		return err
	}

	if err := infrastructure.CloseLogFile(); err != nil {
		a.Logger.ErrorContext(ctx, "Failed to close log file", slog.String("error", err.Error()))
	}

	a.Logger.InfoContext(ctx, "Application stopped")
	return nil
}

// Run starts the application and blocks until an interrupt signal or a
// listen failure, then shuts down gracefully.
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "Received interrupt signal")
	case <-ctx.Done():
	}

	return a.Stop(context.Background())
}
