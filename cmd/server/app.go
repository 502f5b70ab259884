package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/geotask-api/internal/config"
	"github.com/phrazzld/geotask-api/internal/events"
	"github.com/phrazzld/geotask-api/internal/platform/postgres"
	"github.com/phrazzld/geotask-api/internal/service"
	"github.com/phrazzld/geotask-api/internal/service/auth"
	"github.com/phrazzld/geotask-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config

	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore     store.UserStore
	taskStore     store.TaskStore
	locationStore store.LocationStore
	categoryStore store.CategoryStore

	// Services
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	locationRegistry service.LocationRegistry
	categoryCatalog  service.CategoryCatalog
	proximityMatcher service.ProximityMatcher
	taskLifecycle    service.TaskLifecycleManager

	eventEmitter events.EventEmitter
}

// newApplication creates a new application instance with all dependencies initialized.
// The database connection must already be established.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"access_token_lifetime", cfg.Auth.AccessTokenLifetime.String(),
		"refresh_token_lifetime", cfg.Auth.RefreshTokenLifetime.String())

	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewPostgresUserStore(db, cfg.Auth.BCryptCost, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)
	app.locationStore = postgres.NewPostgresLocationStore(db, logger)
	app.categoryStore = postgres.NewPostgresCategoryStore(db, logger)

	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(events.NewAuditLogHandler(logger))
	app.eventEmitter = emitter

	app.locationRegistry, err = service.NewLocationRegistry(app.locationStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create location registry: %w", err)
	}

	app.categoryCatalog, err = service.NewCategoryCatalog(app.categoryStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create category catalog: %w", err)
	}

	app.proximityMatcher, err = service.NewProximityMatcher(app.locationRegistry, app.taskStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create proximity matcher: %w", err)
	}

	app.taskLifecycle, err = service.NewTaskLifecycleManager(
		app.taskStore,
		app.locationStore,
		app.eventEmitter,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task lifecycle manager: %w", err)
	}

	return app, nil
}

// Run starts the HTTP server and blocks until ctx is canceled or the
// server fails. Resources are released before returning.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()
	return app.startHTTPServer(ctx, app.setupRouter())
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db == nil {
		return
	}
	app.logger.Info("Closing database connection")
	if err := app.db.Close(); err != nil {
		app.logger.Error("Failed to close database connection", "error", err)
	}
}
