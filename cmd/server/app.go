package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/dverdin/gymplan-api/internal/config"
	"github.com/dverdin/gymplan-api/internal/platform/postgres"
	"github.com/dverdin/gymplan-api/internal/service"
	"github.com/dverdin/gymplan-api/internal/service/auth"
	"github.com/dverdin/gymplan-api/internal/service/identity"
	"github.com/dverdin/gymplan-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	sportStore      store.SportStore
	exerciseStore   store.ExerciseStore
	routineStore    store.RoutineStore
	goalStore       store.GoalStore
	assignmentStore store.AssignmentStore

	// External collaborators
	tokenValidator auth.TokenValidator
	identityClient identity.Client

	// Service interfaces
	sportService      service.SportService
	exerciseService   service.ExerciseService
	routineService    service.RoutineService
	goalService       service.GoalService
	assignmentService service.AssignmentService
	studentService    service.StudentService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.tokenValidator, err = auth.NewTokenValidator(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token validator: %w", err)
	}

	app.identityClient = identity.NewHTTPClient(cfg.Identity, logger)

	// Stores
	app.sportStore = postgres.NewPostgresSportStore(db, logger)
	app.exerciseStore = postgres.NewPostgresExerciseStore(db, logger)
	app.routineStore = postgres.NewPostgresRoutineStore(db, logger)
	app.goalStore = postgres.NewPostgresGoalStore(db, logger)
	app.assignmentStore = postgres.NewPostgresAssignmentStore(db, logger)

	// Services
	app.sportService, err = service.NewSportService(app.sportStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create sport service: %w", err)
	}

	app.exerciseService, err = service.NewExerciseService(app.exerciseStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create exercise service: %w", err)
	}

	app.routineService, err = service.NewRoutineService(app.routineStore, app.exerciseStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create routine service: %w", err)
	}

	app.goalService, err = service.NewGoalService(app.goalStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal service: %w", err)
	}

	app.assignmentService, err = service.NewAssignmentService(
		app.assignmentStore,
		app.routineStore,
		app.goalStore,
		app.identityClient,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create assignment service: %w", err)
	}

	app.studentService, err = service.NewStudentService(app.identityClient, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create student service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
