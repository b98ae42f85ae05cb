package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dverdin/gymplan-api/internal/domain"
	"github.com/dverdin/gymplan-api/internal/platform/logger"
	"github.com/dverdin/gymplan-api/internal/store"
)

// PostgresExerciseStore implements the store.ExerciseStore interface
// using a PostgreSQL database as the storage backend.
type PostgresExerciseStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresExerciseStore creates a new PostgreSQL implementation of the
// ExerciseStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresExerciseStore(db store.DBTX, logger *slog.Logger) *PostgresExerciseStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresExerciseStore{
		db:     db,
		logger: logger.With(slog.String("component", "exercise_store")),
	}
}

// Ensure PostgresExerciseStore implements store.ExerciseStore interface
var _ store.ExerciseStore = (*PostgresExerciseStore)(nil)

// WithTx implements store.ExerciseStore.WithTx
func (s *PostgresExerciseStore) WithTx(tx *sql.Tx) store.ExerciseStore {
	return &PostgresExerciseStore{
		db:     tx,
		logger: s.logger,
	}
}

// Find implements store.ExerciseStore.Find
// It retrieves catalog exercises matching the filters, ordered by name.
// Returns an empty slice if nothing matches.
func (s *PostgresExerciseStore) Find(
	ctx context.Context,
	filters store.ExerciseFilters,
) ([]*domain.Exercise, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, description, category, sport_id, default_duration_seconds
		FROM exercises
	`
	var args []interface{}
	if filters.SportID != 0 {
		query += ` WHERE sport_id = $1`
		args = append(args, filters.SportID)
	}
	query += ` ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query exercises", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	exercises := []*domain.Exercise{}
	for rows.Next() {
		exercise, err := scanExercise(rows)
		if err != nil {
			log.Error("failed to scan exercise row", slog.String("error", err.Error()))
			return nil, err
		}
		exercises = append(exercises, exercise)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning exercise rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("found exercises",
		slog.Int("count", len(exercises)),
		slog.Int("sport_id", filters.SportID))
	return exercises, nil
}

// FindByID implements store.ExerciseStore.FindByID
// Returns store.ErrExerciseNotFound if the exercise does not exist.
func (s *PostgresExerciseStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Exercise, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, description, category, sport_id, default_duration_seconds
		FROM exercises
		WHERE id = $1
	`

	exercise, err := scanExercise(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("exercise not found", slog.String("exercise_id", id.String()))
			return nil, store.ErrExerciseNotFound
		}
		log.Error("failed to get exercise by ID",
			slog.String("error", err.Error()),
			slog.String("exercise_id", id.String()))
		return nil, MapError(err)
	}

	return exercise, nil
}

// Save implements store.ExerciseStore.Save
// It upserts the exercise keyed by its ID: absent IDs are inserted, existing
// ones have name, description, category, and sport association overwritten.
// Returns store.ErrInvalidEntity if the referenced sport does not exist.
func (s *PostgresExerciseStore) Save(
	ctx context.Context,
	exercise *domain.Exercise,
) (*domain.Exercise, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := exercise.Validate(); err != nil {
		log.Warn("exercise validation failed during save",
			slog.String("error", err.Error()),
			slog.String("exercise_id", exercise.ID.String()))
		return nil, err
	}

	query := `
		INSERT INTO exercises (id, name, description, category, sport_id, default_duration_seconds)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			sport_id = EXCLUDED.sport_id,
			default_duration_seconds = EXCLUDED.default_duration_seconds
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		exercise.ID,
		exercise.Name,
		exercise.Description,
		string(exercise.Category),
		exercise.SportID,
		exercise.DefaultDurationSeconds,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("unknown sport referenced by exercise",
				slog.String("exercise_id", exercise.ID.String()),
				slog.Int("sport_id", exercise.SportID))
			return nil, fmt.Errorf("%w: sport with ID %d not found",
				store.ErrInvalidEntity, exercise.SportID)
		}
		log.Error("failed to save exercise",
			slog.String("error", err.Error()),
			slog.String("exercise_id", exercise.ID.String()))
		return nil, MapError(err)
	}

	log.Info("exercise saved successfully",
		slog.String("exercise_id", exercise.ID.String()),
		slog.String("name", exercise.Name),
		slog.String("category", string(exercise.Category)))
	return exercise, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanExercise(row rowScanner) (*domain.Exercise, error) {
	var (
		id          uuid.UUID
		name        string
		description sql.NullString
		category    string
		sportID     int
		duration    int
	)

	if err := row.Scan(&id, &name, &description, &category, &sportID, &duration); err != nil {
		return nil, err
	}

	return domain.ExerciseFromPersistence(
		id,
		name,
		description.String,
		domain.ExerciseCategory(category),
		sportID,
		duration,
	)
}
