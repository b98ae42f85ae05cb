package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/dverdin/gymplan-api/internal/domain"
	"github.com/dverdin/gymplan-api/internal/platform/logger"
	"github.com/dverdin/gymplan-api/internal/store"
)

// PostgresRoutineStore implements the store.RoutineStore interface
// using a PostgreSQL database as the storage backend.
type PostgresRoutineStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresRoutineStore creates a new PostgreSQL implementation of the
// RoutineStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresRoutineStore(db store.DBTX, logger *slog.Logger) *PostgresRoutineStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresRoutineStore{
		db:     db,
		logger: logger.With(slog.String("component", "routine_store")),
	}
}

// Ensure PostgresRoutineStore implements store.RoutineStore interface
var _ store.RoutineStore = (*PostgresRoutineStore)(nil)

// WithTx implements store.RoutineStore.WithTx
func (s *PostgresRoutineStore) WithTx(tx *sql.Tx) store.RoutineStore {
	return &PostgresRoutineStore{
		db:     tx,
		logger: s.logger,
	}
}

// inTransaction runs fn atomically. When the store holds a plain connection
// it opens a transaction around fn; when it already runs on a transaction
// (via WithTx) fn executes on that transaction directly.
func (s *PostgresRoutineStore) inTransaction(
	ctx context.Context,
	fn func(txStore *PostgresRoutineStore) error,
) error {
	if db, ok := s.db.(*sql.DB); ok {
		return store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			return fn(&PostgresRoutineStore{db: tx, logger: s.logger})
		})
	}
	return fn(s)
}

// Save implements store.RoutineStore.Save
// It persists the routine row and its ordered exercise rows as one atomic
// unit. If any referenced exercise ID is absent from the catalog the whole
// operation fails with store.ErrInvalidEntity and nothing is persisted.
func (s *PostgresRoutineStore) Save(ctx context.Context, routine *domain.Routine) (*domain.Routine, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := routine.Validate(); err != nil {
		log.Warn("routine validation failed during save",
			slog.String("error", err.Error()),
			slog.String("routine_id", routine.ID.String()))
		return nil, err
	}

	err := s.inTransaction(ctx, func(txStore *PostgresRoutineStore) error {
		query := `
			INSERT INTO routines (id, name, level, coach_id, sport_id, description)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		_, err := txStore.db.ExecContext(
			ctx,
			query,
			routine.ID,
			routine.Name,
			string(routine.Level),
			routine.CoachID,
			routine.SportID,
			routine.Description,
		)
		if err != nil {
			return err
		}

		return txStore.insertExerciseRows(ctx, routine.ID, routine.Exercises)
	})
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("unknown reference during routine save",
				slog.String("routine_id", routine.ID.String()))
			return nil, fmt.Errorf("%w: routine references a missing sport or exercise",
				store.ErrInvalidEntity)
		}
		log.Error("failed to save routine",
			slog.String("error", err.Error()),
			slog.String("routine_id", routine.ID.String()))
		return nil, MapError(err)
	}

	log.Info("routine saved successfully",
		slog.String("routine_id", routine.ID.String()),
		slog.String("name", routine.Name),
		slog.Int("exercise_count", len(routine.Exercises)))
	return routine, nil
}

// Find implements store.RoutineStore.Find
// It retrieves routines matching the filters, ordered by name, each with its
// exercise rows ordered by order index. Returns an empty slice if nothing
// matches.
func (s *PostgresRoutineStore) Find(
	ctx context.Context,
	filters store.RoutineFilters,
) ([]*domain.Routine, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, level, coach_id, sport_id, description
		FROM routines
	`
	var (
		clauses []string
		args    []interface{}
	)
	if filters.Level != "" {
		args = append(args, string(filters.Level))
		clauses = append(clauses, fmt.Sprintf("level = $%d", len(args)))
	}
	if filters.CoachID != uuid.Nil {
		args = append(args, filters.CoachID)
		clauses = append(clauses, fmt.Sprintf("coach_id = $%d", len(args)))
	}
	if len(filters.IDs) > 0 {
		placeholders := make([]string, 0, len(filters.IDs))
		for _, id := range filters.IDs {
			args = append(args, id)
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
		}
		clauses = append(clauses, fmt.Sprintf("id IN (%s)", strings.Join(placeholders, ", ")))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY name ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query routines", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	routines := []*domain.Routine{}
	for rows.Next() {
		routine, err := scanRoutineRow(rows)
		if err != nil {
			log.Error("failed to scan routine row", slog.String("error", err.Error()))
			return nil, err
		}
		routines = append(routines, routine)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning routine rows", slog.String("error", err.Error()))
		return nil, err
	}

	if len(routines) > 0 {
		if err := s.attachExercises(ctx, routines); err != nil {
			log.Error("failed to load routine exercises", slog.String("error", err.Error()))
			return nil, err
		}
	}

	log.Debug("found routines", slog.Int("count", len(routines)))
	return routines, nil
}

// FindByID implements store.RoutineStore.FindByID
// Returns store.ErrRoutineNotFound if the routine does not exist.
func (s *PostgresRoutineStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Routine, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, level, coach_id, sport_id, description
		FROM routines
		WHERE id = $1
	`

	routine, err := scanRoutineRow(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("routine not found", slog.String("routine_id", id.String()))
			return nil, store.ErrRoutineNotFound
		}
		log.Error("failed to get routine by ID",
			slog.String("error", err.Error()),
			slog.String("routine_id", id.String()))
		return nil, MapError(err)
	}

	if err := s.attachExercises(ctx, []*domain.Routine{routine}); err != nil {
		log.Error("failed to load routine exercises",
			slog.String("error", err.Error()),
			slog.String("routine_id", id.String()))
		return nil, err
	}

	return routine, nil
}

// ValidateOwnership implements store.RoutineStore.ValidateOwnership
// It reports whether the routine exists AND is owned by the given coach.
// A missing routine yields false, not an error.
func (s *PostgresRoutineStore) ValidateOwnership(
	ctx context.Context,
	routineID, coachID uuid.UUID,
) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM routines
			WHERE id = $1 AND coach_id = $2
		)
	`

	var owned bool
	if err := s.db.QueryRowContext(ctx, query, routineID, coachID).Scan(&owned); err != nil {
		log.Error("failed to validate routine ownership",
			slog.String("error", err.Error()),
			slog.String("routine_id", routineID.String()))
		return false, MapError(err)
	}

	return owned, nil
}

// Update implements store.RoutineStore.Update
// It applies the patch inside one transaction. When the patch carries an
// exercise list, the existing rows are deleted and the new ordered list
// inserted wholesale.
// Returns store.ErrRoutineNotFound if the routine does not exist.
func (s *PostgresRoutineStore) Update(
	ctx context.Context,
	id uuid.UUID,
	patch store.RoutineUpdate,
) (*domain.Routine, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Routine
	err := s.inTransaction(ctx, func(txStore *PostgresRoutineStore) error {
		current, err := txStore.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if patch.Name != nil {
			current.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Level != nil {
			current.Level = *patch.Level
		}
		if patch.Description != nil {
			current.Description = strings.TrimSpace(*patch.Description)
		}
		if patch.Exercises != nil {
			current.Exercises = patch.Exercises
		}

		if err := current.Validate(); err != nil {
			return err
		}

		query := `
			UPDATE routines
			SET name = $1, level = $2, description = $3
			WHERE id = $4
		`
		result, err := txStore.db.ExecContext(
			ctx,
			query,
			current.Name,
			string(current.Level),
			current.Description,
			id,
		)
		if err != nil {
			return err
		}
		if err := CheckRowsAffected(result, "routine"); err != nil {
			return store.ErrRoutineNotFound
		}

		if patch.Exercises != nil {
			deleteQuery := `DELETE FROM routine_exercises WHERE routine_id = $1`
			if _, err := txStore.db.ExecContext(ctx, deleteQuery, id); err != nil {
				return err
			}
			if err := txStore.insertExerciseRows(ctx, id, current.Exercises); err != nil {
				return err
			}
		}

		updated = current
		return nil
	})
	if err != nil {
		if IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: routine references a missing exercise",
				store.ErrInvalidEntity)
		}
		if !store.IsNotFoundError(err) {
			log.Error("failed to update routine",
				slog.String("error", err.Error()),
				slog.String("routine_id", id.String()))
		}
		return nil, err
	}

	log.Info("routine updated successfully",
		slog.String("routine_id", id.String()),
		slog.String("name", updated.Name))
	return updated, nil
}

// Delete implements store.RoutineStore.Delete
// It removes, inside one transaction and in dependency order, the routine's
// exercise rows, the assignments referencing it, and the routine row itself.
// Returns store.ErrRoutineNotFound if the routine does not exist.
func (s *PostgresRoutineStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.inTransaction(ctx, func(txStore *PostgresRoutineStore) error {
		if _, err := txStore.db.ExecContext(
			ctx, `DELETE FROM routine_exercises WHERE routine_id = $1`, id,
		); err != nil {
			return err
		}

		if _, err := txStore.db.ExecContext(
			ctx, `DELETE FROM assignments WHERE routine_id = $1`, id,
		); err != nil {
			return err
		}

		result, err := txStore.db.ExecContext(
			ctx, `DELETE FROM routines WHERE id = $1`, id,
		)
		if err != nil {
			return err
		}
		if err := CheckRowsAffected(result, "routine"); err != nil {
			return store.ErrRoutineNotFound
		}
		return nil
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("routine not found for delete", slog.String("routine_id", id.String()))
			return store.ErrRoutineNotFound
		}
		log.Error("failed to delete routine",
			slog.String("error", err.Error()),
			slog.String("routine_id", id.String()))
		return MapError(err)
	}

	log.Info("routine deleted successfully", slog.String("routine_id", id.String()))
	return nil
}

// insertExerciseRows writes the ordered exercise rows for a routine. The
// caller is responsible for running it inside a transaction alongside the
// routine row write.
func (s *PostgresRoutineStore) insertExerciseRows(
	ctx context.Context,
	routineID uuid.UUID,
	exercises []domain.RoutineExercise,
) error {
	query := `
		INSERT INTO routine_exercises
			(routine_id, exercise_id, sets_reps, duration_seconds, order_index)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, entry := range exercises {
		if _, err := s.db.ExecContext(
			ctx,
			query,
			routineID,
			entry.ExerciseID,
			entry.SetsReps,
			entry.DurationSeconds,
			entry.OrderIndex,
		); err != nil {
			return err
		}
	}
	return nil
}

// attachExercises loads the exercise rows for the given routines in one
// query, joined against the catalog for display fields, and attaches them
// in order index order.
func (s *PostgresRoutineStore) attachExercises(ctx context.Context, routines []*domain.Routine) error {
	placeholders := make([]string, 0, len(routines))
	args := make([]interface{}, 0, len(routines))
	byID := make(map[uuid.UUID]*domain.Routine, len(routines))
	for _, routine := range routines {
		args = append(args, routine.ID)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
		routine.Exercises = nil
		byID[routine.ID] = routine
	}

	query := fmt.Sprintf(`
		SELECT re.routine_id, re.exercise_id, e.name, e.description,
			re.sets_reps, re.duration_seconds, re.order_index
		FROM routine_exercises re
		JOIN exercises e ON e.id = re.exercise_id
		WHERE re.routine_id IN (%s)
		ORDER BY re.routine_id, re.order_index ASC
	`, strings.Join(placeholders, ", "))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var (
			routineID   uuid.UUID
			entry       domain.RoutineExercise
			description sql.NullString
		)
		if err := rows.Scan(
			&routineID,
			&entry.ExerciseID,
			&entry.Name,
			&description,
			&entry.SetsReps,
			&entry.DurationSeconds,
			&entry.OrderIndex,
		); err != nil {
			return err
		}
		entry.Description = description.String

		if routine, ok := byID[routineID]; ok {
			routine.Exercises = append(routine.Exercises, entry)
		}
	}

	return rows.Err()
}

func scanRoutineRow(row rowScanner) (*domain.Routine, error) {
	var (
		id          uuid.UUID
		name        string
		level       string
		coachID     uuid.UUID
		sportID     int
		description sql.NullString
	)

	if err := row.Scan(&id, &name, &level, &coachID, &sportID, &description); err != nil {
		return nil, err
	}

	// Exercise rows are attached separately; skip full validation here since
	// a routine scanned without its entries would fail the minimum-exercise
	// rule.
	return &domain.Routine{
		ID:          id,
		Name:        name,
		Level:       domain.RoutineLevel(level),
		CoachID:     coachID,
		SportID:     sportID,
		Description: description.String,
	}, nil
}
