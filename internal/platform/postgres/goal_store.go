package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dverdin/gymplan-api/internal/domain"
	"github.com/dverdin/gymplan-api/internal/platform/logger"
	"github.com/dverdin/gymplan-api/internal/store"
)

// PostgresGoalStore implements the store.GoalStore interface
// using a PostgreSQL database as the storage backend.
type PostgresGoalStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresGoalStore creates a new PostgreSQL implementation of the
// GoalStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresGoalStore(db store.DBTX, logger *slog.Logger) *PostgresGoalStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresGoalStore{
		db:     db,
		logger: logger.With(slog.String("component", "goal_store")),
	}
}

// Ensure PostgresGoalStore implements store.GoalStore interface
var _ store.GoalStore = (*PostgresGoalStore)(nil)

// WithTx implements store.GoalStore.WithTx
func (s *PostgresGoalStore) WithTx(tx *sql.Tx) store.GoalStore {
	return &PostgresGoalStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.GoalStore.Create
func (s *PostgresGoalStore) Create(ctx context.Context, goal *domain.Goal) (*domain.Goal, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := goal.Validate(); err != nil {
		log.Warn("goal validation failed during create",
			slog.String("error", err.Error()),
			slog.String("goal_id", goal.ID.String()))
		return nil, err
	}

	query := `
		INSERT INTO goals (id, creator_id, description, due_date, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		goal.ID,
		goal.CreatorID,
		goal.Description,
		goal.DueDate,
		goal.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create goal",
			slog.String("error", err.Error()),
			slog.String("goal_id", goal.ID.String()))
		return nil, MapError(err)
	}

	log.Info("goal created successfully",
		slog.String("goal_id", goal.ID.String()),
		slog.String("creator_id", goal.CreatorID.String()))
	return goal, nil
}

// FindByCreator implements store.GoalStore.FindByCreator
// It retrieves all goals created by the given coach, ordered by due date
// ascending with undated goals last.
func (s *PostgresGoalStore) FindByCreator(
	ctx context.Context,
	creatorID uuid.UUID,
) ([]*domain.Goal, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, creator_id, description, due_date, created_at
		FROM goals
		WHERE creator_id = $1
		ORDER BY due_date ASC NULLS LAST, created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, creatorID)
	if err != nil {
		log.Error("failed to query goals by creator",
			slog.String("error", err.Error()),
			slog.String("creator_id", creatorID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	goals := []*domain.Goal{}
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			log.Error("failed to scan goal row", slog.String("error", err.Error()))
			return nil, err
		}
		goals = append(goals, goal)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning goal rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("found goals",
		slog.String("creator_id", creatorID.String()),
		slog.Int("count", len(goals)))
	return goals, nil
}

// FindByID implements store.GoalStore.FindByID
// Returns store.ErrGoalNotFound if the goal does not exist.
func (s *PostgresGoalStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, creator_id, description, due_date, created_at
		FROM goals
		WHERE id = $1
	`

	goal, err := scanGoal(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("goal not found", slog.String("goal_id", id.String()))
			return nil, store.ErrGoalNotFound
		}
		log.Error("failed to get goal by ID",
			slog.String("error", err.Error()),
			slog.String("goal_id", id.String()))
		return nil, MapError(err)
	}

	return goal, nil
}

// Update implements store.GoalStore.Update
// It applies the non-nil fields of the patch and returns the updated goal.
// Returns store.ErrGoalNotFound if the goal does not exist.
func (s *PostgresGoalStore) Update(
	ctx context.Context,
	id uuid.UUID,
	patch store.GoalUpdate,
) (*domain.Goal, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	current, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Description != nil {
		trimmed := strings.TrimSpace(*patch.Description)
		if trimmed == "" {
			return nil, domain.ErrEmptyGoalDescription
		}
		current.Description = trimmed
	}
	if patch.DueDate != nil {
		current.DueDate = patch.DueDate
	}

	query := `
		UPDATE goals
		SET description = $1, due_date = $2
		WHERE id = $3
	`

	result, err := s.db.ExecContext(ctx, query, current.Description, current.DueDate, id)
	if err != nil {
		log.Error("failed to update goal",
			slog.String("error", err.Error()),
			slog.String("goal_id", id.String()))
		return nil, MapError(err)
	}

	if err := CheckRowsAffected(result, "goal"); err != nil {
		return nil, store.ErrGoalNotFound
	}

	log.Info("goal updated successfully", slog.String("goal_id", id.String()))
	return current, nil
}

// Delete implements store.GoalStore.Delete
// It removes, inside one transaction, the assignments referencing the goal
// and then the goal row itself.
// Returns store.ErrGoalNotFound if the goal does not exist.
func (s *PostgresGoalStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	run := func(dbtx store.DBTX) error {
		if _, err := dbtx.ExecContext(
			ctx, `DELETE FROM assignments WHERE goal_id = $1`, id,
		); err != nil {
			return err
		}

		result, err := dbtx.ExecContext(ctx, `DELETE FROM goals WHERE id = $1`, id)
		if err != nil {
			return err
		}
		return CheckRowsAffected(result, "goal")
	}

	var err error
	if db, ok := s.db.(*sql.DB); ok {
		err = store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			return run(tx)
		})
	} else {
		err = run(s.db)
	}

	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("goal not found for delete", slog.String("goal_id", id.String()))
			return store.ErrGoalNotFound
		}
		log.Error("failed to delete goal",
			slog.String("error", err.Error()),
			slog.String("goal_id", id.String()))
		return MapError(err)
	}

	log.Info("goal deleted successfully", slog.String("goal_id", id.String()))
	return nil
}

// ValidateOwner implements store.GoalStore.ValidateOwner
// It reports whether the goal exists AND was created by the given coach.
// A missing goal yields false, not an error.
func (s *PostgresGoalStore) ValidateOwner(ctx context.Context, goalID, creatorID uuid.UUID) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM goals
			WHERE id = $1 AND creator_id = $2
		)
	`

	var owned bool
	if err := s.db.QueryRowContext(ctx, query, goalID, creatorID).Scan(&owned); err != nil {
		log.Error("failed to validate goal ownership",
			slog.String("error", err.Error()),
			slog.String("goal_id", goalID.String()))
		return false, MapError(err)
	}

	return owned, nil
}

func scanGoal(row rowScanner) (*domain.Goal, error) {
	var (
		id          uuid.UUID
		creatorID   uuid.UUID
		description string
		dueDate     sql.NullTime
		createdAt   time.Time
	)

	if err := row.Scan(&id, &creatorID, &description, &dueDate, &createdAt); err != nil {
		return nil, err
	}

	var due *time.Time
	if dueDate.Valid {
		d := dueDate.Time
		due = &d
	}

	return domain.GoalFromPersistence(id, creatorID, description, due, createdAt)
}
