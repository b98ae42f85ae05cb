package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dverdin/gymplan-api/internal/domain"
	"github.com/dverdin/gymplan-api/internal/platform/logger"
	"github.com/dverdin/gymplan-api/internal/store"
)

// PostgresAssignmentStore implements the store.AssignmentStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAssignmentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAssignmentStore creates a new PostgreSQL implementation of the
// AssignmentStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresAssignmentStore(db store.DBTX, logger *slog.Logger) *PostgresAssignmentStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAssignmentStore{
		db:     db,
		logger: logger.With(slog.String("component", "assignment_store")),
	}
}

// Ensure PostgresAssignmentStore implements store.AssignmentStore interface
var _ store.AssignmentStore = (*PostgresAssignmentStore)(nil)

// WithTx implements store.AssignmentStore.WithTx
func (s *PostgresAssignmentStore) WithTx(tx *sql.Tx) store.AssignmentStore {
	return &PostgresAssignmentStore{
		db:     tx,
		logger: s.logger,
	}
}

// SaveBatch implements store.AssignmentStore.SaveBatch
// It inserts the assignments atomically with duplicate-skip semantics: an
// (athlete, target) pair that is already stored is silently skipped, so
// re-running a bulk assignment is safe. A batch referencing a non-existent
// routine or goal fails wholesale with store.ErrInvalidEntity.
func (s *PostgresAssignmentStore) SaveBatch(ctx context.Context, assignments []*domain.Assignment) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(assignments) == 0 {
		return nil
	}

	for _, assignment := range assignments {
		if err := assignment.Validate(); err != nil {
			log.Warn("assignment validation failed during batch save",
				slog.String("error", err.Error()),
				slog.String("assignment_id", assignment.ID.String()))
			return err
		}
	}

	// The partial unique indexes on (athlete_id, routine_id) and
	// (athlete_id, goal_id) make the conflict target implicit.
	query := `
		INSERT INTO assignments
			(id, athlete_id, assigner_id, routine_id, goal_id, status, assigned_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT DO NOTHING
	`

	run := func(dbtx store.DBTX) error {
		for _, assignment := range assignments {
			if _, err := dbtx.ExecContext(
				ctx,
				query,
				assignment.ID,
				assignment.AthleteID,
				assignment.AssignerID,
				assignment.RoutineID,
				assignment.GoalID,
				string(assignment.Status),
				assignment.AssignedAt,
			); err != nil {
				return err
			}
		}
		return nil
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
		if IsForeignKeyViolation(err) {
			log.Warn("batch references a missing routine or goal",
				slog.Int("count", len(assignments)))
			return fmt.Errorf("%w: assignment references a missing routine or goal",
				store.ErrInvalidEntity)
		}
		log.Error("failed to save assignment batch",
			slog.String("error", err.Error()),
			slog.Int("count", len(assignments)))
		return MapError(err)
	}

	log.Info("assignment batch saved",
		slog.Int("count", len(assignments)),
		slog.String("assigner_id", assignments[0].AssignerID.String()))
	return nil
}

// FindByAthleteID implements store.AssignmentStore.FindByAthleteID
// It retrieves all assignments for an athlete, newest first.
func (s *PostgresAssignmentStore) FindByAthleteID(
	ctx context.Context,
	athleteID uuid.UUID,
) ([]*domain.Assignment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, athlete_id, assigner_id, routine_id, goal_id, status, assigned_at
		FROM assignments
		WHERE athlete_id = $1
		ORDER BY assigned_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, athleteID)
	if err != nil {
		log.Error("failed to query assignments by athlete",
			slog.String("error", err.Error()),
			slog.String("athlete_id", athleteID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	assignments := []*domain.Assignment{}
	for rows.Next() {
		assignment, err := scanAssignment(rows)
		if err != nil {
			log.Error("failed to scan assignment row", slog.String("error", err.Error()))
			return nil, err
		}
		assignments = append(assignments, assignment)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning assignment rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("found assignments",
		slog.String("athlete_id", athleteID.String()),
		slog.Int("count", len(assignments)))
	return assignments, nil
}

// FindByID implements store.AssignmentStore.FindByID
// Returns store.ErrAssignmentNotFound if the assignment does not exist.
func (s *PostgresAssignmentStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Assignment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, athlete_id, assigner_id, routine_id, goal_id, status, assigned_at
		FROM assignments
		WHERE id = $1
	`

	assignment, err := scanAssignment(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("assignment not found", slog.String("assignment_id", id.String()))
			return nil, store.ErrAssignmentNotFound
		}
		log.Error("failed to get assignment by ID",
			slog.String("error", err.Error()),
			slog.String("assignment_id", id.String()))
		return nil, MapError(err)
	}

	return assignment, nil
}

// Delete implements store.AssignmentStore.Delete
// Returns store.ErrAssignmentNotFound if the assignment does not exist.
func (s *PostgresAssignmentStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM assignments WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete assignment",
			slog.String("error", err.Error()),
			slog.String("assignment_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "assignment"); err != nil {
		log.Debug("assignment not found for delete", slog.String("assignment_id", id.String()))
		return store.ErrAssignmentNotFound
	}

	log.Info("assignment deleted successfully", slog.String("assignment_id", id.String()))
	return nil
}

// UpdateStatus implements store.AssignmentStore.UpdateStatus
// It sets the status of an existing assignment and returns the updated record.
// Returns store.ErrAssignmentNotFound if the assignment does not exist.
func (s *PostgresAssignmentStore) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.AssignmentStatus,
) (*domain.Assignment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !domain.IsValidAssignmentStatus(status) {
		return nil, domain.ErrInvalidAssignmentStatus
	}

	query := `
		UPDATE assignments
		SET status = $1
		WHERE id = $2
		RETURNING id, athlete_id, assigner_id, routine_id, goal_id, status, assigned_at
	`

	assignment, err := scanAssignment(s.db.QueryRowContext(ctx, query, string(status), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("assignment not found for status update",
				slog.String("assignment_id", id.String()))
			return nil, store.ErrAssignmentNotFound
		}
		log.Error("failed to update assignment status",
			slog.String("error", err.Error()),
			slog.String("assignment_id", id.String()),
			slog.String("status", string(status)))
		return nil, MapError(err)
	}

	log.Info("assignment status updated",
		slog.String("assignment_id", id.String()),
		slog.String("status", string(status)))
	return assignment, nil
}

// ValidateOwner implements store.AssignmentStore.ValidateOwner
// It reports whether the assignment exists AND was created by the given
// assigner. A missing assignment yields false, not an error.
func (s *PostgresAssignmentStore) ValidateOwner(
	ctx context.Context,
	assignmentID, assignerID uuid.UUID,
) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM assignments
			WHERE id = $1 AND assigner_id = $2
		)
	`

	var owned bool
	if err := s.db.QueryRowContext(ctx, query, assignmentID, assignerID).Scan(&owned); err != nil {
		log.Error("failed to validate assignment ownership",
			slog.String("error", err.Error()),
			slog.String("assignment_id", assignmentID.String()))
		return false, MapError(err)
	}

	return owned, nil
}

func scanAssignment(row rowScanner) (*domain.Assignment, error) {
	var (
		id         uuid.UUID
		athleteID  uuid.UUID
		assignerID uuid.UUID
		routineID  uuid.NullUUID
		goalID     uuid.NullUUID
		status     string
		assignedAt time.Time
	)

	if err := row.Scan(&id, &athleteID, &assignerID, &routineID, &goalID, &status, &assignedAt); err != nil {
		return nil, err
	}

	var routinePtr, goalPtr *uuid.UUID
	if routineID.Valid {
		r := routineID.UUID
		routinePtr = &r
	}
	if goalID.Valid {
		g := goalID.UUID
		goalPtr = &g
	}

	return domain.AssignmentFromPersistence(
		id,
		athleteID,
		assignerID,
		routinePtr,
		goalPtr,
		domain.AssignmentStatus(status),
		assignedAt,
	)
}
