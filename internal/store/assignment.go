package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/dverdin/gymplan-api/internal/domain"
)

// AssignmentStore defines the interface for assignment data persistence.
type AssignmentStore interface {
	// SaveBatch inserts the assignments atomically with duplicate-skip
	// semantics: an (athlete, target) pair that is already stored is
	// silently skipped, so re-running a bulk assignment is safe. A batch
	// referencing a non-existent routine or goal fails wholesale with
	// ErrInvalidEntity.
	SaveBatch(ctx context.Context, assignments []*domain.Assignment) error

	// FindByAthleteID retrieves all assignments for an athlete, newest first.
	FindByAthleteID(ctx context.Context, athleteID uuid.UUID) ([]*domain.Assignment, error)

	// FindByID retrieves an assignment by its unique ID.
	// Returns ErrAssignmentNotFound if the assignment does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Assignment, error)

	// Delete removes an assignment.
	// Returns ErrAssignmentNotFound if the assignment does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// UpdateStatus sets the status of an existing assignment and returns
	// the updated record.
	// Returns ErrAssignmentNotFound if the assignment does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AssignmentStatus) (*domain.Assignment, error)

	// ValidateOwner reports whether the assignment exists AND was created
	// by the given assigner. A missing assignment yields false, not an error.
	ValidateOwner(ctx context.Context, assignmentID, assignerID uuid.UUID) (bool, error)

	// WithTx returns a new AssignmentStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) AssignmentStore
}
