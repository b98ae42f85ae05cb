package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/dverdin/gymplan-api/internal/domain"
)

// RoutineFilters narrows a routine lookup. Zero values are ignored; set
// filters combine with AND. An empty filter matches every routine.
type RoutineFilters struct {
	Level   domain.RoutineLevel
	IDs     []uuid.UUID
	CoachID uuid.UUID
}

// RoutineUpdate carries the partial fields of a routine update. Nil fields
// are left unchanged. A non-nil Exercises list replaces the routine's
// entries wholesale; there is no diffing or merging.
type RoutineUpdate struct {
	Name        *string
	Level       *domain.RoutineLevel
	Description *string
	Exercises   []domain.RoutineExercise
}

// RoutineStore defines the interface for routine data persistence.
type RoutineStore interface {
	// Save persists the routine row and its ordered exercise rows as a
	// single atomic unit. If any referenced exercise ID is absent from the
	// catalog the whole operation fails with ErrInvalidEntity and no
	// partial routine is left behind.
	Save(ctx context.Context, routine *domain.Routine) (*domain.Routine, error)

	// Find retrieves routines matching the filters, ordered by name.
	// Returns an empty slice if nothing matches.
	Find(ctx context.Context, filters RoutineFilters) ([]*domain.Routine, error)

	// FindByID retrieves a routine with its exercises ordered by order index.
	// Returns ErrRoutineNotFound if the routine does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Routine, error)

	// ValidateOwnership reports whether the routine exists AND is owned by
	// the given coach. A missing routine yields false, not an error.
	ValidateOwnership(ctx context.Context, routineID, coachID uuid.UUID) (bool, error)

	// Update applies the patch inside one transaction. When the patch
	// carries an exercise list, the existing rows are deleted and the new
	// ordered list inserted (replace-all semantics).
	// Returns ErrRoutineNotFound if the routine does not exist.
	Update(ctx context.Context, id uuid.UUID, patch RoutineUpdate) (*domain.Routine, error)

	// Delete removes, inside one transaction and in dependency order, the
	// routine's exercise rows, the assignments referencing it, and the
	// routine row itself.
	// Returns ErrRoutineNotFound if the routine does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new RoutineStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) RoutineStore
}
