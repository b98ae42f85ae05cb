package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/dverdin/gymplan-api/internal/domain"
)

// ExerciseFilters narrows an exercise catalog lookup. Zero values are
// ignored; set filters combine with AND.
type ExerciseFilters struct {
	SportID int
}

// ExerciseStore defines the interface for the shared exercise catalog.
type ExerciseStore interface {
	// Find retrieves catalog exercises matching the filters, ordered by name.
	// Returns an empty slice if nothing matches.
	Find(ctx context.Context, filters ExerciseFilters) ([]*domain.Exercise, error)

	// FindByID retrieves an exercise by its unique ID.
	// Returns ErrExerciseNotFound if the exercise does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Exercise, error)

	// Save upserts an exercise keyed by its ID: absent IDs are inserted,
	// existing ones have name, description, category, and sport association
	// overwritten. Returns ErrInvalidEntity naming the missing sport if the
	// exercise references a sport that does not exist.
	Save(ctx context.Context, exercise *domain.Exercise) (*domain.Exercise, error)

	// WithTx returns a new ExerciseStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ExerciseStore
}
