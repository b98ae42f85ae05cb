package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/dverdin/gymplan-api/internal/domain"
)

// GoalUpdate carries the partial fields of a goal update. Nil fields are
// left unchanged.
type GoalUpdate struct {
	Description *string
	DueDate     *time.Time
}

// GoalStore defines the interface for goal data persistence.
type GoalStore interface {
	// Create saves a new goal to the store.
	Create(ctx context.Context, goal *domain.Goal) (*domain.Goal, error)

	// FindByCreator retrieves all goals created by the given coach,
	// ordered by due date ascending.
	FindByCreator(ctx context.Context, creatorID uuid.UUID) ([]*domain.Goal, error)

	// FindByID retrieves a goal by its unique ID.
	// Returns ErrGoalNotFound if the goal does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error)

	// Update applies the non-nil fields of the patch to an existing goal.
	// Returns ErrGoalNotFound if the goal does not exist.
	Update(ctx context.Context, id uuid.UUID, patch GoalUpdate) (*domain.Goal, error)

	// Delete removes, inside one transaction, the assignments referencing
	// the goal and then the goal row itself.
	// Returns ErrGoalNotFound if the goal does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ValidateOwner reports whether the goal exists AND was created by the
	// given coach. A missing goal yields false, not an error.
	ValidateOwner(ctx context.Context, goalID, creatorID uuid.UUID) (bool, error)

	// WithTx returns a new GoalStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) GoalStore
}
