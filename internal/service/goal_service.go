package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dverdin/gymplan-api/internal/domain"
	"github.com/dverdin/gymplan-api/internal/store"
)

// CreateGoalInput carries a validated create-goal command.
type CreateGoalInput struct {
	Description string
	DueDate     *time.Time
}

// UpdateGoalInput carries a partial goal update. Nil fields are left
// unchanged.
type UpdateGoalInput struct {
	Description *string
	DueDate     *time.Time
}

// GoalService provides goal-related operations
type GoalService interface {
	// Create registers a new goal owned by the coach.
	Create(ctx context.Context, creatorID uuid.UUID, input CreateGoalInput) (*domain.Goal, error)

	// ListByCreator retrieves the coach's goals ordered by due date.
	ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*domain.Goal, error)

	// Get retrieves a single goal by ID.
	Get(ctx context.Context, id uuid.UUID) (*domain.Goal, error)

	// Update applies a partial update to a goal owned by the coach.
	Update(ctx context.Context, creatorID, id uuid.UUID, input UpdateGoalInput) (*domain.Goal, error)

	// Delete removes a goal owned by the coach together with the
	// assignments referencing it.
	Delete(ctx context.Context, creatorID, id uuid.UUID) error
}

// Common sentinel errors for GoalService
var (
	// ErrGoalNotFound indicates that the goal does not exist
	ErrGoalNotFound = errors.New("goal not found")
)

// GoalServiceError wraps errors from the goal service with context.
type GoalServiceError struct {
	// Operation is the operation that failed (e.g., "create_goal")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for GoalServiceError.
func (e *GoalServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("goal service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("goal service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *GoalServiceError) Unwrap() error {
	return e.Err
}

// NewGoalServiceError creates a new GoalServiceError.
// It returns known sentinel errors directly without wrapping.
func NewGoalServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrGoalNotFound) || errors.Is(err, ErrNotOwned) {
		return err
	}
	if errors.Is(err, store.ErrGoalNotFound) {
		return ErrGoalNotFound
	}
	if domain.IsValidationError(err) {
		return err
	}

	return &GoalServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// goalServiceImpl implements the GoalService interface
type goalServiceImpl struct {
	goalStore store.GoalStore
	logger    *slog.Logger
}

// NewGoalService creates a new GoalService.
// It returns an error if the store dependency is nil.
func NewGoalService(goalStore store.GoalStore, logger *slog.Logger) (GoalService, error) {
	if goalStore == nil {
		return nil, &GoalServiceError{
			Operation: "create_service",
			Message:   "goalStore cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &goalServiceImpl{
		goalStore: goalStore,
		logger:    logger.With("component", "goal_service"),
	}, nil
}

func (s *goalServiceImpl) Create(
	ctx context.Context,
	creatorID uuid.UUID,
	input CreateGoalInput,
) (*domain.Goal, error) {
	goal, err := domain.NewGoal(creatorID, input.Description, input.DueDate)
	if err != nil {
		return nil, NewGoalServiceError("create_goal", "invalid goal data", err)
	}

	created, err := s.goalStore.Create(ctx, goal)
	if err != nil {
		s.logger.Error("failed to create goal",
			"error", err,
			"creator_id", creatorID)
		return nil, NewGoalServiceError("create_goal", "failed to create goal", err)
	}

	s.logger.Info("goal created",
		"goal_id", created.ID,
		"creator_id", creatorID)
	return created, nil
}

func (s *goalServiceImpl) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*domain.Goal, error) {
	goals, err := s.goalStore.FindByCreator(ctx, creatorID)
	if err != nil {
		s.logger.Error("failed to list goals",
			"error", err,
			"creator_id", creatorID)
		return nil, NewGoalServiceError("list_goals", "failed to list goals", err)
	}
	return goals, nil
}

func (s *goalServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	goal, err := s.goalStore.FindByID(ctx, id)
	if err != nil {
		return nil, NewGoalServiceError("get_goal", "failed to load goal", err)
	}
	return goal, nil
}

// Update checks existence before ownership so a missing goal reports 404
// rather than 403.
func (s *goalServiceImpl) Update(
	ctx context.Context,
	creatorID, id uuid.UUID,
	input UpdateGoalInput,
) (*domain.Goal, error) {
	if err := s.authorize(ctx, "update_goal", id, creatorID); err != nil {
		return nil, err
	}

	updated, err := s.goalStore.Update(ctx, id, store.GoalUpdate{
		Description: input.Description,
		DueDate:     input.DueDate,
	})
	if err != nil {
		s.logger.Error("failed to update goal",
			"error", err,
			"goal_id", id)
		return nil, NewGoalServiceError("update_goal", "failed to update goal", err)
	}

	s.logger.Info("goal updated",
		"goal_id", id,
		"creator_id", creatorID)
	return updated, nil
}

func (s *goalServiceImpl) Delete(ctx context.Context, creatorID, id uuid.UUID) error {
	if err := s.authorize(ctx, "delete_goal", id, creatorID); err != nil {
		return err
	}

	if err := s.goalStore.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete goal",
			"error", err,
			"goal_id", id)
		return NewGoalServiceError("delete_goal", "failed to delete goal", err)
	}

	s.logger.Info("goal deleted",
		"goal_id", id,
		"creator_id", creatorID)
	return nil
}

// authorize resolves the existence-then-ownership check shared by the goal
// write paths.
func (s *goalServiceImpl) authorize(ctx context.Context, operation string, id, creatorID uuid.UUID) error {
	if _, err := s.goalStore.FindByID(ctx, id); err != nil {
		if errors.Is(err, store.ErrGoalNotFound) {
			return ErrGoalNotFound
		}
		return NewGoalServiceError(operation, "failed to load goal", err)
	}

	owned, err := s.goalStore.ValidateOwner(ctx, id, creatorID)
	if err != nil {
		return NewGoalServiceError(operation, "failed to validate ownership", err)
	}
	if !owned {
		s.logger.Warn("goal write rejected: not owner",
			"goal_id", id,
			"creator_id", creatorID)
		return ErrNotOwned
	}
	return nil
}
