package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dverdin/gymplan-api/internal/domain"
	"github.com/dverdin/gymplan-api/internal/store"
)

// ExerciseView is the read shape of a catalog exercise with its effective
// category resolved.
type ExerciseView struct {
	ID                     uuid.UUID               `json:"id"`
	Name                   string                  `json:"name"`
	Description            string                  `json:"description,omitempty"`
	Category               domain.ExerciseCategory `json:"category"`
	SportID                int                     `json:"sport_id"`
	DefaultDurationSeconds int                     `json:"default_duration_seconds"`
}

// ExerciseService provides read access to the shared exercise catalog.
// Catalog writes happen through routine commands, which upsert the
// exercises they reference.
type ExerciseService interface {
	// List retrieves catalog exercises, optionally filtered by sport.
	List(ctx context.Context, sportID int) ([]ExerciseView, error)

	// Get retrieves a single catalog exercise by ID.
	Get(ctx context.Context, id uuid.UUID) (*ExerciseView, error)
}

// Common sentinel errors for ExerciseService
var (
	// ErrExerciseNotFound indicates that the exercise does not exist
	ErrExerciseNotFound = errors.New("exercise not found")
)

// ExerciseServiceError wraps errors from the exercise service with context.
type ExerciseServiceError struct {
	// Operation is the operation that failed (e.g., "list_exercises")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ExerciseServiceError.
func (e *ExerciseServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("exercise service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("exercise service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ExerciseServiceError) Unwrap() error {
	return e.Err
}

// NewExerciseServiceError creates a new ExerciseServiceError.
// It returns known sentinel errors directly without wrapping.
func NewExerciseServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrExerciseNotFound) {
		return err
	}
	if errors.Is(err, store.ErrExerciseNotFound) {
		return ErrExerciseNotFound
	}

	return &ExerciseServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// exerciseServiceImpl implements the ExerciseService interface
type exerciseServiceImpl struct {
	exerciseStore store.ExerciseStore
	logger        *slog.Logger
}

// NewExerciseService creates a new ExerciseService.
// It returns an error if the store dependency is nil.
func NewExerciseService(exerciseStore store.ExerciseStore, logger *slog.Logger) (ExerciseService, error) {
	if exerciseStore == nil {
		return nil, &ExerciseServiceError{
			Operation: "create_service",
			Message:   "exerciseStore cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &exerciseServiceImpl{
		exerciseStore: exerciseStore,
		logger:        logger.With("component", "exercise_service"),
	}, nil
}

// List retrieves catalog exercises. A zero sportID means no sport filter.
// Each row's category is resolved through the keyword classifier when the
// stored value is unusable.
func (s *exerciseServiceImpl) List(ctx context.Context, sportID int) ([]ExerciseView, error) {
	exercises, err := s.exerciseStore.Find(ctx, store.ExerciseFilters{SportID: sportID})
	if err != nil {
		s.logger.Error("failed to list exercises",
			"error", err,
			"sport_id", sportID)
		return nil, NewExerciseServiceError("list_exercises", "failed to list exercises", err)
	}

	views := make([]ExerciseView, 0, len(exercises))
	for _, exercise := range exercises {
		views = append(views, toExerciseView(exercise))
	}
	return views, nil
}

func (s *exerciseServiceImpl) Get(ctx context.Context, id uuid.UUID) (*ExerciseView, error) {
	exercise, err := s.exerciseStore.FindByID(ctx, id)
	if err != nil {
		return nil, NewExerciseServiceError("get_exercise", "failed to load exercise", err)
	}

	view := toExerciseView(exercise)
	return &view, nil
}

func toExerciseView(exercise *domain.Exercise) ExerciseView {
	return ExerciseView{
		ID:                     exercise.ID,
		Name:                   exercise.Name,
		Description:            exercise.Description,
		Category:               domain.EffectiveCategory(exercise.Category, exercise.Name),
		SportID:                exercise.SportID,
		DefaultDurationSeconds: exercise.DefaultDurationSeconds,
	}
}
