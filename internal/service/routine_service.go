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

// RoutineExerciseInput is one exercise entry in a create or update command.
// The ID is client-supplied so the catalog upsert can key on it.
type RoutineExerciseInput struct {
	ID              uuid.UUID
	Name            string
	Description     string
	Category        domain.ExerciseCategory
	SetsReps        string
	DurationSeconds int
}

// CreateRoutineInput carries a validated create-routine command.
type CreateRoutineInput struct {
	Name        string
	Level       domain.RoutineLevel
	SportID     int
	Description string
	Exercises   []RoutineExerciseInput
}

// UpdateRoutineInput carries a partial routine update. Nil fields are left
// unchanged; a non-nil Exercises list replaces the routine's entries wholesale.
type UpdateRoutineInput struct {
	Name        *string
	Level       *domain.RoutineLevel
	Description *string
	Exercises   []RoutineExerciseInput
}

// RoutineSummary is the list-view shape of a routine.
type RoutineSummary struct {
	ID                       uuid.UUID           `json:"id"`
	Name                     string              `json:"name"`
	Level                    domain.RoutineLevel `json:"level"`
	SportID                  int                 `json:"sport_id"`
	ExerciseCount            int                 `json:"exercise_count"`
	EstimatedDurationMinutes int                 `json:"estimated_duration_minutes"`
}

// ExerciseDetail is one exercise entry in the detail view, with its
// effective category resolved.
type ExerciseDetail struct {
	ID              uuid.UUID               `json:"id"`
	Name            string                  `json:"name"`
	Description     string                  `json:"description,omitempty"`
	SetsReps        string                  `json:"sets_reps"`
	DurationSeconds int                     `json:"duration_seconds"`
	Category        domain.ExerciseCategory `json:"category"`
}

// RoutineDetails is the full detail view of a routine.
type RoutineDetails struct {
	ID                       uuid.UUID           `json:"id"`
	Name                     string              `json:"name"`
	Level                    domain.RoutineLevel `json:"level"`
	SportID                  int                 `json:"sport_id"`
	Description              string              `json:"description,omitempty"`
	EstimatedDurationSeconds int                 `json:"estimated_duration_seconds"`
	Exercises                []ExerciseDetail    `json:"exercises"`
}

// ListRoutinesFilters narrows a routine list query.
type ListRoutinesFilters struct {
	Level domain.RoutineLevel
	IDs   []uuid.UUID
}

// RoutineService provides routine-related operations
type RoutineService interface {
	// Create upserts each exercise into the shared catalog, builds the
	// routine through its factory, and persists it atomically.
	Create(ctx context.Context, coachID uuid.UUID, input CreateRoutineInput) (*domain.Routine, error)

	// List retrieves summaries of the coach's own routines, optionally
	// filtered by level or explicit IDs.
	List(ctx context.Context, coachID uuid.UUID, filters ListRoutinesFilters) ([]RoutineSummary, error)

	// GetDetails retrieves a routine with its exercises and resolved
	// categories.
	GetDetails(ctx context.Context, id uuid.UUID) (*RoutineDetails, error)

	// Update applies a partial update to a routine owned by the coach.
	// Exercise lists replace the existing entries wholesale.
	Update(ctx context.Context, coachID, id uuid.UUID, input UpdateRoutineInput) (*domain.Routine, error)

	// Delete removes a routine owned by the coach together with its
	// entries and assignments.
	Delete(ctx context.Context, coachID, id uuid.UUID) error
}

// Common sentinel errors for RoutineService
var (
	// ErrRoutineNotFound indicates that the routine does not exist
	ErrRoutineNotFound = errors.New("routine not found")
)

// RoutineServiceError wraps errors from the routine service with context.
type RoutineServiceError struct {
	// Operation is the operation that failed (e.g., "create_routine")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for RoutineServiceError.
func (e *RoutineServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("routine service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("routine service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *RoutineServiceError) Unwrap() error {
	return e.Err
}

// NewRoutineServiceError creates a new RoutineServiceError.
// It returns known sentinel errors directly without wrapping.
func NewRoutineServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrRoutineNotFound) || errors.Is(err, ErrNotOwned) {
		return err
	}
	if errors.Is(err, store.ErrRoutineNotFound) {
		return ErrRoutineNotFound
	}
	// Validation and referential errors keep their identity so the API
	// layer can map them to 422.
	if domain.IsValidationError(err) || errors.Is(err, store.ErrInvalidEntity) {
		return err
	}

	return &RoutineServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// routineServiceImpl implements the RoutineService interface
type routineServiceImpl struct {
	routineStore  store.RoutineStore
	exerciseStore store.ExerciseStore
	logger        *slog.Logger
}

// NewRoutineService creates a new RoutineService.
// It returns an error if any of the required dependencies are nil.
func NewRoutineService(
	routineStore store.RoutineStore,
	exerciseStore store.ExerciseStore,
	logger *slog.Logger,
) (RoutineService, error) {
	if routineStore == nil {
		return nil, &RoutineServiceError{
			Operation: "create_service",
			Message:   "routineStore cannot be nil",
		}
	}
	if exerciseStore == nil {
		return nil, &RoutineServiceError{
			Operation: "create_service",
			Message:   "exerciseStore cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &routineServiceImpl{
		routineStore:  routineStore,
		exerciseStore: exerciseStore,
		logger:        logger.With("component", "routine_service"),
	}, nil
}

// Create upserts each referenced exercise into the catalog keyed by its
// client-supplied ID, then builds and saves the routine. The catalog writes
// are idempotent, so a failed routine save leaves no inconsistent state
// behind.
func (s *routineServiceImpl) Create(
	ctx context.Context,
	coachID uuid.UUID,
	input CreateRoutineInput,
) (*domain.Routine, error) {
	entries := make([]domain.NewRoutineExerciseInput, 0, len(input.Exercises))

	for _, exerciseInput := range input.Exercises {
		if err := s.upsertCatalogExercise(ctx, exerciseInput, input.SportID); err != nil {
			return nil, err
		}
		entries = append(entries, domain.NewRoutineExerciseInput{
			ExerciseID:      exerciseInput.ID,
			SetsReps:        exerciseInput.SetsReps,
			DurationSeconds: exerciseInput.DurationSeconds,
		})
	}

	routine, err := domain.NewRoutine(
		input.Name,
		input.Level,
		coachID,
		input.SportID,
		input.Description,
		entries,
	)
	if err != nil {
		s.logger.Warn("routine construction failed",
			"error", err,
			"coach_id", coachID)
		return nil, NewRoutineServiceError("create_routine", "invalid routine data", err)
	}

	saved, err := s.routineStore.Save(ctx, routine)
	if err != nil {
		s.logger.Error("failed to save routine",
			"error", err,
			"routine_id", routine.ID,
			"coach_id", coachID)
		return nil, NewRoutineServiceError("create_routine", "failed to save routine", err)
	}

	s.logger.Info("routine created",
		"routine_id", saved.ID,
		"coach_id", coachID,
		"exercise_count", len(saved.Exercises))
	return saved, nil
}

// List retrieves the coach's routines and maps them to summary shapes.
// Estimated minutes round up so a 90 second routine shows as 2 minutes.
func (s *routineServiceImpl) List(
	ctx context.Context,
	coachID uuid.UUID,
	filters ListRoutinesFilters,
) ([]RoutineSummary, error) {
	routines, err := s.routineStore.Find(ctx, store.RoutineFilters{
		Level:   filters.Level,
		IDs:     filters.IDs,
		CoachID: coachID,
	})
	if err != nil {
		s.logger.Error("failed to list routines",
			"error", err,
			"coach_id", coachID)
		return nil, NewRoutineServiceError("list_routines", "failed to list routines", err)
	}

	summaries := make([]RoutineSummary, 0, len(routines))
	for _, routine := range routines {
		seconds := routine.EstimatedDurationSeconds()
		summaries = append(summaries, RoutineSummary{
			ID:                       routine.ID,
			Name:                     routine.Name,
			Level:                    routine.Level,
			SportID:                  routine.SportID,
			ExerciseCount:            len(routine.Exercises),
			EstimatedDurationMinutes: (seconds + 59) / 60,
		})
	}
	return summaries, nil
}

// GetDetails retrieves a routine and resolves each entry's category from
// the catalog, falling back to the keyword classifier for entries whose
// stored category is unusable.
func (s *routineServiceImpl) GetDetails(ctx context.Context, id uuid.UUID) (*RoutineDetails, error) {
	routine, err := s.routineStore.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRoutineNotFound) {
			return nil, ErrRoutineNotFound
		}
		s.logger.Error("failed to load routine details",
			"error", err,
			"routine_id", id)
		return nil, NewRoutineServiceError("get_routine_details", "failed to load routine", err)
	}

	details := &RoutineDetails{
		ID:                       routine.ID,
		Name:                     routine.Name,
		Level:                    routine.Level,
		SportID:                  routine.SportID,
		Description:              routine.Description,
		EstimatedDurationSeconds: routine.EstimatedDurationSeconds(),
		Exercises:                make([]ExerciseDetail, 0, len(routine.Exercises)),
	}

	for _, entry := range routine.Exercises {
		category := domain.InferCategory(entry.Name)
		if exercise, err := s.exerciseStore.FindByID(ctx, entry.ExerciseID); err == nil {
			category = domain.EffectiveCategory(exercise.Category, exercise.Name)
		}

		details.Exercises = append(details.Exercises, ExerciseDetail{
			ID:              entry.ExerciseID,
			Name:            entry.Name,
			Description:     entry.Description,
			SetsReps:        entry.SetsReps,
			DurationSeconds: entry.DurationSeconds,
			Category:        category,
		})
	}

	return details, nil
}

// Update checks existence before ownership so a missing routine reports 404
// rather than 403, then applies the patch.
func (s *routineServiceImpl) Update(
	ctx context.Context,
	coachID, id uuid.UUID,
	input UpdateRoutineInput,
) (*domain.Routine, error) {
	current, err := s.routineStore.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRoutineNotFound) {
			return nil, ErrRoutineNotFound
		}
		return nil, NewRoutineServiceError("update_routine", "failed to load routine", err)
	}

	owned, err := s.routineStore.ValidateOwnership(ctx, id, coachID)
	if err != nil {
		return nil, NewRoutineServiceError("update_routine", "failed to validate ownership", err)
	}
	if !owned {
		s.logger.Warn("routine update rejected: not owner",
			"routine_id", id,
			"coach_id", coachID)
		return nil, ErrNotOwned
	}

	patch := store.RoutineUpdate{
		Name:        input.Name,
		Level:       input.Level,
		Description: input.Description,
	}

	if input.Exercises != nil {
		entries := make([]domain.RoutineExercise, 0, len(input.Exercises))
		for i, exerciseInput := range input.Exercises {
			if err := s.upsertCatalogExercise(ctx, exerciseInput, current.SportID); err != nil {
				return nil, err
			}
			entries = append(entries, domain.RoutineExercise{
				ExerciseID:      exerciseInput.ID,
				Name:            exerciseInput.Name,
				Description:     exerciseInput.Description,
				SetsReps:        exerciseInput.SetsReps,
				DurationSeconds: exerciseInput.DurationSeconds,
				OrderIndex:      i + 1,
			})
		}
		patch.Exercises = entries
	}

	updated, err := s.routineStore.Update(ctx, id, patch)
	if err != nil {
		s.logger.Error("failed to update routine",
			"error", err,
			"routine_id", id,
			"coach_id", coachID)
		return nil, NewRoutineServiceError("update_routine", "failed to update routine", err)
	}

	s.logger.Info("routine updated",
		"routine_id", id,
		"coach_id", coachID)
	return updated, nil
}

// Delete checks existence before ownership, then delegates to the store's
// cascading delete.
func (s *routineServiceImpl) Delete(ctx context.Context, coachID, id uuid.UUID) error {
	if _, err := s.routineStore.FindByID(ctx, id); err != nil {
		if errors.Is(err, store.ErrRoutineNotFound) {
			return ErrRoutineNotFound
		}
		return NewRoutineServiceError("delete_routine", "failed to load routine", err)
	}

	owned, err := s.routineStore.ValidateOwnership(ctx, id, coachID)
	if err != nil {
		return NewRoutineServiceError("delete_routine", "failed to validate ownership", err)
	}
	if !owned {
		s.logger.Warn("routine delete rejected: not owner",
			"routine_id", id,
			"coach_id", coachID)
		return ErrNotOwned
	}

	if err := s.routineStore.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete routine",
			"error", err,
			"routine_id", id)
		return NewRoutineServiceError("delete_routine", "failed to delete routine", err)
	}

	s.logger.Info("routine deleted",
		"routine_id", id,
		"coach_id", coachID)
	return nil
}

// upsertCatalogExercise writes one catalog entry for a routine exercise
// input. The stored category is the provided one when valid; otherwise the
// keyword classifier fills it from the name.
func (s *routineServiceImpl) upsertCatalogExercise(
	ctx context.Context,
	input RoutineExerciseInput,
	sportID int,
) error {
	exercise, err := domain.ExerciseFromPersistence(
		input.ID,
		input.Name,
		input.Description,
		domain.EffectiveCategory(input.Category, input.Name),
		sportID,
		input.DurationSeconds,
	)
	if err != nil {
		s.logger.Warn("invalid exercise in routine command",
			"error", err,
			"exercise_id", input.ID)
		return NewRoutineServiceError("upsert_exercise", "invalid exercise data", err)
	}

	if _, err := s.exerciseStore.Save(ctx, exercise); err != nil {
		s.logger.Error("failed to upsert catalog exercise",
			"error", err,
			"exercise_id", input.ID,
			"sport_id", sportID)
		return NewRoutineServiceError("upsert_exercise", "failed to save exercise", err)
	}
	return nil
}
