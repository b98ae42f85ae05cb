package domain

import (
	"errors"

	"github.com/google/uuid"
)

// ExerciseCategory classifies a catalog exercise.
type ExerciseCategory string

// Supported exercise categories
const (
	CategoryWarmup    ExerciseCategory = "warmup"
	CategoryEndurance ExerciseCategory = "endurance"
	CategoryTechnique ExerciseCategory = "technique"
)

// DefaultCategory is used when a client supplies no category or an unknown
// one. The catalog favors availability over strictness here: an invalid
// category is normalized, never rejected.
const DefaultCategory = CategoryEndurance

// Common validation errors for Exercise
var (
	ErrEmptyExerciseID   = errors.New("exercise ID cannot be empty")
	ErrEmptyExerciseName = errors.New("exercise name cannot be empty")
	ErrNegativeDuration  = errors.New("duration cannot be negative")
)

// Exercise is a shared catalog entry, not owned by any routine. Routines
// reference exercises by ID and carry their own per-routine prescription
// (sets/reps, duration) in RoutineExercise.
type Exercise struct {
	ID                     uuid.UUID        `json:"id"`
	Name                   string           `json:"name"`
	Description            string           `json:"description,omitempty"`
	Category               ExerciseCategory `json:"category"`
	SportID                int              `json:"sport_id"`
	DefaultDurationSeconds int              `json:"default_duration_seconds"`
}

// NewExercise creates a new catalog Exercise with a generated ID. The
// category is normalized to DefaultCategory if unknown.
// Returns an error if validation fails.
func NewExercise(
	name, description string,
	category ExerciseCategory,
	sportID int,
	defaultDurationSeconds int,
) (*Exercise, error) {
	exercise := &Exercise{
		ID:                     uuid.New(),
		Name:                   name,
		Description:            description,
		Category:               NormalizeCategory(category),
		SportID:                sportID,
		DefaultDurationSeconds: defaultDurationSeconds,
	}

	if err := exercise.Validate(); err != nil {
		return nil, err
	}

	return exercise, nil
}

// ExerciseFromPersistence reconstructs an Exercise from stored data (or from
// a client-supplied ID in the upsert path). It skips ID generation but still
// validates the fields and normalizes the category.
func ExerciseFromPersistence(
	id uuid.UUID,
	name, description string,
	category ExerciseCategory,
	sportID int,
	defaultDurationSeconds int,
) (*Exercise, error) {
	exercise := &Exercise{
		ID:                     id,
		Name:                   name,
		Description:            description,
		Category:               NormalizeCategory(category),
		SportID:                sportID,
		DefaultDurationSeconds: defaultDurationSeconds,
	}

	if err := exercise.Validate(); err != nil {
		return nil, err
	}

	return exercise, nil
}

// Validate checks if the Exercise has valid data.
func (e *Exercise) Validate() error {
	if e.ID == uuid.Nil {
		return ErrEmptyExerciseID
	}
	if e.Name == "" {
		return ErrEmptyExerciseName
	}
	if e.SportID <= 0 {
		return ErrInvalidSportID
	}
	if e.DefaultDurationSeconds < 0 {
		return ErrNegativeDuration
	}
	return nil
}

// NormalizeCategory maps an unknown or empty category to DefaultCategory.
func NormalizeCategory(category ExerciseCategory) ExerciseCategory {
	switch category {
	case CategoryWarmup, CategoryEndurance, CategoryTechnique:
		return category
	default:
		return DefaultCategory
	}
}

// IsValidCategory reports whether the given category is one of the
// supported values.
func IsValidCategory(category ExerciseCategory) bool {
	switch category {
	case CategoryWarmup, CategoryEndurance, CategoryTechnique:
		return true
	default:
		return false
	}
}
