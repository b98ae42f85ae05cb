package domain

import (
	"errors"

	"github.com/google/uuid"
)

// RoutineLevel represents the target skill level of a routine.
type RoutineLevel string

// Supported routine levels
const (
	LevelBeginner     RoutineLevel = "Beginner"
	LevelIntermediate RoutineLevel = "Intermediate"
	LevelAdvanced     RoutineLevel = "Advanced"
)

// Common validation errors for Routine
var (
	ErrEmptyRoutineID      = errors.New("routine ID cannot be empty")
	ErrEmptyRoutineName    = errors.New("routine name cannot be empty")
	ErrEmptyRoutineCoachID = errors.New("routine coach ID cannot be empty")
	ErrRoutineNoExercises  = errors.New("a routine must contain at least one exercise")
	ErrEmptySetsReps       = errors.New("sets/reps prescription cannot be empty")
	ErrInvalidLevel        = errors.New("invalid routine level")
)

// RoutineExercise is one ordered entry of a routine: a reference into the
// exercise catalog plus the per-routine prescription. Name and Description
// are denormalized from the catalog for read mapping and may be empty on
// a freshly built entry.
type RoutineExercise struct {
	ExerciseID      uuid.UUID `json:"exercise_id"`
	Name            string    `json:"name,omitempty"`
	Description     string    `json:"description,omitempty"`
	SetsReps        string    `json:"sets_reps"`
	DurationSeconds int       `json:"duration_seconds"`
	OrderIndex      int       `json:"order_index"`
}

// Validate checks if the RoutineExercise has valid data.
func (re *RoutineExercise) Validate() error {
	if re.ExerciseID == uuid.Nil {
		return ErrEmptyExerciseID
	}
	if re.SetsReps == "" {
		return ErrEmptySetsReps
	}
	if re.DurationSeconds < 0 {
		return ErrNegativeDuration
	}
	return nil
}

// Routine is a workout plan owned by a coach: an ordered, non-empty list of
// exercise prescriptions for a sport and target level. CoachID is immutable
// after creation and determines write and delete authorization.
type Routine struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Level       RoutineLevel      `json:"level"`
	CoachID     uuid.UUID         `json:"coach_id"`
	SportID     int               `json:"sport_id"`
	Description string            `json:"description,omitempty"`
	Exercises   []RoutineExercise `json:"exercises"`
}

// NewRoutineExerciseInput carries one exercise entry for NewRoutine.
type NewRoutineExerciseInput struct {
	ExerciseID      uuid.UUID
	SetsReps        string
	DurationSeconds int
}

// NewRoutine creates a new Routine with a generated ID. Order indexes are
// assigned 1-based in the order the exercises are given.
// Returns an error if validation fails.
func NewRoutine(
	name string,
	level RoutineLevel,
	coachID uuid.UUID,
	sportID int,
	description string,
	exercises []NewRoutineExerciseInput,
) (*Routine, error) {
	entries := make([]RoutineExercise, 0, len(exercises))
	for i, in := range exercises {
		entries = append(entries, RoutineExercise{
			ExerciseID:      in.ExerciseID,
			SetsReps:        in.SetsReps,
			DurationSeconds: in.DurationSeconds,
			OrderIndex:      i + 1,
		})
	}

	routine := &Routine{
		ID:          uuid.New(),
		Name:        name,
		Level:       level,
		CoachID:     coachID,
		SportID:     sportID,
		Description: description,
		Exercises:   entries,
	}

	if err := routine.Validate(); err != nil {
		return nil, err
	}

	return routine, nil
}

// RoutineFromPersistence reconstructs a Routine from stored data. It trusts
// the stored IDs and order indexes but still runs field validation.
func RoutineFromPersistence(
	id uuid.UUID,
	name string,
	level RoutineLevel,
	coachID uuid.UUID,
	sportID int,
	description string,
	exercises []RoutineExercise,
) (*Routine, error) {
	routine := &Routine{
		ID:          id,
		Name:        name,
		Level:       level,
		CoachID:     coachID,
		SportID:     sportID,
		Description: description,
		Exercises:   exercises,
	}

	if err := routine.Validate(); err != nil {
		return nil, err
	}

	return routine, nil
}

// Validate checks if the Routine has valid data, including every exercise
// entry. A routine must always contain at least one exercise.
func (r *Routine) Validate() error {
	if r.ID == uuid.Nil {
		return ErrEmptyRoutineID
	}
	if r.Name == "" {
		return ErrEmptyRoutineName
	}
	if !isValidLevel(r.Level) {
		return ErrInvalidLevel
	}
	if r.CoachID == uuid.Nil {
		return ErrEmptyRoutineCoachID
	}
	if r.SportID <= 0 {
		return ErrInvalidSportID
	}
	if len(r.Exercises) == 0 {
		return ErrRoutineNoExercises
	}
	for i := range r.Exercises {
		if err := r.Exercises[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// EstimatedDurationSeconds returns the sum of the member exercise durations.
// The value is derived on demand and never stored.
func (r *Routine) EstimatedDurationSeconds() int {
	total := 0
	for i := range r.Exercises {
		total += r.Exercises[i].DurationSeconds
	}
	return total
}

// isValidLevel checks if the given level is a valid RoutineLevel.
func isValidLevel(level RoutineLevel) bool {
	switch level {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	default:
		return false
	}
}
