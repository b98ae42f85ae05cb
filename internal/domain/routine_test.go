package domain

import (
	"testing"

	"github.com/google/uuid"
)

func validExerciseInputs() []NewRoutineExerciseInput {
	return []NewRoutineExerciseInput{
		{ExerciseID: uuid.New(), SetsReps: "3x10", DurationSeconds: 60},
		{ExerciseID: uuid.New(), SetsReps: "4x12", DurationSeconds: 90},
	}
}

func TestNewRoutine(t *testing.T) {
	t.Parallel()
	coachID := uuid.New()

	routine, err := NewRoutine("Beginner Combos", LevelBeginner, coachID, 1, "", validExerciseInputs())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if routine.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if routine.CoachID != coachID {
		t.Errorf("Expected coach ID %s, got %s", coachID, routine.CoachID)
	}
	if len(routine.Exercises) != 2 {
		t.Fatalf("Expected 2 exercises, got %d", len(routine.Exercises))
	}

	// Order indexes are 1-based and contiguous
	for i, entry := range routine.Exercises {
		if entry.OrderIndex != i+1 {
			t.Errorf("Expected order index %d, got %d", i+1, entry.OrderIndex)
		}
	}
}

func TestNewRoutineRequiresExercises(t *testing.T) {
	t.Parallel()
	_, err := NewRoutine("Empty", LevelBeginner, uuid.New(), 1, "", nil)
	if err != ErrRoutineNoExercises {
		t.Errorf("Expected error %v, got %v", ErrRoutineNoExercises, err)
	}
}

func TestNewRoutineValidation(t *testing.T) {
	t.Parallel()
	coachID := uuid.New()

	_, err := NewRoutine("", LevelBeginner, coachID, 1, "", validExerciseInputs())
	if err != ErrEmptyRoutineName {
		t.Errorf("Expected error %v, got %v", ErrEmptyRoutineName, err)
	}

	_, err = NewRoutine("Combos", RoutineLevel("Pro"), coachID, 1, "", validExerciseInputs())
	if err != ErrInvalidLevel {
		t.Errorf("Expected error %v, got %v", ErrInvalidLevel, err)
	}

	_, err = NewRoutine("Combos", LevelAdvanced, uuid.Nil, 1, "", validExerciseInputs())
	if err != ErrEmptyRoutineCoachID {
		t.Errorf("Expected error %v, got %v", ErrEmptyRoutineCoachID, err)
	}

	_, err = NewRoutine("Combos", LevelAdvanced, coachID, 0, "", validExerciseInputs())
	if err != ErrInvalidSportID {
		t.Errorf("Expected error %v, got %v", ErrInvalidSportID, err)
	}

	_, err = NewRoutine("Combos", LevelAdvanced, coachID, 1, "", []NewRoutineExerciseInput{
		{ExerciseID: uuid.New(), SetsReps: "", DurationSeconds: 30},
	})
	if err != ErrEmptySetsReps {
		t.Errorf("Expected error %v, got %v", ErrEmptySetsReps, err)
	}
}

func TestEstimatedDurationSeconds(t *testing.T) {
	t.Parallel()
	routine, err := NewRoutine("Combos", LevelIntermediate, uuid.New(), 1, "", []NewRoutineExerciseInput{
		{ExerciseID: uuid.New(), SetsReps: "3x10", DurationSeconds: 60},
		{ExerciseID: uuid.New(), SetsReps: "3x10", DurationSeconds: 90},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if got := routine.EstimatedDurationSeconds(); got != 150 {
		t.Errorf("Expected estimated duration 150, got %d", got)
	}
}

func TestRoutineFromPersistenceValidates(t *testing.T) {
	t.Parallel()
	id := uuid.New()

	// Reconstruction keeps the minimum-one-exercise invariant
	_, err := RoutineFromPersistence(id, "Combos", LevelBeginner, uuid.New(), 1, "", nil)
	if err != ErrRoutineNoExercises {
		t.Errorf("Expected error %v, got %v", ErrRoutineNoExercises, err)
	}

	routine, err := RoutineFromPersistence(id, "Combos", LevelBeginner, uuid.New(), 1, "desc", []RoutineExercise{
		{ExerciseID: uuid.New(), SetsReps: "3x10", DurationSeconds: 45, OrderIndex: 1},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if routine.ID != id {
		t.Errorf("Expected ID %s, got %s", id, routine.ID)
	}
}
