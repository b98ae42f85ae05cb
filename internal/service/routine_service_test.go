package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dverdin/gymplan-api/internal/domain"
	"github.com/dverdin/gymplan-api/internal/mocks"
	"github.com/dverdin/gymplan-api/internal/store"
)

func newRoutineServiceForTest(t *testing.T) (RoutineService, *mocks.MockRoutineStore, *mocks.MockExerciseStore) {
	t.Helper()

	exerciseStore := mocks.NewMockExerciseStore()
	routineStore := mocks.NewMockRoutineStore()
	routineStore.Catalog = exerciseStore

	svc, err := NewRoutineService(routineStore, exerciseStore, nil)
	require.NoError(t, err)
	return svc, routineStore, exerciseStore
}

func boxingComboInput(exerciseID uuid.UUID) CreateRoutineInput {
	return CreateRoutineInput{
		Name:    "Beginner Combos",
		Level:   domain.LevelBeginner,
		SportID: 1,
		Exercises: []RoutineExerciseInput{
			{
				ID:              exerciseID,
				Name:            "Jab",
				Category:        domain.CategoryTechnique,
				SetsReps:        "3x10",
				DurationSeconds: 90,
			},
		},
	}
}

func TestRoutineServiceCreate(t *testing.T) {
	ctx := context.Background()
	coachID := uuid.New()

	t.Run("creates routine and upserts catalog exercises", func(t *testing.T) {
		svc, routineStore, exerciseStore := newRoutineServiceForTest(t)
		exerciseID := uuid.New()

		routine, err := svc.Create(ctx, coachID, boxingComboInput(exerciseID))
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, routine.ID)
		assert.Equal(t, coachID, routine.CoachID)
		require.Len(t, routine.Exercises, 1)
		assert.Equal(t, 1, routine.Exercises[0].OrderIndex)

		stored, err := exerciseStore.FindByID(ctx, exerciseID)
		require.NoError(t, err)
		assert.Equal(t, "Jab", stored.Name)
		assert.Len(t, routineStore.Routines, 1)
	})

	t.Run("repeated exercise reference keeps a single catalog record", func(t *testing.T) {
		svc, _, exerciseStore := newRoutineServiceForTest(t)
		exerciseID := uuid.New()

		_, err := svc.Create(ctx, coachID, boxingComboInput(exerciseID))
		require.NoError(t, err)

		second := boxingComboInput(exerciseID)
		second.Name = "Advanced Combos"
		second.Level = domain.LevelAdvanced
		second.Exercises[0].Description = "lead hand straight punch"
		_, err = svc.Create(ctx, coachID, second)
		require.NoError(t, err)

		assert.Len(t, exerciseStore.Exercises, 1)
		stored, err := exerciseStore.FindByID(ctx, exerciseID)
		require.NoError(t, err)
		assert.Equal(t, "lead hand straight punch", stored.Description)
	})

	t.Run("rejects routine without exercises", func(t *testing.T) {
		svc, _, _ := newRoutineServiceForTest(t)

		input := CreateRoutineInput{
			Name:    "Empty",
			Level:   domain.LevelBeginner,
			SportID: 1,
		}
		_, err := svc.Create(ctx, coachID, input)
		assert.ErrorIs(t, err, domain.ErrRoutineNoExercises)
	})

	t.Run("rejects exercise with empty sets and reps", func(t *testing.T) {
		svc, _, _ := newRoutineServiceForTest(t)

		input := boxingComboInput(uuid.New())
		input.Exercises[0].SetsReps = ""
		_, err := svc.Create(ctx, coachID, input)
		assert.ErrorIs(t, err, domain.ErrEmptySetsReps)
	})
}

func TestRoutineServiceList(t *testing.T) {
	ctx := context.Background()
	coachID := uuid.New()

	svc, _, _ := newRoutineServiceForTest(t)

	input := boxingComboInput(uuid.New())
	input.Exercises = append(input.Exercises, RoutineExerciseInput{
		ID:              uuid.New(),
		Name:            "Shadow Boxing",
		Category:        domain.CategoryEndurance,
		SetsReps:        "3 rounds",
		DurationSeconds: 60,
	})
	created, err := svc.Create(ctx, coachID, input)
	require.NoError(t, err)

	t.Run("summaries round estimated minutes up", func(t *testing.T) {
		summaries, err := svc.List(ctx, coachID, ListRoutinesFilters{})
		require.NoError(t, err)
		require.Len(t, summaries, 1)

		// 90 + 60 seconds rounds up to 3 minutes.
		assert.Equal(t, created.ID, summaries[0].ID)
		assert.Equal(t, 2, summaries[0].ExerciseCount)
		assert.Equal(t, 3, summaries[0].EstimatedDurationMinutes)
	})

	t.Run("list is scoped to the coach", func(t *testing.T) {
		summaries, err := svc.List(ctx, uuid.New(), ListRoutinesFilters{})
		require.NoError(t, err)
		assert.Empty(t, summaries)
	})

	t.Run("level filter applies", func(t *testing.T) {
		summaries, err := svc.List(ctx, coachID, ListRoutinesFilters{Level: domain.LevelAdvanced})
		require.NoError(t, err)
		assert.Empty(t, summaries)
	})
}

func TestRoutineServiceGetDetails(t *testing.T) {
	ctx := context.Background()
	coachID := uuid.New()

	t.Run("resolves categories from the catalog", func(t *testing.T) {
		svc, _, _ := newRoutineServiceForTest(t)

		created, err := svc.Create(ctx, coachID, boxingComboInput(uuid.New()))
		require.NoError(t, err)

		details, err := svc.GetDetails(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Beginner Combos", details.Name)
		assert.Equal(t, 90, details.EstimatedDurationSeconds)
		require.Len(t, details.Exercises, 1)
		assert.Equal(t, "Jab", details.Exercises[0].Name)
		assert.Equal(t, "3x10", details.Exercises[0].SetsReps)
		assert.Equal(t, domain.CategoryTechnique, details.Exercises[0].Category)
	})

	t.Run("falls back to the keyword classifier without a catalog row", func(t *testing.T) {
		svc, routineStore, _ := newRoutineServiceForTest(t)
		routineStore.Catalog = nil

		routine, err := domain.NewRoutine(
			"Legacy",
			domain.LevelBeginner,
			coachID,
			1,
			"",
			[]domain.NewRoutineExerciseInput{
				{ExerciseID: uuid.New(), SetsReps: "2x5", DurationSeconds: 30},
			},
		)
		require.NoError(t, err)
		routine.Exercises[0].Name = "Arm stretch warmup"
		_, err = routineStore.Save(ctx, routine)
		require.NoError(t, err)

		details, err := svc.GetDetails(ctx, routine.ID)
		require.NoError(t, err)
		require.Len(t, details.Exercises, 1)
		assert.Equal(t, domain.CategoryWarmup, details.Exercises[0].Category)
	})

	t.Run("unknown routine reports not found", func(t *testing.T) {
		svc, _, _ := newRoutineServiceForTest(t)
		_, err := svc.GetDetails(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrRoutineNotFound)
	})
}

func TestRoutineServiceUpdate(t *testing.T) {
	ctx := context.Background()
	coachID := uuid.New()

	t.Run("owner can rename", func(t *testing.T) {
		svc, _, _ := newRoutineServiceForTest(t)
		created, err := svc.Create(ctx, coachID, boxingComboInput(uuid.New()))
		require.NoError(t, err)

		name := "Renamed Combos"
		updated, err := svc.Update(ctx, coachID, created.ID, UpdateRoutineInput{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Renamed Combos", updated.Name)
		assert.Len(t, updated.Exercises, 1)
	})

	t.Run("exercise list is replaced wholesale", func(t *testing.T) {
		svc, _, _ := newRoutineServiceForTest(t)
		created, err := svc.Create(ctx, coachID, boxingComboInput(uuid.New()))
		require.NoError(t, err)

		updated, err := svc.Update(ctx, coachID, created.ID, UpdateRoutineInput{
			Exercises: []RoutineExerciseInput{
				{
					ID:              uuid.New(),
					Name:            "Cross",
					Category:        domain.CategoryTechnique,
					SetsReps:        "4x8",
					DurationSeconds: 120,
				},
			},
		})
		require.NoError(t, err)
		require.Len(t, updated.Exercises, 1)
		assert.Equal(t, "Cross", updated.Exercises[0].Name)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		svc, _, _ := newRoutineServiceForTest(t)
		created, err := svc.Create(ctx, coachID, boxingComboInput(uuid.New()))
		require.NoError(t, err)

		name := "Hijacked"
		_, err = svc.Update(ctx, uuid.New(), created.ID, UpdateRoutineInput{Name: &name})
		assert.ErrorIs(t, err, ErrNotOwned)
	})

	t.Run("missing routine reports not found before ownership", func(t *testing.T) {
		svc, _, _ := newRoutineServiceForTest(t)
		name := "Ghost"
		_, err := svc.Update(ctx, coachID, uuid.New(), UpdateRoutineInput{Name: &name})
		assert.ErrorIs(t, err, ErrRoutineNotFound)
	})
}

func TestRoutineServiceDelete(t *testing.T) {
	ctx := context.Background()
	coachID := uuid.New()

	t.Run("delete cascades into assignments", func(t *testing.T) {
		svc, routineStore, _ := newRoutineServiceForTest(t)
		assignmentStore := mocks.NewMockAssignmentStore()
		routineStore.Assignments = assignmentStore

		created, err := svc.Create(ctx, coachID, boxingComboInput(uuid.New()))
		require.NoError(t, err)

		assignment, err := domain.NewAssignment(uuid.New(), coachID, &created.ID, nil)
		require.NoError(t, err)
		require.NoError(t, assignmentStore.SaveBatch(ctx, []*domain.Assignment{assignment}))

		require.NoError(t, svc.Delete(ctx, coachID, created.ID))

		_, err = routineStore.FindByID(ctx, created.ID)
		assert.ErrorIs(t, err, store.ErrRoutineNotFound)
		assert.Empty(t, assignmentStore.Assignments)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		svc, _, _ := newRoutineServiceForTest(t)
		created, err := svc.Create(ctx, coachID, boxingComboInput(uuid.New()))
		require.NoError(t, err)

		err = svc.Delete(ctx, uuid.New(), created.ID)
		assert.ErrorIs(t, err, ErrNotOwned)
	})

	t.Run("missing routine reports not found", func(t *testing.T) {
		svc, _, _ := newRoutineServiceForTest(t)
		err := svc.Delete(ctx, coachID, uuid.New())
		assert.ErrorIs(t, err, ErrRoutineNotFound)
	})
}
