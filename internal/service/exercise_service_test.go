package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dverdin/gymplan-api/internal/domain"
	"github.com/dverdin/gymplan-api/internal/mocks"
)

func TestExerciseServiceList(t *testing.T) {
	ctx := context.Background()
	exerciseStore := mocks.NewMockExerciseStore()
	svc, err := NewExerciseService(exerciseStore, nil)
	require.NoError(t, err)

	jab, err := domain.NewExercise("Jab", "lead hand punch", domain.CategoryTechnique, 1, 60)
	require.NoError(t, err)
	_, err = exerciseStore.Save(ctx, jab)
	require.NoError(t, err)

	burpees, err := domain.NewExercise("Burpees", "", domain.CategoryEndurance, 2, 120)
	require.NoError(t, err)
	_, err = exerciseStore.Save(ctx, burpees)
	require.NoError(t, err)

	t.Run("lists the whole catalog", func(t *testing.T) {
		views, err := svc.List(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, views, 2)
	})

	t.Run("sport filter applies", func(t *testing.T) {
		views, err := svc.List(ctx, 1)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "Jab", views[0].Name)
		assert.Equal(t, domain.CategoryTechnique, views[0].Category)
	})
}

func TestExerciseServiceGet(t *testing.T) {
	ctx := context.Background()
	exerciseStore := mocks.NewMockExerciseStore()
	svc, err := NewExerciseService(exerciseStore, nil)
	require.NoError(t, err)

	t.Run("returns the exercise with its category", func(t *testing.T) {
		jab, err := domain.NewExercise("Jab", "", domain.CategoryTechnique, 1, 60)
		require.NoError(t, err)
		_, err = exerciseStore.Save(ctx, jab)
		require.NoError(t, err)

		view, err := svc.Get(ctx, jab.ID)
		require.NoError(t, err)
		assert.Equal(t, jab.ID, view.ID)
		assert.Equal(t, domain.CategoryTechnique, view.Category)
	})

	t.Run("unknown ID reports not found", func(t *testing.T) {
		_, err := svc.Get(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrExerciseNotFound)
	})
}
