package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dverdin/gymplan-api/internal/domain"
	"github.com/dverdin/gymplan-api/internal/mocks"
)

func newGoalServiceForTest(t *testing.T) (GoalService, *mocks.MockGoalStore) {
	t.Helper()

	goalStore := mocks.NewMockGoalStore()
	svc, err := NewGoalService(goalStore, nil)
	require.NoError(t, err)
	return svc, goalStore
}

func TestGoalServiceCreate(t *testing.T) {
	ctx := context.Background()
	coachID := uuid.New()

	t.Run("creates a goal with a due date", func(t *testing.T) {
		svc, _ := newGoalServiceForTest(t)
		due := time.Now().AddDate(0, 1, 0).UTC()

		goal, err := svc.Create(ctx, coachID, CreateGoalInput{
			Description: "Run 5k under 25 minutes",
			DueDate:     &due,
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, goal.ID)
		assert.Equal(t, coachID, goal.CreatorID)
		require.NotNil(t, goal.DueDate)
		assert.True(t, goal.DueDate.Equal(due))
	})

	t.Run("rejects empty description", func(t *testing.T) {
		svc, _ := newGoalServiceForTest(t)
		_, err := svc.Create(ctx, coachID, CreateGoalInput{Description: "  "})
		assert.ErrorIs(t, err, domain.ErrEmptyGoalDescription)
	})
}

func TestGoalServiceListByCreator(t *testing.T) {
	ctx := context.Background()
	coachID := uuid.New()
	svc, _ := newGoalServiceForTest(t)

	later := time.Now().AddDate(0, 2, 0)
	sooner := time.Now().AddDate(0, 1, 0)
	_, err := svc.Create(ctx, coachID, CreateGoalInput{Description: "later goal", DueDate: &later})
	require.NoError(t, err)
	_, err = svc.Create(ctx, coachID, CreateGoalInput{Description: "sooner goal", DueDate: &sooner})
	require.NoError(t, err)
	_, err = svc.Create(ctx, uuid.New(), CreateGoalInput{Description: "someone else's goal"})
	require.NoError(t, err)

	goals, err := svc.ListByCreator(ctx, coachID)
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, "sooner goal", goals[0].Description)
	assert.Equal(t, "later goal", goals[1].Description)
}

func TestGoalServiceUpdate(t *testing.T) {
	ctx := context.Background()
	coachID := uuid.New()

	t.Run("owner can update the description", func(t *testing.T) {
		svc, _ := newGoalServiceForTest(t)
		created, err := svc.Create(ctx, coachID, CreateGoalInput{Description: "original"})
		require.NoError(t, err)

		desc := "revised"
		updated, err := svc.Update(ctx, coachID, created.ID, UpdateGoalInput{Description: &desc})
		require.NoError(t, err)
		assert.Equal(t, "revised", updated.Description)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		svc, _ := newGoalServiceForTest(t)
		created, err := svc.Create(ctx, coachID, CreateGoalInput{Description: "original"})
		require.NoError(t, err)

		desc := "hijacked"
		_, err = svc.Update(ctx, uuid.New(), created.ID, UpdateGoalInput{Description: &desc})
		assert.ErrorIs(t, err, ErrNotOwned)
	})

	t.Run("missing goal reports not found before ownership", func(t *testing.T) {
		svc, _ := newGoalServiceForTest(t)
		desc := "ghost"
		_, err := svc.Update(ctx, coachID, uuid.New(), UpdateGoalInput{Description: &desc})
		assert.ErrorIs(t, err, ErrGoalNotFound)
	})
}

func TestGoalServiceDelete(t *testing.T) {
	ctx := context.Background()
	coachID := uuid.New()

	t.Run("delete cascades into assignments", func(t *testing.T) {
		svc, goalStore := newGoalServiceForTest(t)
		assignmentStore := mocks.NewMockAssignmentStore()
		goalStore.Assignments = assignmentStore

		created, err := svc.Create(ctx, coachID, CreateGoalInput{Description: "target"})
		require.NoError(t, err)

		assignment, err := domain.NewAssignment(uuid.New(), coachID, nil, &created.ID)
		require.NoError(t, err)
		require.NoError(t, assignmentStore.SaveBatch(ctx, []*domain.Assignment{assignment}))

		require.NoError(t, svc.Delete(ctx, coachID, created.ID))
		assert.Empty(t, assignmentStore.Assignments)

		_, err = svc.Get(ctx, created.ID)
		assert.ErrorIs(t, err, ErrGoalNotFound)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		svc, _ := newGoalServiceForTest(t)
		created, err := svc.Create(ctx, coachID, CreateGoalInput{Description: "target"})
		require.NoError(t, err)

		err = svc.Delete(ctx, uuid.New(), created.ID)
		assert.ErrorIs(t, err, ErrNotOwned)
	})
}
