package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dverdin/gymplan-api/internal/domain"
	"github.com/dverdin/gymplan-api/internal/mocks"
	"github.com/dverdin/gymplan-api/internal/store"
)

func newSportServiceForTest(t *testing.T) (SportService, *mocks.MockSportStore) {
	t.Helper()

	sportStore := mocks.NewMockSportStore()
	svc, err := NewSportService(sportStore, nil)
	require.NoError(t, err)
	return svc, sportStore
}

func TestSportServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates and assigns an ID", func(t *testing.T) {
		svc, _ := newSportServiceForTest(t)

		sport, err := svc.Create(ctx, CreateSportInput{Name: "Boxing", Description: "striking"})
		require.NoError(t, err)
		assert.Greater(t, sport.ID, 0)
		assert.Equal(t, "Boxing", sport.Name)
	})

	t.Run("rejects duplicate names case-insensitively", func(t *testing.T) {
		svc, _ := newSportServiceForTest(t)

		_, err := svc.Create(ctx, CreateSportInput{Name: "Boxing"})
		require.NoError(t, err)

		_, err = svc.Create(ctx, CreateSportInput{Name: "boxing"})
		assert.ErrorIs(t, err, store.ErrSportNameExists)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		svc, _ := newSportServiceForTest(t)

		_, err := svc.Create(ctx, CreateSportInput{Name: "  "})
		assert.ErrorIs(t, err, domain.ErrEmptySportName)
	})
}

func TestSportServiceGet(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSportServiceForTest(t)

	created, err := svc.Create(ctx, CreateSportInput{Name: "Judo"})
	require.NoError(t, err)

	t.Run("returns the sport", func(t *testing.T) {
		sport, err := svc.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Judo", sport.Name)
	})

	t.Run("unknown ID reports not found", func(t *testing.T) {
		_, err := svc.Get(ctx, 9999)
		assert.ErrorIs(t, err, ErrSportNotFound)
	})
}

func TestSportServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("patches only the provided fields", func(t *testing.T) {
		svc, _ := newSportServiceForTest(t)
		created, err := svc.Create(ctx, CreateSportInput{Name: "Judo", Description: "grappling"})
		require.NoError(t, err)

		desc := "Olympic grappling"
		updated, err := svc.Update(ctx, created.ID, UpdateSportInput{Description: &desc})
		require.NoError(t, err)
		assert.Equal(t, "Judo", updated.Name)
		assert.Equal(t, "Olympic grappling", updated.Description)
	})

	t.Run("renaming onto an existing name conflicts", func(t *testing.T) {
		svc, _ := newSportServiceForTest(t)
		_, err := svc.Create(ctx, CreateSportInput{Name: "Boxing"})
		require.NoError(t, err)
		judo, err := svc.Create(ctx, CreateSportInput{Name: "Judo"})
		require.NoError(t, err)

		name := "Boxing"
		_, err = svc.Update(ctx, judo.ID, UpdateSportInput{Name: &name})
		assert.ErrorIs(t, err, store.ErrSportNameExists)
	})

	t.Run("unknown ID reports not found", func(t *testing.T) {
		svc, _ := newSportServiceForTest(t)
		name := "Karate"
		_, err := svc.Update(ctx, 42, UpdateSportInput{Name: &name})
		assert.ErrorIs(t, err, ErrSportNotFound)
	})
}

func TestSportServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes an unused sport", func(t *testing.T) {
		svc, _ := newSportServiceForTest(t)
		created, err := svc.Create(ctx, CreateSportInput{Name: "Judo"})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, created.ID))
		_, err = svc.Get(ctx, created.ID)
		assert.ErrorIs(t, err, ErrSportNotFound)
	})

	t.Run("refuses while referenced", func(t *testing.T) {
		svc, sportStore := newSportServiceForTest(t)

		created, err := svc.Create(ctx, CreateSportInput{Name: "Boxing"})
		require.NoError(t, err)
		sportStore.InUse[created.ID] = true

		err = svc.Delete(ctx, created.ID)
		assert.ErrorIs(t, err, store.ErrSportInUse)

		_, err = svc.Get(ctx, created.ID)
		assert.NoError(t, err)
	})

	t.Run("unknown ID reports not found", func(t *testing.T) {
		svc, _ := newSportServiceForTest(t)
		err := svc.Delete(ctx, 42)
		assert.ErrorIs(t, err, ErrSportNotFound)
	})
}
