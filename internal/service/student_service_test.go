package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dverdin/gymplan-api/internal/service/identity"
)

func TestStudentServiceList(t *testing.T) {
	ctx := context.Background()
	coachID := uuid.New()

	newService := func(t *testing.T, client *identity.MockClient) StudentService {
		t.Helper()
		svc, err := NewStudentService(client, nil)
		require.NoError(t, err)
		return svc
	}

	rosterClient := func() *identity.MockClient {
		return &identity.MockClient{
			Gym: &identity.Gym{ID: uuid.New(), Name: "Iron Temple"},
			Members: []identity.Member{
				{ID: uuid.New(), Name: "Ana", Email: "ana@example.com", Role: "Atleta", Level: "Beginner"},
				{ID: uuid.New(), Name: "Luis", Email: "luis@example.com", Role: "Atleta", Level: "Advanced"},
				{ID: uuid.New(), Name: "Marco", Email: "marco@example.com", Role: "Entrenador"},
			},
		}
	}

	t.Run("keeps only the athletes", func(t *testing.T) {
		svc := newService(t, rosterClient())

		students, err := svc.List(ctx, coachID, testAuthToken, "")
		require.NoError(t, err)
		require.Len(t, students, 2)
		names := []string{students[0].Name, students[1].Name}
		assert.ElementsMatch(t, []string{"Ana", "Luis"}, names)
	})

	t.Run("level filter matches case-insensitively", func(t *testing.T) {
		svc := newService(t, rosterClient())

		students, err := svc.List(ctx, coachID, testAuthToken, "beginner")
		require.NoError(t, err)
		require.Len(t, students, 1)
		assert.Equal(t, "Ana", students[0].Name)
	})

	t.Run("coach without a gym reports ErrNoGym", func(t *testing.T) {
		svc := newService(t, &identity.MockClient{Err: identity.ErrGymNotFound})

		_, err := svc.List(ctx, coachID, testAuthToken, "")
		assert.ErrorIs(t, err, ErrNoGym)
	})

	t.Run("identity outage surfaces as upstream error", func(t *testing.T) {
		svc := newService(t, &identity.MockClient{Err: identity.ErrUpstream})

		_, err := svc.List(ctx, coachID, testAuthToken, "")
		assert.ErrorIs(t, err, identity.ErrUpstream)
	})
}
