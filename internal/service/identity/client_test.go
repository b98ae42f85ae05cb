package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dverdin/gymplan-api/internal/config"
)

func TestGymForCoach(t *testing.T) {
	ctx := context.Background()
	coachID := uuid.New()
	gymID := uuid.New()

	t.Run("resolves gym and passes token through", func(t *testing.T) {
		var gotPath, gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			_ = json.NewEncoder(w).Encode(Gym{ID: gymID, Name: "CapBox Central"})
		}))
		defer server.Close()

		client := NewHTTPClient(config.IdentityConfig{BaseURL: server.URL}, nil)
		gym, err := client.GymForCoach(ctx, coachID, "Bearer token-123")

		require.NoError(t, err)
		assert.Equal(t, gymID, gym.ID)
		assert.Equal(t, fmt.Sprintf("/usuarios/%s/gimnasio", coachID), gotPath)
		assert.Equal(t, "Bearer token-123", gotAuth)
	})

	t.Run("404 maps to gym not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := NewHTTPClient(config.IdentityConfig{BaseURL: server.URL}, nil)
		_, err := client.GymForCoach(ctx, coachID, "")
		assert.ErrorIs(t, err, ErrGymNotFound)
	})

	t.Run("empty gym id maps to gym not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(Gym{})
		}))
		defer server.Close()

		client := NewHTTPClient(config.IdentityConfig{BaseURL: server.URL}, nil)
		_, err := client.GymForCoach(ctx, coachID, "")
		assert.ErrorIs(t, err, ErrGymNotFound)
	})

	t.Run("5xx maps to upstream error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewHTTPClient(config.IdentityConfig{BaseURL: server.URL}, nil)
		_, err := client.GymForCoach(ctx, coachID, "")
		assert.ErrorIs(t, err, ErrUpstream)
	})
}

func TestGymMembers(t *testing.T) {
	ctx := context.Background()
	gymID := uuid.New()
	athleteID := uuid.New()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, fmt.Sprintf("/gimnasios/%s/miembros", gymID), r.URL.Path)
		_ = json.NewEncoder(w).Encode([]Member{
			{ID: athleteID, Name: "Ana", Email: "ana@example.com", Role: "Atleta", Level: "principiante"},
			{ID: uuid.New(), Name: "Luis", Email: "luis@example.com", Role: "Entrenador"},
		})
	}))
	defer server.Close()

	client := NewHTTPClient(config.IdentityConfig{BaseURL: server.URL}, nil)
	members, err := client.GymMembers(ctx, gymID, "")

	require.NoError(t, err)
	require.Len(t, members, 2)

	athletes := Athletes(members)
	require.Len(t, athletes, 1)
	assert.Equal(t, athleteID, athletes[0].ID)
	assert.Equal(t, "Ana", athletes[0].Name)
}
