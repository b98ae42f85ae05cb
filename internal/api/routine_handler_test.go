package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dverdin/gymplan-api/internal/api"
	"github.com/dverdin/gymplan-api/internal/api/shared"
	"github.com/dverdin/gymplan-api/internal/mocks"
	"github.com/dverdin/gymplan-api/internal/service"
	"github.com/dverdin/gymplan-api/internal/service/auth"
)

// asUser simulates the authentication middleware by injecting the identity
// the token validator would have extracted.
func asUser(userID uuid.UUID, role auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), shared.UserIDContextKey, userID)
			ctx = context.WithValue(ctx, shared.UserRoleContextKey, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newRoutineRouterForTest(t *testing.T, coachID uuid.UUID) chi.Router {
	t.Helper()

	exerciseStore := mocks.NewMockExerciseStore()
	routineStore := mocks.NewMockRoutineStore()
	routineStore.Catalog = exerciseStore

	routineService, err := service.NewRoutineService(routineStore, exerciseStore, nil)
	require.NoError(t, err)

	return mountRoutineRoutes(api.NewRoutineHandler(routineService, nil), coachID)
}

func mountRoutineRoutes(handler *api.RoutineHandler, coachID uuid.UUID) chi.Router {
	r := chi.NewRouter()
	r.Route("/api/v1/routines", func(r chi.Router) {
		r.Use(asUser(coachID, auth.RoleCoach))
		r.Post("/", handler.Create)
		r.Get("/", handler.List)
		r.Get("/{id}", handler.Get)
		r.Put("/{id}", handler.Update)
		r.Delete("/{id}", handler.Delete)
	})
	return r
}

func comboRoutineBody() map[string]any {
	return map[string]any{
		"nombre":    "Beginner Combos",
		"nivel":     "Beginner",
		"idDeporte": 1,
		"ejercicios": []map[string]any{
			{
				"id":                       uuid.NewString(),
				"nombre":                   "Jab",
				"categoria":                "technique",
				"setsReps":                 "3x10",
				"duracionEstimadaSegundos": 90,
			},
		},
	}
}

func TestRoutineHandlerCreate(t *testing.T) {
	coachID := uuid.New()

	t.Run("creates routine", func(t *testing.T) {
		router := newRoutineRouterForTest(t, coachID)

		rr := doJSON(t, router, http.MethodPost, "/api/v1/routines", comboRoutineBody())

		require.Equal(t, http.StatusCreated, rr.Code)
		var resp api.RoutineCreatedResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		_, err := uuid.Parse(resp.ID)
		assert.NoError(t, err)
	})

	t.Run("rejects unknown level", func(t *testing.T) {
		router := newRoutineRouterForTest(t, coachID)

		body := comboRoutineBody()
		body["nivel"] = "Expert"
		rr := doJSON(t, router, http.MethodPost, "/api/v1/routines", body)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid Level")
	})

	t.Run("rejects empty exercise list", func(t *testing.T) {
		router := newRoutineRouterForTest(t, coachID)

		body := comboRoutineBody()
		body["ejercicios"] = []map[string]any{}
		rr := doJSON(t, router, http.MethodPost, "/api/v1/routines", body)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestRoutineHandlerListAndGet(t *testing.T) {
	coachID := uuid.New()
	router := newRoutineRouterForTest(t, coachID)

	created := doJSON(t, router, http.MethodPost, "/api/v1/routines", comboRoutineBody())
	require.Equal(t, http.StatusCreated, created.Code)
	var createdResp api.RoutineCreatedResponse
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &createdResp))

	t.Run("lists own routines with summary fields", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/api/v1/routines", nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var resp []api.RoutineSummaryResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, createdResp.ID, resp[0].ID)
		assert.Equal(t, 1, resp[0].ExerciseCount)
		assert.Equal(t, 2, resp[0].EstimatedDurationMinutes)
	})

	t.Run("level filter excludes other levels", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/api/v1/routines?nivel=Advanced", nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var resp []api.RoutineSummaryResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Empty(t, resp)
	})

	t.Run("detail resolves exercise category", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/api/v1/routines/"+createdResp.ID, nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var resp api.RoutineDetailResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "Beginner Combos", resp.Name)
		require.Len(t, resp.Exercises, 1)
		assert.Equal(t, "technique", resp.Exercises[0].Category)
		assert.Equal(t, 90, resp.EstimatedDurationSeconds)
	})

	t.Run("unknown routine is 404", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/api/v1/routines/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("malformed id is 400", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/api/v1/routines/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestRoutineHandlerDelete(t *testing.T) {
	coachID := uuid.New()

	exerciseStore := mocks.NewMockExerciseStore()
	routineStore := mocks.NewMockRoutineStore()
	routineStore.Catalog = exerciseStore
	routineService, err := service.NewRoutineService(routineStore, exerciseStore, nil)
	require.NoError(t, err)
	handler := api.NewRoutineHandler(routineService, nil)

	router := mountRoutineRoutes(handler, coachID)
	strangerRouter := mountRoutineRoutes(handler, uuid.New())

	created := doJSON(t, router, http.MethodPost, "/api/v1/routines", comboRoutineBody())
	require.Equal(t, http.StatusCreated, created.Code)
	var createdResp api.RoutineCreatedResponse
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &createdResp))

	t.Run("stranger cannot delete", func(t *testing.T) {
		rr := doJSON(t, strangerRouter, http.MethodDelete, "/api/v1/routines/"+createdResp.ID, nil)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("owner deletes", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodDelete, "/api/v1/routines/"+createdResp.ID, nil)
		require.Equal(t, http.StatusNoContent, rr.Code)

		gone := doJSON(t, router, http.MethodGet, "/api/v1/routines/"+createdResp.ID, nil)
		assert.Equal(t, http.StatusNotFound, gone.Code)
	})
}
