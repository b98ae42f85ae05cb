package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dverdin/gymplan-api/internal/api"
	"github.com/dverdin/gymplan-api/internal/mocks"
	"github.com/dverdin/gymplan-api/internal/service"
)

func newSportRouterForTest(t *testing.T) (chi.Router, *mocks.MockSportStore) {
	t.Helper()

	sportStore := mocks.NewMockSportStore()
	sportService, err := service.NewSportService(sportStore, nil)
	require.NoError(t, err)

	handler := api.NewSportHandler(sportService, nil)

	r := chi.NewRouter()
	r.Route("/api/v1/sports", func(r chi.Router) {
		r.Post("/", handler.Create)
		r.Get("/", handler.List)
		r.Get("/{id}", handler.Get)
		r.Put("/{id}", handler.Update)
		r.Delete("/{id}", handler.Delete)
	})
	return r, sportStore
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestSportHandlerCreate(t *testing.T) {
	t.Run("creates sport", func(t *testing.T) {
		router, _ := newSportRouterForTest(t)

		rr := doJSON(t, router, http.MethodPost, "/api/v1/sports", map[string]string{
			"nombre":      "Boxeo",
			"descripcion": "Olympic boxing",
		})

		require.Equal(t, http.StatusCreated, rr.Code)
		var resp api.SportResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.NotZero(t, resp.ID)
		assert.Equal(t, "Boxeo", resp.Name)
		assert.Equal(t, "Olympic boxing", resp.Description)
	})

	t.Run("rejects missing name", func(t *testing.T) {
		router, _ := newSportRouterForTest(t)

		rr := doJSON(t, router, http.MethodPost, "/api/v1/sports", map[string]string{
			"descripcion": "no name",
		})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid Name")
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		router, _ := newSportRouterForTest(t)

		first := doJSON(t, router, http.MethodPost, "/api/v1/sports", map[string]string{"nombre": "Judo"})
		require.Equal(t, http.StatusCreated, first.Code)

		second := doJSON(t, router, http.MethodPost, "/api/v1/sports", map[string]string{"nombre": "judo"})
		assert.Equal(t, http.StatusConflict, second.Code)
		assert.Contains(t, second.Body.String(), "already exists")
	})
}

func TestSportHandlerGet(t *testing.T) {
	router, _ := newSportRouterForTest(t)

	created := doJSON(t, router, http.MethodPost, "/api/v1/sports", map[string]string{"nombre": "Crossfit"})
	require.Equal(t, http.StatusCreated, created.Code)
	var sport api.SportResponse
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &sport))

	t.Run("returns sport by id", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/api/v1/sports/"+itoa(sport.ID), nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var resp api.SportResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, sport.ID, resp.ID)
		assert.Equal(t, "Crossfit", resp.Name)
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/api/v1/sports/9999", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("non numeric id is 400", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/api/v1/sports/abc", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestSportHandlerDelete(t *testing.T) {
	router, sportStore := newSportRouterForTest(t)

	created := doJSON(t, router, http.MethodPost, "/api/v1/sports", map[string]string{"nombre": "Halterofilia"})
	require.Equal(t, http.StatusCreated, created.Code)
	var sport api.SportResponse
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &sport))

	t.Run("refuses referenced sport", func(t *testing.T) {
		sportStore.InUse[sport.ID] = true
		rr := doJSON(t, router, http.MethodDelete, "/api/v1/sports/"+itoa(sport.ID), nil)
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("deletes unreferenced sport", func(t *testing.T) {
		sportStore.InUse[sport.ID] = false
		rr := doJSON(t, router, http.MethodDelete, "/api/v1/sports/"+itoa(sport.ID), nil)
		require.Equal(t, http.StatusNoContent, rr.Code)

		gone := doJSON(t, router, http.MethodGet, "/api/v1/sports/"+itoa(sport.ID), nil)
		assert.Equal(t, http.StatusNotFound, gone.Code)
	})
}

func itoa(id int) string {
	return strconv.Itoa(id)
}
