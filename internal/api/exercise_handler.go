package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dverdin/gymplan-api/internal/api/shared"
	"github.com/dverdin/gymplan-api/internal/service"
)

// ExerciseResponse represents the response data for a catalog exercise
type ExerciseResponse struct {
	ID                     string `json:"id"`
	Name                   string `json:"nombre"`
	Description            string `json:"descripcion,omitempty"`
	Category               string `json:"categoria"`
	SportID                int    `json:"idDeporte"`
	DefaultDurationSeconds int    `json:"duracionPorDefectoSegundos"`
}

// ExerciseHandler handles exercise catalog HTTP requests
type ExerciseHandler struct {
	exerciseService service.ExerciseService
	logger          *slog.Logger
}

// NewExerciseHandler creates a new ExerciseHandler
func NewExerciseHandler(exerciseService service.ExerciseService, logger *slog.Logger) *ExerciseHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExerciseHandler{
		exerciseService: exerciseService,
		logger:          logger.With("component", "exercise_handler"),
	}
}

// List handles GET /api/v1/exercises requests with an optional sportId
// query parameter.
func (h *ExerciseHandler) List(w http.ResponseWriter, r *http.Request) {
	sportID := 0
	if raw := r.URL.Query().Get("sportId"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid sportId parameter")
			return
		}
		sportID = parsed
	}

	views, err := h.exerciseService.List(r.Context(), sportID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	response := make([]ExerciseResponse, 0, len(views))
	for _, view := range views {
		response = append(response, exerciseToResponse(view))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// Get handles GET /api/v1/exercises/{id} requests
func (h *ExerciseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid exercise ID")
		return
	}

	view, err := h.exerciseService.Get(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, exerciseToResponse(*view))
}

func exerciseToResponse(view service.ExerciseView) ExerciseResponse {
	return ExerciseResponse{
		ID:                     view.ID.String(),
		Name:                   view.Name,
		Description:            view.Description,
		Category:               string(view.Category),
		SportID:                view.SportID,
		DefaultDurationSeconds: view.DefaultDurationSeconds,
	}
}
