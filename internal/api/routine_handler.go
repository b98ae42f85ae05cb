package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dverdin/gymplan-api/internal/api/middleware"
	"github.com/dverdin/gymplan-api/internal/api/shared"
	"github.com/dverdin/gymplan-api/internal/domain"
	"github.com/dverdin/gymplan-api/internal/service"
)

// RoutineExerciseRequest is one exercise entry of a routine command. The
// client supplies the exercise ID; the catalog is upserted from it.
type RoutineExerciseRequest struct {
	ID              string `json:"id"                       validate:"required,uuid"`
	Name            string `json:"nombre"                   validate:"required,min=1"`
	Description     string `json:"descripcion"`
	Category        string `json:"categoria"`
	SetsReps        string `json:"setsReps"                 validate:"required,min=1"`
	DurationSeconds int    `json:"duracionEstimadaSegundos" validate:"gte=0"`
}

// CreateRoutineRequest represents the request body for creating a routine
type CreateRoutineRequest struct {
	Name        string                   `json:"nombre"      validate:"required,min=1"`
	Level       string                   `json:"nivel"       validate:"required,oneof=Beginner Intermediate Advanced"`
	SportID     int                      `json:"idDeporte"   validate:"required,gt=0"`
	Description string                   `json:"descripcion"`
	Exercises   []RoutineExerciseRequest `json:"ejercicios"  validate:"required,min=1,dive"`
}

// UpdateRoutineRequest represents the request body for updating a routine.
// Omitted fields are left unchanged; a present exercise list replaces the
// routine's entries wholesale.
type UpdateRoutineRequest struct {
	Name        *string                  `json:"nombre,omitempty"      validate:"omitempty,min=1"`
	Level       *string                  `json:"nivel,omitempty"       validate:"omitempty,oneof=Beginner Intermediate Advanced"`
	Description *string                  `json:"descripcion,omitempty"`
	Exercises   []RoutineExerciseRequest `json:"ejercicios,omitempty"  validate:"omitempty,min=1,dive"`
}

// RoutineCreatedResponse carries the ID of a freshly created routine
type RoutineCreatedResponse struct {
	ID string `json:"id"`
}

// RoutineSummaryResponse is the list-view shape of a routine
type RoutineSummaryResponse struct {
	ID                       string `json:"id"`
	Name                     string `json:"nombre"`
	Level                    string `json:"nivel"`
	SportID                  int    `json:"idDeporte"`
	ExerciseCount            int    `json:"cantidadEjercicios"`
	EstimatedDurationMinutes int    `json:"duracionEstimadaMinutos"`
}

// RoutineExerciseResponse is one exercise entry of the detail view
type RoutineExerciseResponse struct {
	ID              string `json:"id"`
	Name            string `json:"nombre"`
	Description     string `json:"descripcion,omitempty"`
	SetsReps        string `json:"setsReps"`
	DurationSeconds int    `json:"duracionEstimadaSegundos"`
	Category        string `json:"categoria"`
}

// RoutineDetailResponse is the full detail view of a routine
type RoutineDetailResponse struct {
	ID                       string                    `json:"id"`
	Name                     string                    `json:"nombre"`
	Level                    string                    `json:"nivel"`
	SportID                  int                       `json:"idDeporte"`
	Description              string                    `json:"descripcion,omitempty"`
	EstimatedDurationSeconds int                       `json:"duracionEstimadaSegundos"`
	Exercises                []RoutineExerciseResponse `json:"ejercicios"`
}

// RoutineHandler handles routine-related HTTP requests
type RoutineHandler struct {
	routineService service.RoutineService
	validator      *validator.Validate
	logger         *slog.Logger
}

// NewRoutineHandler creates a new RoutineHandler
func NewRoutineHandler(routineService service.RoutineService, logger *slog.Logger) *RoutineHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RoutineHandler{
		routineService: routineService,
		validator:      validator.New(),
		logger:         logger.With("component", "routine_handler"),
	}
}

// Create handles POST /api/v1/routines requests
func (h *RoutineHandler) Create(w http.ResponseWriter, r *http.Request) {
	coachID, ok := middleware.GetUserID(r)
	if !ok || coachID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateRoutineRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	input, err := toCreateRoutineInput(req)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid exercise identifier")
		return
	}

	routine, err := h.routineService.Create(r.Context(), coachID, input)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, RoutineCreatedResponse{ID: routine.ID.String()})
}

// List handles GET /api/v1/routines requests. It accepts optional `nivel`
// and comma-separated `ids` query parameters and always scopes the result
// to the authenticated coach.
func (h *RoutineHandler) List(w http.ResponseWriter, r *http.Request) {
	coachID, ok := middleware.GetUserID(r)
	if !ok || coachID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	filters := service.ListRoutinesFilters{
		Level: domain.RoutineLevel(r.URL.Query().Get("nivel")),
	}
	if rawIDs := r.URL.Query().Get("ids"); rawIDs != "" {
		for _, raw := range strings.Split(rawIDs, ",") {
			id, err := uuid.Parse(strings.TrimSpace(raw))
			if err != nil {
				shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid routine ID in ids parameter")
				return
			}
			filters.IDs = append(filters.IDs, id)
		}
	}

	summaries, err := h.routineService.List(r.Context(), coachID, filters)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	response := make([]RoutineSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		response = append(response, RoutineSummaryResponse{
			ID:                       summary.ID.String(),
			Name:                     summary.Name,
			Level:                    string(summary.Level),
			SportID:                  summary.SportID,
			ExerciseCount:            summary.ExerciseCount,
			EstimatedDurationMinutes: summary.EstimatedDurationMinutes,
		})
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// Get handles GET /api/v1/routines/{id} requests
func (h *RoutineHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid routine ID")
		return
	}

	details, err := h.routineService.GetDetails(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, routineDetailToResponse(details))
}

// Update handles PUT /api/v1/routines/{id} requests
func (h *RoutineHandler) Update(w http.ResponseWriter, r *http.Request) {
	coachID, ok := middleware.GetUserID(r)
	if !ok || coachID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid routine ID")
		return
	}

	var req UpdateRoutineRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	input := service.UpdateRoutineInput{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.Level != nil {
		level := domain.RoutineLevel(*req.Level)
		input.Level = &level
	}
	if req.Exercises != nil {
		exercises, err := toExerciseInputs(req.Exercises)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid exercise identifier")
			return
		}
		input.Exercises = exercises
	}

	routine, err := h.routineService.Update(r.Context(), coachID, id, input)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, RoutineCreatedResponse{ID: routine.ID.String()})
}

// Delete handles DELETE /api/v1/routines/{id} requests
func (h *RoutineHandler) Delete(w http.ResponseWriter, r *http.Request) {
	coachID, ok := middleware.GetUserID(r)
	if !ok || coachID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid routine ID")
		return
	}

	if err := h.routineService.Delete(r.Context(), coachID, id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toCreateRoutineInput(req CreateRoutineRequest) (service.CreateRoutineInput, error) {
	exercises, err := toExerciseInputs(req.Exercises)
	if err != nil {
		return service.CreateRoutineInput{}, err
	}
	return service.CreateRoutineInput{
		Name:        req.Name,
		Level:       domain.RoutineLevel(req.Level),
		SportID:     req.SportID,
		Description: req.Description,
		Exercises:   exercises,
	}, nil
}

func toExerciseInputs(reqs []RoutineExerciseRequest) ([]service.RoutineExerciseInput, error) {
	inputs := make([]service.RoutineExerciseInput, 0, len(reqs))
	for _, req := range reqs {
		id, err := uuid.Parse(req.ID)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, service.RoutineExerciseInput{
			ID:              id,
			Name:            req.Name,
			Description:     req.Description,
			Category:        domain.ExerciseCategory(req.Category),
			SetsReps:        req.SetsReps,
			DurationSeconds: req.DurationSeconds,
		})
	}
	return inputs, nil
}

func routineDetailToResponse(details *service.RoutineDetails) RoutineDetailResponse {
	exercises := make([]RoutineExerciseResponse, 0, len(details.Exercises))
	for _, exercise := range details.Exercises {
		exercises = append(exercises, RoutineExerciseResponse{
			ID:              exercise.ID.String(),
			Name:            exercise.Name,
			Description:     exercise.Description,
			SetsReps:        exercise.SetsReps,
			DurationSeconds: exercise.DurationSeconds,
			Category:        string(exercise.Category),
		})
	}
	return RoutineDetailResponse{
		ID:                       details.ID.String(),
		Name:                     details.Name,
		Level:                    string(details.Level),
		SportID:                  details.SportID,
		Description:              details.Description,
		EstimatedDurationSeconds: details.EstimatedDurationSeconds,
		Exercises:                exercises,
	}
}
