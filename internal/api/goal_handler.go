package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dverdin/gymplan-api/internal/api/middleware"
	"github.com/dverdin/gymplan-api/internal/api/shared"
	"github.com/dverdin/gymplan-api/internal/domain"
	"github.com/dverdin/gymplan-api/internal/service"
)

// CreateGoalRequest represents the request body for creating a goal
type CreateGoalRequest struct {
	Description string     `json:"descripcion" validate:"required,min=1"`
	DueDate     *time.Time `json:"fechaLimite,omitempty"`
}

// UpdateGoalRequest represents the request body for updating a goal.
// Omitted fields are left unchanged.
type UpdateGoalRequest struct {
	Description *string    `json:"descripcion,omitempty" validate:"omitempty,min=1"`
	DueDate     *time.Time `json:"fechaLimite,omitempty"`
}

// GoalResponse represents the response data for a goal
type GoalResponse struct {
	ID          string     `json:"id"`
	Description string     `json:"descripcion"`
	DueDate     *time.Time `json:"fechaLimite,omitempty"`
	CreatedAt   time.Time  `json:"fechaCreacion"`
}

// GoalHandler handles goal-related HTTP requests
type GoalHandler struct {
	goalService service.GoalService
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(goalService service.GoalService, logger *slog.Logger) *GoalHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GoalHandler{
		goalService: goalService,
		validator:   validator.New(),
		logger:      logger.With("component", "goal_handler"),
	}
}

// Create handles POST /api/v1/goals requests
func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	creatorID, ok := middleware.GetUserID(r)
	if !ok || creatorID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateGoalRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	goal, err := h.goalService.Create(r.Context(), creatorID, service.CreateGoalInput{
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, goalToResponse(goal))
}

// List handles GET /api/v1/goals requests, scoped to the creator
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	creatorID, ok := middleware.GetUserID(r)
	if !ok || creatorID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	goals, err := h.goalService.ListByCreator(r.Context(), creatorID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	response := make([]GoalResponse, 0, len(goals))
	for _, goal := range goals {
		response = append(response, goalToResponse(goal))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// Get handles GET /api/v1/goals/{id} requests
func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid goal ID")
		return
	}

	goal, err := h.goalService.Get(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, goalToResponse(goal))
}

// Update handles PUT /api/v1/goals/{id} requests
func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	creatorID, ok := middleware.GetUserID(r)
	if !ok || creatorID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid goal ID")
		return
	}

	var req UpdateGoalRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	goal, err := h.goalService.Update(r.Context(), creatorID, id, service.UpdateGoalInput{
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, goalToResponse(goal))
}

// Delete handles DELETE /api/v1/goals/{id} requests
func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	creatorID, ok := middleware.GetUserID(r)
	if !ok || creatorID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid goal ID")
		return
	}

	if err := h.goalService.Delete(r.Context(), creatorID, id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func goalToResponse(goal *domain.Goal) GoalResponse {
	return GoalResponse{
		ID:          goal.ID.String(),
		Description: goal.Description,
		DueDate:     goal.DueDate,
		CreatedAt:   goal.CreatedAt,
	}
}
