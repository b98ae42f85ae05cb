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

// CreateAssignmentRequest represents a bulk assignment command. Exactly one
// of RoutineID and GoalID must be set; the service enforces it.
type CreateAssignmentRequest struct {
	AthleteIDs []string `json:"idsAtletas" validate:"required,min=1,dive,uuid"`
	RoutineID  *string  `json:"idRutina,omitempty" validate:"omitempty,uuid"`
	GoalID     *string  `json:"idMeta,omitempty"   validate:"omitempty,uuid"`
}

// AssignmentsCreatedResponse carries the number of assignments processed
type AssignmentsCreatedResponse struct {
	Count int `json:"cantidad"`
}

// UpdateAssignmentStatusRequest represents the request body for a status change
type UpdateAssignmentStatusRequest struct {
	Status string `json:"estado" validate:"required,oneof=PENDING IN_PROGRESS COMPLETED"`
}

// AssignmentResponse is the athlete-facing shape of an assignment
type AssignmentResponse struct {
	ID         string    `json:"id"`
	PlanType   string    `json:"tipoPlan"`
	PlanID     string    `json:"idPlan"`
	PlanName   string    `json:"nombrePlan"`
	AssignerID string    `json:"idAsignador"`
	Status     string    `json:"estado"`
	AssignedAt time.Time `json:"fechaAsignacion"`
}

// AssignmentHandler handles assignment-related HTTP requests
type AssignmentHandler struct {
	assignmentService service.AssignmentService
	validator         *validator.Validate
	logger            *slog.Logger
}

// NewAssignmentHandler creates a new AssignmentHandler
func NewAssignmentHandler(assignmentService service.AssignmentService, logger *slog.Logger) *AssignmentHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AssignmentHandler{
		assignmentService: assignmentService,
		validator:         validator.New(),
		logger:            logger.With("component", "assignment_handler"),
	}
}

// Create handles POST /api/v1/assignments requests
func (h *AssignmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	assignerID, ok := middleware.GetUserID(r)
	if !ok || assignerID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateAssignmentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	input := service.CreateAssignmentInput{}
	for _, raw := range req.AthleteIDs {
		athleteID, err := uuid.Parse(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid athlete ID")
			return
		}
		input.AthleteIDs = append(input.AthleteIDs, athleteID)
	}
	if req.RoutineID != nil {
		routineID, err := uuid.Parse(*req.RoutineID)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid routine ID")
			return
		}
		input.RoutineID = &routineID
	}
	if req.GoalID != nil {
		goalID, err := uuid.Parse(*req.GoalID)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid goal ID")
			return
		}
		input.GoalID = &goalID
	}

	count, err := h.assignmentService.Create(r.Context(), assignerID, middleware.GetAuthToken(r), input)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, AssignmentsCreatedResponse{Count: count})
}

// ListMine handles GET /api/v1/assignments/me requests
func (h *AssignmentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	athleteID, ok := middleware.GetUserID(r)
	if !ok || athleteID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	views, err := h.assignmentService.ListByAthlete(r.Context(), athleteID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	response := make([]AssignmentResponse, 0, len(views))
	for _, view := range views {
		response = append(response, AssignmentResponse{
			ID:         view.ID.String(),
			PlanType:   view.PlanType,
			PlanID:     view.PlanID.String(),
			PlanName:   view.PlanName,
			AssignerID: view.AssignerID.String(),
			Status:     string(view.Status),
			AssignedAt: view.AssignedAt,
		})
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// UpdateStatus handles PATCH /api/v1/assignments/{id} requests
func (h *AssignmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserID(r)
	if !ok || actorID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}
	role, ok := middleware.GetUserRole(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User role not found")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid assignment ID")
		return
	}

	var req UpdateAssignmentStatusRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	updated, err := h.assignmentService.UpdateStatus(
		r.Context(), actorID, role, id, domain.AssignmentStatus(req.Status))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{
		"id":     updated.ID.String(),
		"estado": string(updated.Status),
	})
}

// Delete handles DELETE /api/v1/assignments/{id} requests
func (h *AssignmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	assignerID, ok := middleware.GetUserID(r)
	if !ok || assignerID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid assignment ID")
		return
	}

	if err := h.assignmentService.Delete(r.Context(), assignerID, id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
