package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/dverdin/gymplan-api/internal/api/shared"
	"github.com/dverdin/gymplan-api/internal/domain"
	"github.com/dverdin/gymplan-api/internal/service"
)

// CreateSportRequest represents the request body for creating a sport
type CreateSportRequest struct {
	Name        string `json:"nombre"      validate:"required,min=1"`
	Description string `json:"descripcion"`
}

// UpdateSportRequest represents the request body for updating a sport.
// Omitted fields are left unchanged.
type UpdateSportRequest struct {
	Name        *string `json:"nombre,omitempty"      validate:"omitempty,min=1"`
	Description *string `json:"descripcion,omitempty"`
}

// SportResponse represents the response data for a sport
type SportResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion,omitempty"`
}

// SportHandler handles sport-related HTTP requests
type SportHandler struct {
	sportService service.SportService
	validator    *validator.Validate
	logger       *slog.Logger
}

// NewSportHandler creates a new SportHandler
func NewSportHandler(sportService service.SportService, logger *slog.Logger) *SportHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SportHandler{
		sportService: sportService,
		validator:    validator.New(),
		logger:       logger.With("component", "sport_handler"),
	}
}

// Create handles POST /api/v1/sports requests
func (h *SportHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSportRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	sport, err := h.sportService.Create(r.Context(), service.CreateSportInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, sportToResponse(sport))
}

// List handles GET /api/v1/sports requests
func (h *SportHandler) List(w http.ResponseWriter, r *http.Request) {
	sports, err := h.sportService.List(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	response := make([]SportResponse, 0, len(sports))
	for _, sport := range sports {
		response = append(response, sportToResponse(sport))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// Get handles GET /api/v1/sports/{id} requests
func (h *SportHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid sport ID")
		return
	}

	sport, err := h.sportService.Get(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sportToResponse(sport))
}

// Update handles PUT /api/v1/sports/{id} requests
func (h *SportHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid sport ID")
		return
	}

	var req UpdateSportRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	sport, err := h.sportService.Update(r.Context(), id, service.UpdateSportInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sportToResponse(sport))
}

// Delete handles DELETE /api/v1/sports/{id} requests
func (h *SportHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid sport ID")
		return
	}

	if err := h.sportService.Delete(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func sportToResponse(sport *domain.Sport) SportResponse {
	return SportResponse{
		ID:          sport.ID,
		Name:        sport.Name,
		Description: sport.Description,
	}
}
