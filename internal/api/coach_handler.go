package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dverdin/gymplan-api/internal/api/middleware"
	"github.com/dverdin/gymplan-api/internal/api/shared"
	"github.com/dverdin/gymplan-api/internal/service"
)

// StudentResponse represents one athlete of the coach's gym
type StudentResponse struct {
	ID    string `json:"id"`
	Name  string `json:"nombre"`
	Email string `json:"email"`
	Level string `json:"nivel,omitempty"`
}

// CoachHandler handles coach-scoped HTTP requests backed by the identity
// service.
type CoachHandler struct {
	studentService service.StudentService
	logger         *slog.Logger
}

// NewCoachHandler creates a new CoachHandler
func NewCoachHandler(studentService service.StudentService, logger *slog.Logger) *CoachHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CoachHandler{
		studentService: studentService,
		logger:         logger.With("component", "coach_handler"),
	}
}

// Students handles GET /api/v1/coach/students requests with an optional
// `nivel` query parameter.
func (h *CoachHandler) Students(w http.ResponseWriter, r *http.Request) {
	coachID, ok := middleware.GetUserID(r)
	if !ok || coachID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	levelFilter := r.URL.Query().Get("nivel")

	students, err := h.studentService.List(r.Context(), coachID, middleware.GetAuthToken(r), levelFilter)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	response := make([]StudentResponse, 0, len(students))
	for _, student := range students {
		response = append(response, StudentResponse{
			ID:    student.ID.String(),
			Name:  student.Name,
			Email: student.Email,
			Level: student.Level,
		})
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}
