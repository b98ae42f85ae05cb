package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dverdin/gymplan-api/internal/domain"
	"github.com/dverdin/gymplan-api/internal/service"
	"github.com/dverdin/gymplan-api/internal/service/auth"
	"github.com/dverdin/gymplan-api/internal/service/identity"
	"github.com/dverdin/gymplan-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrUnknownRole):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, service.ErrRoutineNotFound),
		errors.Is(err, service.ErrGoalNotFound),
		errors.Is(err, service.ErrSportNotFound),
		errors.Is(err, service.ErrExerciseNotFound),
		errors.Is(err, service.ErrAssignmentNotFound),
		errors.Is(err, service.ErrNoGym),
		store.IsNotFoundError(err):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrSportNameExists),
		errors.Is(err, store.ErrSportInUse):
		return http.StatusConflict

	// Semantically invalid commands
	case errors.Is(err, service.ErrInvalidTarget),
		errors.Is(err, service.ErrUnknownAthlete),
		errors.Is(err, store.ErrInvalidEntity),
		domain.IsValidationError(err):
		return http.StatusUnprocessableEntity

	// Identity service failures
	case errors.Is(err, identity.ErrUpstream):
		return http.StatusBadGateway

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrMissingToken):
		return "Authorization required"

	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrUnknownRole):
		return "Invalid token"

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned):
		return "You do not own this resource"

	// Not found errors
	case errors.Is(err, service.ErrRoutineNotFound):
		return "Routine not found"

	case errors.Is(err, service.ErrGoalNotFound):
		return "Goal not found"

	case errors.Is(err, service.ErrSportNotFound):
		return "Sport not found"

	case errors.Is(err, service.ErrExerciseNotFound):
		return "Exercise not found"

	case errors.Is(err, service.ErrAssignmentNotFound):
		return "Assignment not found"

	case errors.Is(err, service.ErrNoGym):
		return "No gym is registered for this coach"

	// Conflict errors
	case errors.Is(err, store.ErrSportNameExists):
		return "A sport with this name already exists"

	case errors.Is(err, store.ErrSportInUse):
		return "Sport is still referenced by routines or exercises"

	// Semantically invalid commands
	case errors.Is(err, service.ErrInvalidTarget):
		return "Assignment must reference exactly one routine or goal you own"

	case errors.Is(err, service.ErrUnknownAthlete):
		return "One or more athletes are not members of your gym"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Referenced entity does not exist"

	case domain.IsValidationError(err):
		// Domain sentinels carry no internal details; their text is safe.
		return capitalizeFirst(err.Error())

	case errors.Is(err, identity.ErrUpstream):
		return "Identity service unavailable"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from request validation
// errors and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format:
	// "Key: 'CreateSportRequest.Name' Error:Field validation for 'Name' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "gt", "gte":
		return "value too small"
	case "uuid":
		return "invalid identifier"
	default:
		return "validation failed"
	}
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
