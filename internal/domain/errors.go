// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// validationErrors lists every sentinel a Validate method or factory can
// return, so callers can classify failures without enumerating them.
var validationErrors = []error{
	ErrValidation,
	ErrEmptySportName,
	ErrInvalidSportID,
	ErrEmptyExerciseID,
	ErrEmptyExerciseName,
	ErrNegativeDuration,
	ErrEmptyRoutineID,
	ErrEmptyRoutineName,
	ErrEmptyRoutineCoachID,
	ErrInvalidLevel,
	ErrRoutineNoExercises,
	ErrEmptySetsReps,
	ErrEmptyGoalID,
	ErrEmptyGoalCreatorID,
	ErrEmptyGoalDescription,
	ErrEmptyAssignmentID,
	ErrEmptyAthleteID,
	ErrEmptyAssignerID,
	ErrAssignmentWithoutTarget,
	ErrAssignmentDoubleTarget,
	ErrInvalidAssignmentStatus,
}

// IsValidationError reports whether err is one of the entity validation
// sentinels.
func IsValidationError(err error) bool {
	for _, sentinel := range validationErrors {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
