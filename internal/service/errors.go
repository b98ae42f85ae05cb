// Package service provides application-level services for managing routines,
// assignments, goals, sports, and the exercise catalog.
package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// These errors represent common conditions that callers may want to check for with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in service-specific error types
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrNotOwned indicates a resource is owned by a different user than the one making the request.
	// This is typically returned when a coach attempts to modify a resource they don't own.
	// API layer should map this to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrInvalidTarget indicates an assignment command that does not reference
	// exactly one of a routine or a goal, or references one that does not
	// exist or is not owned by the assigner.
	// API layer should map this to HTTP 422 Unprocessable Entity.
	ErrInvalidTarget = errors.New("assignment target is invalid")

	// ErrUnknownAthlete indicates an assignment command naming an athlete the
	// identity service does not report in the assigner's gym roster.
	// API layer should map this to HTTP 422 Unprocessable Entity.
	ErrUnknownAthlete = errors.New("athlete not found in gym roster")
)
