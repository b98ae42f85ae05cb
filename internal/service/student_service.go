package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/dverdin/gymplan-api/internal/service/identity"
)

// Student is one athlete of the coach's gym as reported by the identity
// service.
type Student struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Level string    `json:"level,omitempty"`
}

// StudentService resolves the athletes a coach works with. The data lives
// in the identity service; this service only filters and reshapes it.
type StudentService interface {
	// List retrieves the athletes of the coach's gym, optionally filtered
	// by level. Returns ErrNoGym if the coach belongs to no gym.
	List(ctx context.Context, coachID uuid.UUID, authToken, levelFilter string) ([]Student, error)
}

// Common sentinel errors for StudentService
var (
	// ErrNoGym indicates the identity service reports no gym for the coach
	ErrNoGym = errors.New("coach has no gym")
)

// StudentServiceError wraps errors from the student service with context.
type StudentServiceError struct {
	// Operation is the operation that failed (e.g., "list_students")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for StudentServiceError.
func (e *StudentServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("student service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("student service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StudentServiceError) Unwrap() error {
	return e.Err
}

// NewStudentServiceError creates a new StudentServiceError.
// It returns known sentinel errors directly without wrapping.
func NewStudentServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrNoGym) {
		return err
	}
	if errors.Is(err, identity.ErrGymNotFound) {
		return ErrNoGym
	}
	if errors.Is(err, identity.ErrUpstream) {
		return err
	}

	return &StudentServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// studentServiceImpl implements the StudentService interface
type studentServiceImpl struct {
	identityClient identity.Client
	logger         *slog.Logger
}

// NewStudentService creates a new StudentService.
// It returns an error if the identity client is nil.
func NewStudentService(identityClient identity.Client, logger *slog.Logger) (StudentService, error) {
	if identityClient == nil {
		return nil, &StudentServiceError{
			Operation: "create_service",
			Message:   "identityClient cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &studentServiceImpl{
		identityClient: identityClient,
		logger:         logger.With("component", "student_service"),
	}, nil
}

// List resolves the coach's gym, lists its members, and keeps only the
// athletes. A level filter matches case-insensitively; empty means all.
func (s *studentServiceImpl) List(
	ctx context.Context,
	coachID uuid.UUID,
	authToken, levelFilter string,
) ([]Student, error) {
	gym, err := s.identityClient.GymForCoach(ctx, coachID, authToken)
	if err != nil {
		if errors.Is(err, identity.ErrGymNotFound) {
			s.logger.Warn("student listing rejected: coach has no gym",
				"coach_id", coachID)
			return nil, ErrNoGym
		}
		s.logger.Error("failed to resolve coach gym",
			"error", err,
			"coach_id", coachID)
		return nil, NewStudentServiceError("list_students", "failed to resolve gym", err)
	}

	members, err := s.identityClient.GymMembers(ctx, gym.ID, authToken)
	if err != nil {
		s.logger.Error("failed to list gym members",
			"error", err,
			"gym_id", gym.ID)
		return nil, NewStudentServiceError("list_students", "failed to list gym members", err)
	}

	athletes := identity.Athletes(members)
	students := make([]Student, 0, len(athletes))
	for _, athlete := range athletes {
		if levelFilter != "" && !strings.EqualFold(athlete.Level, levelFilter) {
			continue
		}
		students = append(students, Student{
			ID:    athlete.ID,
			Name:  athlete.Name,
			Email: athlete.Email,
			Level: athlete.Level,
		})
	}

	s.logger.Debug("students listed",
		"coach_id", coachID,
		"gym_id", gym.ID,
		"count", len(students))
	return students, nil
}
