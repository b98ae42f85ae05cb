package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dverdin/gymplan-api/internal/domain"
	"github.com/dverdin/gymplan-api/internal/service/auth"
	"github.com/dverdin/gymplan-api/internal/service/identity"
	"github.com/dverdin/gymplan-api/internal/store"
)

// Plan type labels used in athlete-facing assignment views.
const (
	PlanTypeRoutine = "Rutina"
	PlanTypeGoal    = "Meta"
)

// CreateAssignmentInput carries a bulk assignment command. Exactly one of
// RoutineID and GoalID must be set.
type CreateAssignmentInput struct {
	AthleteIDs []uuid.UUID
	RoutineID  *uuid.UUID
	GoalID     *uuid.UUID
}

// AssignmentView is the athlete-facing shape of an assignment with its
// plan name resolved.
type AssignmentView struct {
	ID         uuid.UUID               `json:"id"`
	PlanType   string                  `json:"plan_type"`
	PlanID     uuid.UUID               `json:"plan_id"`
	PlanName   string                  `json:"plan_name"`
	AssignerID uuid.UUID               `json:"assigner_id"`
	Status     domain.AssignmentStatus `json:"status"`
	AssignedAt time.Time               `json:"assigned_at"`
}

// AssignmentService provides assignment-related operations
type AssignmentService interface {
	// Create fans a routine or goal out to the named athletes. The target
	// must be owned by the assigner and every athlete must belong to the
	// assigner's gym roster. Pairs that are already assigned are skipped.
	// Returns the number of assignments processed.
	Create(ctx context.Context, assignerID uuid.UUID, authToken string, input CreateAssignmentInput) (int, error)

	// ListByAthlete retrieves the athlete's assignments, newest first, with
	// plan names resolved. Assignments whose target no longer resolves are
	// omitted.
	ListByAthlete(ctx context.Context, athleteID uuid.UUID) ([]AssignmentView, error)

	// UpdateStatus sets the status of an assignment. Athletes may only
	// update their own assignments; coaches only those they created.
	UpdateStatus(ctx context.Context, actorID uuid.UUID, role auth.Role, id uuid.UUID, status domain.AssignmentStatus) (*domain.Assignment, error)

	// Delete removes an assignment created by the assigner.
	Delete(ctx context.Context, assignerID, id uuid.UUID) error
}

// Common sentinel errors for AssignmentService
var (
	// ErrAssignmentNotFound indicates that the assignment does not exist
	ErrAssignmentNotFound = errors.New("assignment not found")
)

// AssignmentServiceError wraps errors from the assignment service with context.
type AssignmentServiceError struct {
	// Operation is the operation that failed (e.g., "create_assignments")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for AssignmentServiceError.
func (e *AssignmentServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("assignment service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("assignment service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *AssignmentServiceError) Unwrap() error {
	return e.Err
}

// NewAssignmentServiceError creates a new AssignmentServiceError.
// It returns known sentinel errors directly without wrapping.
func NewAssignmentServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrAssignmentNotFound) ||
		errors.Is(err, ErrNotOwned) ||
		errors.Is(err, ErrInvalidTarget) ||
		errors.Is(err, ErrUnknownAthlete) {
		return err
	}
	if errors.Is(err, store.ErrAssignmentNotFound) {
		return ErrAssignmentNotFound
	}
	// Upstream identity failures keep their identity so the API layer can
	// map them to 502.
	if errors.Is(err, identity.ErrUpstream) {
		return err
	}
	if domain.IsValidationError(err) || errors.Is(err, store.ErrInvalidEntity) {
		return err
	}

	return &AssignmentServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// assignmentServiceImpl implements the AssignmentService interface
type assignmentServiceImpl struct {
	assignmentStore store.AssignmentStore
	routineStore    store.RoutineStore
	goalStore       store.GoalStore
	identityClient  identity.Client
	logger          *slog.Logger
}

// NewAssignmentService creates a new AssignmentService.
// It returns an error if any of the required dependencies are nil.
func NewAssignmentService(
	assignmentStore store.AssignmentStore,
	routineStore store.RoutineStore,
	goalStore store.GoalStore,
	identityClient identity.Client,
	logger *slog.Logger,
) (AssignmentService, error) {
	if assignmentStore == nil {
		return nil, &AssignmentServiceError{
			Operation: "create_service",
			Message:   "assignmentStore cannot be nil",
		}
	}
	if routineStore == nil {
		return nil, &AssignmentServiceError{
			Operation: "create_service",
			Message:   "routineStore cannot be nil",
		}
	}
	if goalStore == nil {
		return nil, &AssignmentServiceError{
			Operation: "create_service",
			Message:   "goalStore cannot be nil",
		}
	}
	if identityClient == nil {
		return nil, &AssignmentServiceError{
			Operation: "create_service",
			Message:   "identityClient cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &assignmentServiceImpl{
		assignmentStore: assignmentStore,
		routineStore:    routineStore,
		goalStore:       goalStore,
		identityClient:  identityClient,
		logger:          logger.With("component", "assignment_service"),
	}, nil
}

// Create validates the target, the assigner's ownership of it, and the
// athletes' gym membership before fanning out one assignment per athlete.
// The batch insert skips (athlete, target) pairs that already exist, so
// re-running a command is safe.
func (s *assignmentServiceImpl) Create(
	ctx context.Context,
	assignerID uuid.UUID,
	authToken string,
	input CreateAssignmentInput,
) (int, error) {
	if (input.RoutineID == nil) == (input.GoalID == nil) {
		s.logger.Warn("assignment command rejected: target is not exactly one of routine or goal",
			"assigner_id", assignerID)
		return 0, ErrInvalidTarget
	}
	if len(input.AthleteIDs) == 0 {
		return 0, fmt.Errorf("%w: no athletes named", domain.ErrValidation)
	}

	if err := s.validateTarget(ctx, assignerID, input); err != nil {
		return 0, err
	}
	if err := s.validateAthletes(ctx, assignerID, authToken, input.AthleteIDs); err != nil {
		return 0, err
	}

	assignments := make([]*domain.Assignment, 0, len(input.AthleteIDs))
	for _, athleteID := range input.AthleteIDs {
		assignment, err := domain.NewAssignment(athleteID, assignerID, input.RoutineID, input.GoalID)
		if err != nil {
			return 0, NewAssignmentServiceError("create_assignments", "invalid assignment data", err)
		}
		assignments = append(assignments, assignment)
	}

	if err := s.assignmentStore.SaveBatch(ctx, assignments); err != nil {
		s.logger.Error("failed to save assignment batch",
			"error", err,
			"assigner_id", assignerID,
			"athlete_count", len(assignments))
		return 0, NewAssignmentServiceError("create_assignments", "failed to save assignments", err)
	}

	s.logger.Info("assignments created",
		"assigner_id", assignerID,
		"athlete_count", len(assignments))
	return len(assignments), nil
}

// validateTarget confirms the referenced routine or goal exists AND is owned
// by the assigner. Both failures surface as ErrInvalidTarget; the command
// must not reveal whether someone else's plan exists.
func (s *assignmentServiceImpl) validateTarget(
	ctx context.Context,
	assignerID uuid.UUID,
	input CreateAssignmentInput,
) error {
	var (
		ok  bool
		err error
	)

	if input.RoutineID != nil {
		ok, err = s.routineStore.ValidateOwnership(ctx, *input.RoutineID, assignerID)
	} else {
		ok, err = s.goalStore.ValidateOwner(ctx, *input.GoalID, assignerID)
	}
	if err != nil {
		return NewAssignmentServiceError("create_assignments", "failed to validate target", err)
	}
	if !ok {
		s.logger.Warn("assignment command rejected: target missing or not owned",
			"assigner_id", assignerID)
		return ErrInvalidTarget
	}
	return nil
}

// validateAthletes resolves the assigner's gym roster through the identity
// service and rejects the command if any named athlete is not an Atleta
// member of that gym.
func (s *assignmentServiceImpl) validateAthletes(
	ctx context.Context,
	assignerID uuid.UUID,
	authToken string,
	athleteIDs []uuid.UUID,
) error {
	gym, err := s.identityClient.GymForCoach(ctx, assignerID, authToken)
	if err != nil {
		if errors.Is(err, identity.ErrGymNotFound) {
			s.logger.Warn("assignment command rejected: assigner has no gym",
				"assigner_id", assignerID)
			return ErrUnknownAthlete
		}
		s.logger.Error("failed to resolve assigner gym",
			"error", err,
			"assigner_id", assignerID)
		return NewAssignmentServiceError("create_assignments", "failed to resolve gym", err)
	}

	members, err := s.identityClient.GymMembers(ctx, gym.ID, authToken)
	if err != nil {
		s.logger.Error("failed to list gym members",
			"error", err,
			"gym_id", gym.ID)
		return NewAssignmentServiceError("create_assignments", "failed to list gym members", err)
	}

	roster := make(map[uuid.UUID]struct{})
	for _, athlete := range identity.Athletes(members) {
		roster[athlete.ID] = struct{}{}
	}

	for _, athleteID := range athleteIDs {
		if _, found := roster[athleteID]; !found {
			s.logger.Warn("assignment command rejected: athlete not in roster",
				"assigner_id", assignerID,
				"athlete_id", athleteID)
			return ErrUnknownAthlete
		}
	}
	return nil
}

// ListByAthlete maps the athlete's assignments to views with resolved plan
// names. Rows whose routine or goal no longer resolves are dropped rather
// than surfaced half-empty.
func (s *assignmentServiceImpl) ListByAthlete(
	ctx context.Context,
	athleteID uuid.UUID,
) ([]AssignmentView, error) {
	assignments, err := s.assignmentStore.FindByAthleteID(ctx, athleteID)
	if err != nil {
		s.logger.Error("failed to list assignments",
			"error", err,
			"athlete_id", athleteID)
		return nil, NewAssignmentServiceError("list_assignments", "failed to list assignments", err)
	}

	views := make([]AssignmentView, 0, len(assignments))
	for _, assignment := range assignments {
		view, ok := s.resolveView(ctx, assignment)
		if !ok {
			continue
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *assignmentServiceImpl) resolveView(
	ctx context.Context,
	assignment *domain.Assignment,
) (AssignmentView, bool) {
	view := AssignmentView{
		ID:         assignment.ID,
		AssignerID: assignment.AssignerID,
		Status:     assignment.Status,
		AssignedAt: assignment.AssignedAt,
	}

	switch {
	case assignment.RoutineID != nil:
		routine, err := s.routineStore.FindByID(ctx, *assignment.RoutineID)
		if err != nil {
			s.logger.Warn("skipping assignment with unresolvable routine",
				"assignment_id", assignment.ID,
				"routine_id", *assignment.RoutineID)
			return AssignmentView{}, false
		}
		view.PlanType = PlanTypeRoutine
		view.PlanID = routine.ID
		view.PlanName = routine.Name
	case assignment.GoalID != nil:
		goal, err := s.goalStore.FindByID(ctx, *assignment.GoalID)
		if err != nil {
			s.logger.Warn("skipping assignment with unresolvable goal",
				"assignment_id", assignment.ID,
				"goal_id", *assignment.GoalID)
			return AssignmentView{}, false
		}
		view.PlanType = PlanTypeGoal
		view.PlanID = goal.ID
		view.PlanName = goal.Description
	default:
		return AssignmentView{}, false
	}

	return view, true
}

// UpdateStatus authorizes by role before touching the row: an athlete may
// only move their own assignment, a coach only one they created.
func (s *assignmentServiceImpl) UpdateStatus(
	ctx context.Context,
	actorID uuid.UUID,
	role auth.Role,
	id uuid.UUID,
	status domain.AssignmentStatus,
) (*domain.Assignment, error) {
	if !domain.IsValidAssignmentStatus(status) {
		return nil, domain.ErrInvalidAssignmentStatus
	}

	assignment, err := s.assignmentStore.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrAssignmentNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, NewAssignmentServiceError("update_status", "failed to load assignment", err)
	}

	switch role {
	case auth.RoleAthlete:
		if assignment.AthleteID != actorID {
			s.logger.Warn("status update rejected: not the assignee",
				"assignment_id", id,
				"actor_id", actorID)
			return nil, ErrNotOwned
		}
	default:
		owned, err := s.assignmentStore.ValidateOwner(ctx, id, actorID)
		if err != nil {
			return nil, NewAssignmentServiceError("update_status", "failed to validate ownership", err)
		}
		if !owned {
			s.logger.Warn("status update rejected: not the assigner",
				"assignment_id", id,
				"actor_id", actorID)
			return nil, ErrNotOwned
		}
	}

	updated, err := s.assignmentStore.UpdateStatus(ctx, id, status)
	if err != nil {
		s.logger.Error("failed to update assignment status",
			"error", err,
			"assignment_id", id)
		return nil, NewAssignmentServiceError("update_status", "failed to update status", err)
	}

	s.logger.Info("assignment status updated",
		"assignment_id", id,
		"status", status,
		"actor_id", actorID)
	return updated, nil
}

// Delete checks existence before ownership so a missing assignment reports
// 404 rather than 403.
func (s *assignmentServiceImpl) Delete(ctx context.Context, assignerID, id uuid.UUID) error {
	if _, err := s.assignmentStore.FindByID(ctx, id); err != nil {
		if errors.Is(err, store.ErrAssignmentNotFound) {
			return ErrAssignmentNotFound
		}
		return NewAssignmentServiceError("delete_assignment", "failed to load assignment", err)
	}

	owned, err := s.assignmentStore.ValidateOwner(ctx, id, assignerID)
	if err != nil {
		return NewAssignmentServiceError("delete_assignment", "failed to validate ownership", err)
	}
	if !owned {
		s.logger.Warn("assignment delete rejected: not the assigner",
			"assignment_id", id,
			"assigner_id", assignerID)
		return ErrNotOwned
	}

	if err := s.assignmentStore.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete assignment",
			"error", err,
			"assignment_id", id)
		return NewAssignmentServiceError("delete_assignment", "failed to delete assignment", err)
	}

	s.logger.Info("assignment deleted",
		"assignment_id", id,
		"assigner_id", assignerID)
	return nil
}
