package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// AssignmentStatus represents the athlete-facing state of an assignment.
type AssignmentStatus string

// Possible assignment status values. There is no enforced state machine
// beyond these three values; transitions are free-form.
const (
	AssignmentPending    AssignmentStatus = "PENDING"
	AssignmentInProgress AssignmentStatus = "IN_PROGRESS"
	AssignmentCompleted  AssignmentStatus = "COMPLETED"
)

// Common validation errors for Assignment
var (
	ErrEmptyAssignmentID       = errors.New("assignment ID cannot be empty")
	ErrEmptyAthleteID          = errors.New("assignment athlete ID cannot be empty")
	ErrEmptyAssignerID         = errors.New("assignment assigner ID cannot be empty")
	ErrAssignmentWithoutTarget = errors.New("an assignment must reference a routine or a goal")
	ErrAssignmentDoubleTarget  = errors.New("an assignment cannot reference both a routine and a goal")
	ErrInvalidAssignmentStatus = errors.New("invalid assignment status")
)

// Assignment hands a routine or a goal (exactly one, never both) to an
// athlete. It is immutable except for the status, which changes only
// through WithStatus.
type Assignment struct {
	ID         uuid.UUID        `json:"id"`
	AthleteID  uuid.UUID        `json:"athlete_id"`
	AssignerID uuid.UUID        `json:"assigner_id"`
	RoutineID  *uuid.UUID       `json:"routine_id,omitempty"`
	GoalID     *uuid.UUID       `json:"goal_id,omitempty"`
	Status     AssignmentStatus `json:"status"`
	AssignedAt time.Time        `json:"assigned_at"`
}

// NewAssignment creates a new Assignment with a generated ID, PENDING
// status, and the current time as AssignedAt. Exactly one of routineID
// and goalID must be non-nil; violating that fails construction, not
// persistence.
func NewAssignment(
	athleteID, assignerID uuid.UUID,
	routineID, goalID *uuid.UUID,
) (*Assignment, error) {
	assignment := &Assignment{
		ID:         uuid.New(),
		AthleteID:  athleteID,
		AssignerID: assignerID,
		RoutineID:  routineID,
		GoalID:     goalID,
		Status:     AssignmentPending,
		AssignedAt: time.Now().UTC(),
	}

	if err := assignment.Validate(); err != nil {
		return nil, err
	}

	return assignment, nil
}

// AssignmentFromPersistence reconstructs an Assignment from stored data.
// It trusts the stored ID and timestamp but still runs field validation,
// including the routine-XOR-goal invariant.
func AssignmentFromPersistence(
	id, athleteID, assignerID uuid.UUID,
	routineID, goalID *uuid.UUID,
	status AssignmentStatus,
	assignedAt time.Time,
) (*Assignment, error) {
	assignment := &Assignment{
		ID:         id,
		AthleteID:  athleteID,
		AssignerID: assignerID,
		RoutineID:  routineID,
		GoalID:     goalID,
		Status:     status,
		AssignedAt: assignedAt,
	}

	if err := assignment.Validate(); err != nil {
		return nil, err
	}

	return assignment, nil
}

// Validate checks if the Assignment has valid data.
func (a *Assignment) Validate() error {
	if a.ID == uuid.Nil {
		return ErrEmptyAssignmentID
	}
	if a.AthleteID == uuid.Nil {
		return ErrEmptyAthleteID
	}
	if a.AssignerID == uuid.Nil {
		return ErrEmptyAssignerID
	}
	if a.RoutineID == nil && a.GoalID == nil {
		return ErrAssignmentWithoutTarget
	}
	if a.RoutineID != nil && a.GoalID != nil {
		return ErrAssignmentDoubleTarget
	}
	if !IsValidAssignmentStatus(a.Status) {
		return ErrInvalidAssignmentStatus
	}
	return nil
}

// WithStatus returns a copy of the assignment carrying the new status.
// Returns an error if the status is not one of the three valid values.
func (a *Assignment) WithStatus(status AssignmentStatus) (*Assignment, error) {
	if !IsValidAssignmentStatus(status) {
		return nil, ErrInvalidAssignmentStatus
	}

	updated := *a
	updated.Status = status
	return &updated, nil
}

// TargetID returns the referenced routine or goal ID. The XOR invariant
// guarantees exactly one is set on any validated assignment.
func (a *Assignment) TargetID() uuid.UUID {
	if a.RoutineID != nil {
		return *a.RoutineID
	}
	if a.GoalID != nil {
		return *a.GoalID
	}
	return uuid.Nil
}

// IsValidAssignmentStatus checks if the given status is a valid
// AssignmentStatus.
func IsValidAssignmentStatus(status AssignmentStatus) bool {
	switch status {
	case AssignmentPending, AssignmentInProgress, AssignmentCompleted:
		return true
	default:
		return false
	}
}
