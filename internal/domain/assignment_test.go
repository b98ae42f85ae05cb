package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewAssignment(t *testing.T) {
	t.Parallel()
	athleteID := uuid.New()
	assignerID := uuid.New()
	routineID := uuid.New()
	goalID := uuid.New()

	// Routine target succeeds
	a, err := NewAssignment(athleteID, assignerID, &routineID, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if a.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if a.Status != AssignmentPending {
		t.Errorf("Expected status %s, got %s", AssignmentPending, a.Status)
	}
	if a.AssignedAt.IsZero() {
		t.Error("Expected non-zero AssignedAt time")
	}
	if a.TargetID() != routineID {
		t.Errorf("Expected target %s, got %s", routineID, a.TargetID())
	}

	// Goal target succeeds
	a, err = NewAssignment(athleteID, assignerID, nil, &goalID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if a.TargetID() != goalID {
		t.Errorf("Expected target %s, got %s", goalID, a.TargetID())
	}

	// Neither target fails
	_, err = NewAssignment(athleteID, assignerID, nil, nil)
	if err != ErrAssignmentWithoutTarget {
		t.Errorf("Expected error %v, got %v", ErrAssignmentWithoutTarget, err)
	}

	// Both targets fail
	_, err = NewAssignment(athleteID, assignerID, &routineID, &goalID)
	if err != ErrAssignmentDoubleTarget {
		t.Errorf("Expected error %v, got %v", ErrAssignmentDoubleTarget, err)
	}

	// Missing athlete fails
	_, err = NewAssignment(uuid.Nil, assignerID, &routineID, nil)
	if err != ErrEmptyAthleteID {
		t.Errorf("Expected error %v, got %v", ErrEmptyAthleteID, err)
	}

	// Missing assigner fails
	_, err = NewAssignment(athleteID, uuid.Nil, &routineID, nil)
	if err != ErrEmptyAssignerID {
		t.Errorf("Expected error %v, got %v", ErrEmptyAssignerID, err)
	}
}

func TestAssignmentWithStatus(t *testing.T) {
	t.Parallel()
	routineID := uuid.New()
	a, err := NewAssignment(uuid.New(), uuid.New(), &routineID, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	updated, err := a.WithStatus(AssignmentInProgress)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if updated.Status != AssignmentInProgress {
		t.Errorf("Expected status %s, got %s", AssignmentInProgress, updated.Status)
	}

	// Original value is untouched
	if a.Status != AssignmentPending {
		t.Errorf("Expected original status %s, got %s", AssignmentPending, a.Status)
	}

	// Invalid status is rejected
	_, err = a.WithStatus(AssignmentStatus("DONE"))
	if err != ErrInvalidAssignmentStatus {
		t.Errorf("Expected error %v, got %v", ErrInvalidAssignmentStatus, err)
	}
}

func TestAssignmentFromPersistenceKeepsInvariant(t *testing.T) {
	t.Parallel()
	routineID := uuid.New()
	goalID := uuid.New()

	// fromPersistence trusts IDs but still enforces the XOR invariant
	_, err := AssignmentFromPersistence(
		uuid.New(), uuid.New(), uuid.New(),
		&routineID, &goalID,
		AssignmentPending,
		time.Now().UTC(),
	)
	if err != ErrAssignmentDoubleTarget {
		t.Errorf("Expected error %v, got %v", ErrAssignmentDoubleTarget, err)
	}

	_, err = AssignmentFromPersistence(
		uuid.New(), uuid.New(), uuid.New(),
		nil, nil,
		AssignmentCompleted,
		time.Now().UTC(),
	)
	if err != ErrAssignmentWithoutTarget {
		t.Errorf("Expected error %v, got %v", ErrAssignmentWithoutTarget, err)
	}
}
