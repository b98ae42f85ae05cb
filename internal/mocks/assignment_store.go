package mocks

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/dverdin/gymplan-api/internal/domain"
	"github.com/dverdin/gymplan-api/internal/store"
)

// MockAssignmentStore implements store.AssignmentStore for testing
type MockAssignmentStore struct {
	// Function fields for customizable behavior
	SaveBatchFn       func(ctx context.Context, assignments []*domain.Assignment) error
	FindByAthleteIDFn func(ctx context.Context, athleteID uuid.UUID) ([]*domain.Assignment, error)
	FindByIDFn        func(ctx context.Context, id uuid.UUID) (*domain.Assignment, error)
	DeleteFn          func(ctx context.Context, id uuid.UUID) error
	UpdateStatusFn    func(ctx context.Context, id uuid.UUID, status domain.AssignmentStatus) (*domain.Assignment, error)
	ValidateOwnerFn   func(ctx context.Context, assignmentID, assignerID uuid.UUID) (bool, error)

	// Data for default implementation
	mu          sync.Mutex
	Assignments map[uuid.UUID]*domain.Assignment

	// KnownTargets restricts the routine and goal IDs the default
	// SaveBatch accepts. A nil map accepts any target.
	KnownTargets map[uuid.UUID]bool
}

// NewMockAssignmentStore creates a new mock store with initialized defaults
func NewMockAssignmentStore() *MockAssignmentStore {
	return &MockAssignmentStore{
		Assignments: make(map[uuid.UUID]*domain.Assignment),
	}
}

// SaveBatch implements the AssignmentStore interface with duplicate-skip
// semantics on the (athlete, target) pair.
func (m *MockAssignmentStore) SaveBatch(ctx context.Context, assignments []*domain.Assignment) error {
	if m.SaveBatchFn != nil {
		return m.SaveBatchFn(ctx, assignments)
	}

	for _, assignment := range assignments {
		if err := assignment.Validate(); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, assignment := range assignments {
		if m.KnownTargets != nil && !m.KnownTargets[assignment.TargetID()] {
			return fmt.Errorf("%w: assignment references a missing routine or goal",
				store.ErrInvalidEntity)
		}
	}

	for _, assignment := range assignments {
		if m.hasPairLocked(assignment.AthleteID, assignment.TargetID()) {
			continue
		}
		copied := *assignment
		m.Assignments[copied.ID] = &copied
	}
	return nil
}

// FindByAthleteID implements the AssignmentStore interface, newest first.
func (m *MockAssignmentStore) FindByAthleteID(
	ctx context.Context,
	athleteID uuid.UUID,
) ([]*domain.Assignment, error) {
	if m.FindByAthleteIDFn != nil {
		return m.FindByAthleteIDFn(ctx, athleteID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	assignments := []*domain.Assignment{}
	for _, assignment := range m.Assignments {
		if assignment.AthleteID != athleteID {
			continue
		}
		copied := *assignment
		assignments = append(assignments, &copied)
	}
	sort.Slice(assignments, func(i, j int) bool {
		return assignments[i].AssignedAt.After(assignments[j].AssignedAt)
	})
	return assignments, nil
}

// FindByID implements the AssignmentStore interface
func (m *MockAssignmentStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Assignment, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	assignment, exists := m.Assignments[id]
	if !exists {
		return nil, store.ErrAssignmentNotFound
	}
	copied := *assignment
	return &copied, nil
}

// Delete implements the AssignmentStore interface
func (m *MockAssignmentStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.Assignments[id]; !exists {
		return store.ErrAssignmentNotFound
	}
	delete(m.Assignments, id)
	return nil
}

// UpdateStatus implements the AssignmentStore interface
func (m *MockAssignmentStore) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.AssignmentStatus,
) (*domain.Assignment, error) {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, status)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	assignment, exists := m.Assignments[id]
	if !exists {
		return nil, store.ErrAssignmentNotFound
	}

	updated, err := assignment.WithStatus(status)
	if err != nil {
		return nil, err
	}
	m.Assignments[id] = updated

	copied := *updated
	return &copied, nil
}

// ValidateOwner implements the AssignmentStore interface
func (m *MockAssignmentStore) ValidateOwner(
	ctx context.Context,
	assignmentID, assignerID uuid.UUID,
) (bool, error) {
	if m.ValidateOwnerFn != nil {
		return m.ValidateOwnerFn(ctx, assignmentID, assignerID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	assignment, exists := m.Assignments[assignmentID]
	return exists && assignment.AssignerID == assignerID, nil
}

// WithTx implements the AssignmentStore interface
// The mock has no transaction semantics, so it returns itself.
func (m *MockAssignmentStore) WithTx(tx *sql.Tx) store.AssignmentStore {
	return m
}

// removeByTarget drops every assignment referencing the given routine or
// goal ID. Routine and goal mocks use it to mirror the cascade deletes of
// the SQL stores.
func (m *MockAssignmentStore) removeByTarget(targetID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, assignment := range m.Assignments {
		if assignment.TargetID() == targetID {
			delete(m.Assignments, id)
		}
	}
}

func (m *MockAssignmentStore) hasPairLocked(athleteID, targetID uuid.UUID) bool {
	for _, assignment := range m.Assignments {
		if assignment.AthleteID == athleteID && assignment.TargetID() == targetID {
			return true
		}
	}
	return false
}
