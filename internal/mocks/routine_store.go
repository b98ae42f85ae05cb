package mocks

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dverdin/gymplan-api/internal/domain"
	"github.com/dverdin/gymplan-api/internal/store"
)

// MockRoutineStore implements store.RoutineStore for testing
type MockRoutineStore struct {
	// Function fields for customizable behavior
	SaveFn              func(ctx context.Context, routine *domain.Routine) (*domain.Routine, error)
	FindFn              func(ctx context.Context, filters store.RoutineFilters) ([]*domain.Routine, error)
	FindByIDFn          func(ctx context.Context, id uuid.UUID) (*domain.Routine, error)
	ValidateOwnershipFn func(ctx context.Context, routineID, coachID uuid.UUID) (bool, error)
	UpdateFn            func(ctx context.Context, id uuid.UUID, patch store.RoutineUpdate) (*domain.Routine, error)
	DeleteFn            func(ctx context.Context, id uuid.UUID) error

	// Data for default implementation
	mu       sync.Mutex
	Routines map[uuid.UUID]*domain.Routine

	// Catalog, when set, lets the default Save reject routines whose
	// entries reference unknown exercises.
	Catalog *MockExerciseStore

	// Assignments, when set, is cascaded into by the default Delete so
	// assignments referencing the removed routine disappear with it.
	Assignments *MockAssignmentStore
}

// NewMockRoutineStore creates a new mock store with initialized defaults
func NewMockRoutineStore() *MockRoutineStore {
	return &MockRoutineStore{
		Routines: make(map[uuid.UUID]*domain.Routine),
	}
}

// Save implements the RoutineStore interface
func (m *MockRoutineStore) Save(ctx context.Context, routine *domain.Routine) (*domain.Routine, error) {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, routine)
	}

	if err := routine.Validate(); err != nil {
		return nil, err
	}

	if m.Catalog != nil {
		for _, entry := range routine.Exercises {
			if _, err := m.Catalog.FindByID(ctx, entry.ExerciseID); err != nil {
				return nil, fmt.Errorf("%w: exercise %s not in catalog",
					store.ErrInvalidEntity, entry.ExerciseID)
			}
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneRoutine(routine)
	m.Routines[copied.ID] = copied
	result := cloneRoutine(copied)
	return result, nil
}

// Find implements the RoutineStore interface
func (m *MockRoutineStore) Find(
	ctx context.Context,
	filters store.RoutineFilters,
) ([]*domain.Routine, error) {
	if m.FindFn != nil {
		return m.FindFn(ctx, filters)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	wantIDs := map[uuid.UUID]bool{}
	for _, id := range filters.IDs {
		wantIDs[id] = true
	}

	routines := []*domain.Routine{}
	for _, routine := range m.Routines {
		if filters.Level != "" && routine.Level != filters.Level {
			continue
		}
		if filters.CoachID != uuid.Nil && routine.CoachID != filters.CoachID {
			continue
		}
		if len(wantIDs) > 0 && !wantIDs[routine.ID] {
			continue
		}
		routines = append(routines, cloneRoutine(routine))
	}
	sort.Slice(routines, func(i, j int) bool {
		return routines[i].Name < routines[j].Name
	})
	return routines, nil
}

// FindByID implements the RoutineStore interface
func (m *MockRoutineStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Routine, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	routine, exists := m.Routines[id]
	if !exists {
		return nil, store.ErrRoutineNotFound
	}
	return cloneRoutine(routine), nil
}

// ValidateOwnership implements the RoutineStore interface
func (m *MockRoutineStore) ValidateOwnership(
	ctx context.Context,
	routineID, coachID uuid.UUID,
) (bool, error) {
	if m.ValidateOwnershipFn != nil {
		return m.ValidateOwnershipFn(ctx, routineID, coachID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	routine, exists := m.Routines[routineID]
	return exists && routine.CoachID == coachID, nil
}

// Update implements the RoutineStore interface with replace-all exercise
// semantics matching the SQL implementation.
func (m *MockRoutineStore) Update(
	ctx context.Context,
	id uuid.UUID,
	patch store.RoutineUpdate,
) (*domain.Routine, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	routine, exists := m.Routines[id]
	if !exists {
		return nil, store.ErrRoutineNotFound
	}

	updated := cloneRoutine(routine)
	if patch.Name != nil {
		updated.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Level != nil {
		updated.Level = *patch.Level
	}
	if patch.Description != nil {
		updated.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Exercises != nil {
		updated.Exercises = append([]domain.RoutineExercise(nil), patch.Exercises...)
	}

	if err := updated.Validate(); err != nil {
		return nil, err
	}

	m.Routines[id] = cloneRoutine(updated)
	return updated, nil
}

// Delete implements the RoutineStore interface, cascading into the linked
// assignment store when one is wired.
func (m *MockRoutineStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	if _, exists := m.Routines[id]; !exists {
		m.mu.Unlock()
		return store.ErrRoutineNotFound
	}
	delete(m.Routines, id)
	m.mu.Unlock()

	if m.Assignments != nil {
		m.Assignments.removeByTarget(id)
	}
	return nil
}

// WithTx implements the RoutineStore interface
// The mock has no transaction semantics, so it returns itself.
func (m *MockRoutineStore) WithTx(tx *sql.Tx) store.RoutineStore {
	return m
}

func cloneRoutine(routine *domain.Routine) *domain.Routine {
	copied := *routine
	copied.Exercises = append([]domain.RoutineExercise(nil), routine.Exercises...)
	return &copied
}
