package mocks

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dverdin/gymplan-api/internal/domain"
	"github.com/dverdin/gymplan-api/internal/store"
)

// MockGoalStore implements store.GoalStore for testing
type MockGoalStore struct {
	// Function fields for customizable behavior
	CreateFn        func(ctx context.Context, goal *domain.Goal) (*domain.Goal, error)
	FindByCreatorFn func(ctx context.Context, creatorID uuid.UUID) ([]*domain.Goal, error)
	FindByIDFn      func(ctx context.Context, id uuid.UUID) (*domain.Goal, error)
	UpdateFn        func(ctx context.Context, id uuid.UUID, patch store.GoalUpdate) (*domain.Goal, error)
	DeleteFn        func(ctx context.Context, id uuid.UUID) error
	ValidateOwnerFn func(ctx context.Context, goalID, creatorID uuid.UUID) (bool, error)

	// Data for default implementation
	mu    sync.Mutex
	Goals map[uuid.UUID]*domain.Goal

	// Assignments, when set, is cascaded into by the default Delete so
	// assignments referencing the removed goal disappear with it.
	Assignments *MockAssignmentStore
}

// NewMockGoalStore creates a new mock store with initialized defaults
func NewMockGoalStore() *MockGoalStore {
	return &MockGoalStore{
		Goals: make(map[uuid.UUID]*domain.Goal),
	}
}

// Create implements the GoalStore interface
func (m *MockGoalStore) Create(ctx context.Context, goal *domain.Goal) (*domain.Goal, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, goal)
	}

	if err := goal.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *goal
	m.Goals[copied.ID] = &copied
	result := copied
	return &result, nil
}

// FindByCreator implements the GoalStore interface, ordering by due date
// ascending with undated goals last.
func (m *MockGoalStore) FindByCreator(
	ctx context.Context,
	creatorID uuid.UUID,
) ([]*domain.Goal, error) {
	if m.FindByCreatorFn != nil {
		return m.FindByCreatorFn(ctx, creatorID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	goals := []*domain.Goal{}
	for _, goal := range m.Goals {
		if goal.CreatorID != creatorID {
			continue
		}
		copied := *goal
		goals = append(goals, &copied)
	}
	sort.Slice(goals, func(i, j int) bool {
		a, b := goals[i], goals[j]
		switch {
		case a.DueDate == nil && b.DueDate == nil:
			return a.CreatedAt.Before(b.CreatedAt)
		case a.DueDate == nil:
			return false
		case b.DueDate == nil:
			return true
		default:
			return a.DueDate.Before(*b.DueDate)
		}
	})
	return goals, nil
}

// FindByID implements the GoalStore interface
func (m *MockGoalStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	goal, exists := m.Goals[id]
	if !exists {
		return nil, store.ErrGoalNotFound
	}
	copied := *goal
	return &copied, nil
}

// Update implements the GoalStore interface
func (m *MockGoalStore) Update(
	ctx context.Context,
	id uuid.UUID,
	patch store.GoalUpdate,
) (*domain.Goal, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	goal, exists := m.Goals[id]
	if !exists {
		return nil, store.ErrGoalNotFound
	}

	if patch.Description != nil {
		trimmed := strings.TrimSpace(*patch.Description)
		if trimmed == "" {
			return nil, domain.ErrEmptyGoalDescription
		}
		goal.Description = trimmed
	}
	if patch.DueDate != nil {
		goal.DueDate = patch.DueDate
	}

	copied := *goal
	return &copied, nil
}

// Delete implements the GoalStore interface, cascading into the linked
// assignment store when one is wired.
func (m *MockGoalStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	if _, exists := m.Goals[id]; !exists {
		m.mu.Unlock()
		return store.ErrGoalNotFound
	}
	delete(m.Goals, id)
	m.mu.Unlock()

	if m.Assignments != nil {
		m.Assignments.removeByTarget(id)
	}
	return nil
}

// ValidateOwner implements the GoalStore interface
func (m *MockGoalStore) ValidateOwner(ctx context.Context, goalID, creatorID uuid.UUID) (bool, error) {
	if m.ValidateOwnerFn != nil {
		return m.ValidateOwnerFn(ctx, goalID, creatorID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	goal, exists := m.Goals[goalID]
	return exists && goal.CreatorID == creatorID, nil
}

// WithTx implements the GoalStore interface
// The mock has no transaction semantics, so it returns itself.
func (m *MockGoalStore) WithTx(tx *sql.Tx) store.GoalStore {
	return m
}
