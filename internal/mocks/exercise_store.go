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

// MockExerciseStore implements store.ExerciseStore for testing
type MockExerciseStore struct {
	// Function fields for customizable behavior
	FindFn     func(ctx context.Context, filters store.ExerciseFilters) ([]*domain.Exercise, error)
	FindByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Exercise, error)
	SaveFn     func(ctx context.Context, exercise *domain.Exercise) (*domain.Exercise, error)

	// Data for default implementation
	mu        sync.Mutex
	Exercises map[uuid.UUID]*domain.Exercise

	// KnownSports restricts the sport IDs the default Save accepts. A nil
	// map accepts any sport.
	KnownSports map[int]bool
}

// NewMockExerciseStore creates a new mock store with initialized defaults
func NewMockExerciseStore() *MockExerciseStore {
	return &MockExerciseStore{
		Exercises: make(map[uuid.UUID]*domain.Exercise),
	}
}

// Find implements the ExerciseStore interface
func (m *MockExerciseStore) Find(
	ctx context.Context,
	filters store.ExerciseFilters,
) ([]*domain.Exercise, error) {
	if m.FindFn != nil {
		return m.FindFn(ctx, filters)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	exercises := []*domain.Exercise{}
	for _, exercise := range m.Exercises {
		if filters.SportID != 0 && exercise.SportID != filters.SportID {
			continue
		}
		copied := *exercise
		exercises = append(exercises, &copied)
	}
	sort.Slice(exercises, func(i, j int) bool {
		return exercises[i].Name < exercises[j].Name
	})
	return exercises, nil
}

// FindByID implements the ExerciseStore interface
func (m *MockExerciseStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Exercise, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	exercise, exists := m.Exercises[id]
	if !exists {
		return nil, store.ErrExerciseNotFound
	}
	copied := *exercise
	return &copied, nil
}

// Save implements the ExerciseStore interface with upsert semantics keyed
// by the exercise ID.
func (m *MockExerciseStore) Save(
	ctx context.Context,
	exercise *domain.Exercise,
) (*domain.Exercise, error) {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, exercise)
	}

	if err := exercise.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.KnownSports != nil && !m.KnownSports[exercise.SportID] {
		return nil, fmt.Errorf("%w: sport with ID %d not found",
			store.ErrInvalidEntity, exercise.SportID)
	}

	copied := *exercise
	m.Exercises[copied.ID] = &copied
	result := copied
	return &result, nil
}

// WithTx implements the ExerciseStore interface
// The mock has no transaction semantics, so it returns itself.
func (m *MockExerciseStore) WithTx(tx *sql.Tx) store.ExerciseStore {
	return m
}
