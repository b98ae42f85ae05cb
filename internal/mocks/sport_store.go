package mocks

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"

	"github.com/dverdin/gymplan-api/internal/domain"
	"github.com/dverdin/gymplan-api/internal/store"
)

// MockSportStore implements store.SportStore for testing
type MockSportStore struct {
	// Function fields for customizable behavior
	CreateFn     func(ctx context.Context, sport *domain.Sport) (*domain.Sport, error)
	FindAllFn    func(ctx context.Context) ([]*domain.Sport, error)
	FindByIDFn   func(ctx context.Context, id int) (*domain.Sport, error)
	UpdateFn     func(ctx context.Context, id int, patch store.SportUpdate) (*domain.Sport, error)
	DeleteFn     func(ctx context.Context, id int) error
	NameExistsFn func(ctx context.Context, name string, excludeID int) (bool, error)

	// Data for default implementation
	mu     sync.Mutex
	Sports map[int]*domain.Sport
	nextID int

	// InUse lists sport IDs that the default Delete refuses to remove,
	// simulating routines or catalog exercises still referencing them.
	InUse map[int]bool
}

// NewMockSportStore creates a new mock store with initialized defaults
func NewMockSportStore() *MockSportStore {
	return &MockSportStore{
		Sports: make(map[int]*domain.Sport),
		InUse:  make(map[int]bool),
	}
}

// Create implements the SportStore interface
func (m *MockSportStore) Create(ctx context.Context, sport *domain.Sport) (*domain.Sport, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, sport)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.Sports {
		if strings.EqualFold(existing.Name, sport.Name) {
			return nil, store.ErrSportNameExists
		}
	}

	m.nextID++
	created := *sport
	created.ID = m.nextID
	m.Sports[created.ID] = &created
	return &created, nil
}

// FindAll implements the SportStore interface
func (m *MockSportStore) FindAll(ctx context.Context) ([]*domain.Sport, error) {
	if m.FindAllFn != nil {
		return m.FindAllFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	sports := make([]*domain.Sport, 0, len(m.Sports))
	for _, sport := range m.Sports {
		copied := *sport
		sports = append(sports, &copied)
	}
	sort.Slice(sports, func(i, j int) bool {
		return sports[i].Name < sports[j].Name
	})
	return sports, nil
}

// FindByID implements the SportStore interface
func (m *MockSportStore) FindByID(ctx context.Context, id int) (*domain.Sport, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	sport, exists := m.Sports[id]
	if !exists {
		return nil, store.ErrSportNotFound
	}
	copied := *sport
	return &copied, nil
}

// Update implements the SportStore interface
func (m *MockSportStore) Update(ctx context.Context, id int, patch store.SportUpdate) (*domain.Sport, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	sport, exists := m.Sports[id]
	if !exists {
		return nil, store.ErrSportNotFound
	}

	if patch.Name != nil {
		for otherID, other := range m.Sports {
			if otherID != id && strings.EqualFold(other.Name, *patch.Name) {
				return nil, store.ErrSportNameExists
			}
		}
		sport.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		sport.Description = strings.TrimSpace(*patch.Description)
	}

	copied := *sport
	return &copied, nil
}

// Delete implements the SportStore interface
func (m *MockSportStore) Delete(ctx context.Context, id int) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.Sports[id]; !exists {
		return store.ErrSportNotFound
	}
	if m.InUse[id] {
		return store.ErrSportInUse
	}

	delete(m.Sports, id)
	return nil
}

// NameExists implements the SportStore interface
func (m *MockSportStore) NameExists(ctx context.Context, name string, excludeID int) (bool, error) {
	if m.NameExistsFn != nil {
		return m.NameExistsFn(ctx, name, excludeID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for id, sport := range m.Sports {
		if id != excludeID && strings.EqualFold(sport.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

// WithTx implements the SportStore interface
// The mock has no transaction semantics, so it returns itself.
func (m *MockSportStore) WithTx(tx *sql.Tx) store.SportStore {
	return m
}
