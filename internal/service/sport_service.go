package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dverdin/gymplan-api/internal/domain"
	"github.com/dverdin/gymplan-api/internal/store"
)

// CreateSportInput carries a validated create-sport command.
type CreateSportInput struct {
	Name        string
	Description string
}

// UpdateSportInput carries a partial sport update. Nil fields are left
// unchanged.
type UpdateSportInput struct {
	Name        *string
	Description *string
}

// SportService provides sport catalog operations
type SportService interface {
	// Create registers a new sport. Sport names are unique
	// case-insensitively.
	Create(ctx context.Context, input CreateSportInput) (*domain.Sport, error)

	// List retrieves every sport, ordered by name.
	List(ctx context.Context) ([]*domain.Sport, error)

	// Get retrieves a single sport by ID.
	Get(ctx context.Context, id int) (*domain.Sport, error)

	// Update applies a partial update to a sport.
	Update(ctx context.Context, id int, input UpdateSportInput) (*domain.Sport, error)

	// Delete removes a sport. The delete is refused while routines or
	// catalog exercises still reference it.
	Delete(ctx context.Context, id int) error
}

// Common sentinel errors for SportService
var (
	// ErrSportNotFound indicates that the sport does not exist
	ErrSportNotFound = errors.New("sport not found")
)

// SportServiceError wraps errors from the sport service with context.
type SportServiceError struct {
	// Operation is the operation that failed (e.g., "create_sport")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for SportServiceError.
func (e *SportServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sport service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("sport service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *SportServiceError) Unwrap() error {
	return e.Err
}

// NewSportServiceError creates a new SportServiceError.
// It returns known sentinel errors directly without wrapping.
func NewSportServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrSportNotFound) {
		return err
	}
	if errors.Is(err, store.ErrSportNotFound) {
		return ErrSportNotFound
	}
	// Name collisions and in-use refusals keep their identity so the API
	// layer can map them to 409.
	if errors.Is(err, store.ErrSportNameExists) || errors.Is(err, store.ErrSportInUse) {
		return err
	}
	if domain.IsValidationError(err) {
		return err
	}

	return &SportServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// sportServiceImpl implements the SportService interface
type sportServiceImpl struct {
	sportStore store.SportStore
	logger     *slog.Logger
}

// NewSportService creates a new SportService.
// It returns an error if the store dependency is nil.
func NewSportService(sportStore store.SportStore, logger *slog.Logger) (SportService, error) {
	if sportStore == nil {
		return nil, &SportServiceError{
			Operation: "create_service",
			Message:   "sportStore cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &sportServiceImpl{
		sportStore: sportStore,
		logger:     logger.With("component", "sport_service"),
	}, nil
}

func (s *sportServiceImpl) Create(ctx context.Context, input CreateSportInput) (*domain.Sport, error) {
	sport, err := domain.NewSport(input.Name, input.Description)
	if err != nil {
		return nil, NewSportServiceError("create_sport", "invalid sport data", err)
	}

	created, err := s.sportStore.Create(ctx, sport)
	if err != nil {
		if errors.Is(err, store.ErrSportNameExists) {
			s.logger.Warn("sport creation rejected: name taken",
				"name", input.Name)
			return nil, store.ErrSportNameExists
		}
		s.logger.Error("failed to create sport",
			"error", err,
			"name", input.Name)
		return nil, NewSportServiceError("create_sport", "failed to create sport", err)
	}

	s.logger.Info("sport created",
		"sport_id", created.ID,
		"name", created.Name)
	return created, nil
}

func (s *sportServiceImpl) List(ctx context.Context) ([]*domain.Sport, error) {
	sports, err := s.sportStore.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to list sports", "error", err)
		return nil, NewSportServiceError("list_sports", "failed to list sports", err)
	}
	return sports, nil
}

func (s *sportServiceImpl) Get(ctx context.Context, id int) (*domain.Sport, error) {
	sport, err := s.sportStore.FindByID(ctx, id)
	if err != nil {
		return nil, NewSportServiceError("get_sport", "failed to load sport", err)
	}
	return sport, nil
}

func (s *sportServiceImpl) Update(ctx context.Context, id int, input UpdateSportInput) (*domain.Sport, error) {
	updated, err := s.sportStore.Update(ctx, id, store.SportUpdate{
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		if errors.Is(err, store.ErrSportNotFound) {
			return nil, ErrSportNotFound
		}
		if errors.Is(err, store.ErrSportNameExists) {
			s.logger.Warn("sport update rejected: name taken", "sport_id", id)
			return nil, store.ErrSportNameExists
		}
		s.logger.Error("failed to update sport",
			"error", err,
			"sport_id", id)
		return nil, NewSportServiceError("update_sport", "failed to update sport", err)
	}

	s.logger.Info("sport updated", "sport_id", id)
	return updated, nil
}

func (s *sportServiceImpl) Delete(ctx context.Context, id int) error {
	if err := s.sportStore.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrSportNotFound) {
			return ErrSportNotFound
		}
		if errors.Is(err, store.ErrSportInUse) {
			s.logger.Warn("sport delete refused: still referenced", "sport_id", id)
			return store.ErrSportInUse
		}
		s.logger.Error("failed to delete sport",
			"error", err,
			"sport_id", id)
		return NewSportServiceError("delete_sport", "failed to delete sport", err)
	}

	s.logger.Info("sport deleted", "sport_id", id)
	return nil
}
