package store

import (
	"context"
	"database/sql"

	"github.com/dverdin/gymplan-api/internal/domain"
)

// SportUpdate carries the partial fields of a sport update. Nil fields are
// left unchanged.
type SportUpdate struct {
	Name        *string
	Description *string
}

// SportStore defines the interface for sport data persistence.
type SportStore interface {
	// Create saves a new sport and returns it with the store-assigned ID.
	// Returns ErrSportNameExists if another sport already uses the name.
	Create(ctx context.Context, sport *domain.Sport) (*domain.Sport, error)

	// FindAll retrieves every sport, ordered by name.
	FindAll(ctx context.Context) ([]*domain.Sport, error)

	// FindByID retrieves a sport by its numeric ID.
	// Returns ErrSportNotFound if the sport does not exist.
	FindByID(ctx context.Context, id int) (*domain.Sport, error)

	// Update applies the non-nil fields of the patch to an existing sport.
	// Returns ErrSportNotFound if the sport does not exist and
	// ErrSportNameExists if the new name collides with another sport.
	Update(ctx context.Context, id int, patch SportUpdate) (*domain.Sport, error)

	// Delete removes a sport. It is refused with ErrSportInUse while any
	// routine or catalog exercise references the sport.
	// Returns ErrSportNotFound if the sport does not exist.
	Delete(ctx context.Context, id int) error

	// NameExists reports whether a sport with the given name exists,
	// compared case-insensitively. A non-zero excludeID leaves that sport
	// out of the check, for updates.
	NameExists(ctx context.Context, name string, excludeID int) (bool, error)

	// WithTx returns a new SportStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) SportStore
}
