package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dverdin/gymplan-api/internal/domain"
	"github.com/dverdin/gymplan-api/internal/platform/logger"
	"github.com/dverdin/gymplan-api/internal/store"
)

// PostgresSportStore implements the store.SportStore interface
// using a PostgreSQL database as the storage backend.
type PostgresSportStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSportStore creates a new PostgreSQL implementation of the
// SportStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresSportStore(db store.DBTX, logger *slog.Logger) *PostgresSportStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSportStore{
		db:     db,
		logger: logger.With(slog.String("component", "sport_store")),
	}
}

// Ensure PostgresSportStore implements store.SportStore interface
var _ store.SportStore = (*PostgresSportStore)(nil)

// WithTx implements store.SportStore.WithTx
// It returns a new store instance whose operations run on the given transaction.
func (s *PostgresSportStore) WithTx(tx *sql.Tx) store.SportStore {
	return &PostgresSportStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.SportStore.Create
// It saves a new sport and returns it with the database-assigned ID.
// Returns store.ErrSportNameExists if another sport already uses the name.
func (s *PostgresSportStore) Create(ctx context.Context, sport *domain.Sport) (*domain.Sport, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := sport.Validate(); err != nil {
		log.Warn("sport validation failed during create",
			slog.String("error", err.Error()),
			slog.String("name", sport.Name))
		return nil, err
	}

	query := `
		INSERT INTO sports (name, description)
		VALUES ($1, $2)
		RETURNING id
	`

	var id int
	err := s.db.QueryRowContext(ctx, query, sport.Name, sport.Description).Scan(&id)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate sport name during create",
				slog.String("name", sport.Name))
			return nil, fmt.Errorf("%w: %q", store.ErrSportNameExists, sport.Name)
		}
		log.Error("failed to create sport",
			slog.String("error", err.Error()),
			slog.String("name", sport.Name))
		return nil, MapError(err)
	}

	created := *sport
	created.ID = id

	log.Info("sport created successfully",
		slog.Int("sport_id", id),
		slog.String("name", created.Name))
	return &created, nil
}

// FindAll implements store.SportStore.FindAll
// It retrieves every sport ordered by name.
func (s *PostgresSportStore) FindAll(ctx context.Context) ([]*domain.Sport, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, description
		FROM sports
		ORDER BY name ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query sports", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	sports := []*domain.Sport{}
	for rows.Next() {
		var (
			id          int
			name        string
			description sql.NullString
		)
		if err := rows.Scan(&id, &name, &description); err != nil {
			log.Error("failed to scan sport row", slog.String("error", err.Error()))
			return nil, err
		}

		sport, err := domain.SportFromPersistence(id, name, description.String)
		if err != nil {
			log.Error("stored sport failed validation",
				slog.Int("sport_id", id),
				slog.String("error", err.Error()))
			return nil, err
		}
		sports = append(sports, sport)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning sport rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("found sports", slog.Int("count", len(sports)))
	return sports, nil
}

// FindByID implements store.SportStore.FindByID
// Returns store.ErrSportNotFound if the sport does not exist.
func (s *PostgresSportStore) FindByID(ctx context.Context, id int) (*domain.Sport, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, description
		FROM sports
		WHERE id = $1
	`

	var (
		name        string
		description sql.NullString
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(&id, &name, &description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("sport not found", slog.Int("sport_id", id))
			return nil, store.ErrSportNotFound
		}
		log.Error("failed to get sport by ID",
			slog.String("error", err.Error()),
			slog.Int("sport_id", id))
		return nil, MapError(err)
	}

	return domain.SportFromPersistence(id, name, description.String)
}

// Update implements store.SportStore.Update
// It applies the non-nil fields of the patch and returns the updated sport.
// Returns store.ErrSportNotFound if the sport does not exist and
// store.ErrSportNameExists if the new name collides with another sport.
func (s *PostgresSportStore) Update(
	ctx context.Context,
	id int,
	patch store.SportUpdate,
) (*domain.Sport, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	current, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if trimmed == "" {
			return nil, domain.ErrEmptySportName
		}
		current.Name = trimmed
	}
	if patch.Description != nil {
		current.Description = strings.TrimSpace(*patch.Description)
	}

	query := `
		UPDATE sports
		SET name = $1, description = $2
		WHERE id = $3
	`

	result, err := s.db.ExecContext(ctx, query, current.Name, current.Description, id)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate sport name during update",
				slog.Int("sport_id", id),
				slog.String("name", current.Name))
			return nil, fmt.Errorf("%w: %q", store.ErrSportNameExists, current.Name)
		}
		log.Error("failed to update sport",
			slog.String("error", err.Error()),
			slog.Int("sport_id", id))
		return nil, MapError(err)
	}

	if err := CheckRowsAffected(result, "sport"); err != nil {
		return nil, store.ErrSportNotFound
	}

	log.Info("sport updated successfully",
		slog.Int("sport_id", id),
		slog.String("name", current.Name))
	return current, nil
}

// Delete implements store.SportStore.Delete
// The delete is refused with store.ErrSportInUse while any routine or catalog
// exercise still references the sport.
// Returns store.ErrSportNotFound if the sport does not exist.
func (s *PostgresSportStore) Delete(ctx context.Context, id int) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM sports WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		// Restrictive FKs from routines and exercises surface here.
		if IsForeignKeyViolation(err) {
			log.Warn("sport still referenced, refusing delete",
				slog.Int("sport_id", id))
			return fmt.Errorf("%w: sport %d", store.ErrSportInUse, id)
		}
		log.Error("failed to delete sport",
			slog.String("error", err.Error()),
			slog.Int("sport_id", id))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "sport"); err != nil {
		log.Debug("sport not found for delete", slog.Int("sport_id", id))
		return store.ErrSportNotFound
	}

	log.Info("sport deleted successfully", slog.Int("sport_id", id))
	return nil
}

// NameExists implements store.SportStore.NameExists
// Names are compared case-insensitively. A non-zero excludeID leaves that
// sport out of the check, for updates.
func (s *PostgresSportStore) NameExists(
	ctx context.Context,
	name string,
	excludeID int,
) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM sports
			WHERE lower(name) = lower($1) AND id <> $2
		)
	`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, name, excludeID).Scan(&exists); err != nil {
		log.Error("failed to check sport name existence",
			slog.String("error", err.Error()),
			slog.String("name", name))
		return false, MapError(err)
	}

	return exists, nil
}
