package domain

import (
	"errors"
	"strings"
)

// Common validation errors for Sport
var (
	ErrEmptySportName = errors.New("sport name cannot be empty")
	ErrInvalidSportID = errors.New("sport ID must be positive")
)

// Sport is an administrator-managed discipline (boxing, judo, ...) that
// routines and catalog exercises are grouped under. Its ID is assigned by
// the database, so a freshly created Sport carries ID 0 until persisted.
type Sport struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// NewSport creates a new Sport with the given name and optional description.
// The ID is left at zero; the store assigns it on insert.
// Returns an error if validation fails.
func NewSport(name, description string) (*Sport, error) {
	sport := &Sport{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
	}

	if sport.Name == "" {
		return nil, ErrEmptySportName
	}

	return sport, nil
}

// SportFromPersistence reconstructs a Sport from stored data. It trusts the
// stored ID but still validates the fields.
func SportFromPersistence(id int, name, description string) (*Sport, error) {
	sport := &Sport{
		ID:          id,
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
	}

	if err := sport.Validate(); err != nil {
		return nil, err
	}

	return sport, nil
}

// Validate checks if the Sport has valid data.
func (s *Sport) Validate() error {
	if s.ID <= 0 {
		return ErrInvalidSportID
	}
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptySportName
	}
	return nil
}
