package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Goal
var (
	ErrEmptyGoalID          = errors.New("goal ID cannot be empty")
	ErrEmptyGoalCreatorID   = errors.New("goal creator ID cannot be empty")
	ErrEmptyGoalDescription = errors.New("goal description cannot be empty")
)

// Goal is a free-form objective a coach writes for assignment to athletes,
// for example "run 5 km under 25 minutes before March".
type Goal struct {
	ID          uuid.UUID  `json:"id"`
	CreatorID   uuid.UUID  `json:"creator_id"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewGoal creates a new Goal with a generated ID and the current time as
// CreatedAt. The description is trimmed; a due date is optional.
// Returns an error if validation fails.
func NewGoal(creatorID uuid.UUID, description string, dueDate *time.Time) (*Goal, error) {
	goal := &Goal{
		ID:          uuid.New(),
		CreatorID:   creatorID,
		Description: strings.TrimSpace(description),
		DueDate:     dueDate,
		CreatedAt:   time.Now().UTC(),
	}

	if err := goal.Validate(); err != nil {
		return nil, err
	}

	return goal, nil
}

// GoalFromPersistence reconstructs a Goal from stored data. It trusts the
// stored ID and timestamp but still runs field validation.
func GoalFromPersistence(
	id, creatorID uuid.UUID,
	description string,
	dueDate *time.Time,
	createdAt time.Time,
) (*Goal, error) {
	goal := &Goal{
		ID:          id,
		CreatorID:   creatorID,
		Description: strings.TrimSpace(description),
		DueDate:     dueDate,
		CreatedAt:   createdAt,
	}

	if err := goal.Validate(); err != nil {
		return nil, err
	}

	return goal, nil
}

// Validate checks if the Goal has valid data.
func (g *Goal) Validate() error {
	if g.ID == uuid.Nil {
		return ErrEmptyGoalID
	}
	if g.CreatorID == uuid.Nil {
		return ErrEmptyGoalCreatorID
	}
	if g.Description == "" {
		return ErrEmptyGoalDescription
	}
	return nil
}
