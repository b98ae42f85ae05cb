package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewGoal(t *testing.T) {
	t.Parallel()
	creatorID := uuid.New()
	due := time.Now().UTC().AddDate(0, 1, 0)

	goal, err := NewGoal(creatorID, "  Run 5km under 25 minutes  ", &due)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if goal.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if goal.Description != "Run 5km under 25 minutes" {
		t.Errorf("Expected trimmed description, got %q", goal.Description)
	}
	if goal.DueDate == nil || !goal.DueDate.Equal(due) {
		t.Error("Expected due date to be kept")
	}
	if goal.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// Due date is optional
	goal, err = NewGoal(creatorID, "Spar twice a week", nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if goal.DueDate != nil {
		t.Error("Expected nil due date")
	}

	_, err = NewGoal(creatorID, "   ", nil)
	if err != ErrEmptyGoalDescription {
		t.Errorf("Expected error %v, got %v", ErrEmptyGoalDescription, err)
	}

	_, err = NewGoal(uuid.Nil, "Spar twice a week", nil)
	if err != ErrEmptyGoalCreatorID {
		t.Errorf("Expected error %v, got %v", ErrEmptyGoalCreatorID, err)
	}
}
