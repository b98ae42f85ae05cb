package identity

import (
	"context"

	"github.com/google/uuid"
)

// MockClient implements Client for testing
type MockClient struct {
	// Function fields for customizable behavior
	GymForCoachFn func(ctx context.Context, coachID uuid.UUID, authToken string) (*Gym, error)
	GymMembersFn  func(ctx context.Context, gymID uuid.UUID, authToken string) ([]Member, error)

	// Default response values
	Gym     *Gym
	Members []Member
	Err     error
}

// GymForCoach implements the Client interface
func (m *MockClient) GymForCoach(ctx context.Context, coachID uuid.UUID, authToken string) (*Gym, error) {
	if m.GymForCoachFn != nil {
		return m.GymForCoachFn(ctx, coachID, authToken)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Gym, nil
}

// GymMembers implements the Client interface
func (m *MockClient) GymMembers(ctx context.Context, gymID uuid.UUID, authToken string) ([]Member, error) {
	if m.GymMembersFn != nil {
		return m.GymMembersFn(ctx, gymID, authToken)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Members, nil
}
