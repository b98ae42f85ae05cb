// Package identity talks to the external identity microservice. The planning
// service never stores users itself; coach gym membership and athlete rosters
// are always resolved through this boundary.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dverdin/gymplan-api/internal/config"
	"github.com/dverdin/gymplan-api/internal/platform/logger"
)

// Common identity client errors
var (
	// ErrGymNotFound indicates the coach has no gym associated in the
	// identity service.
	ErrGymNotFound = errors.New("no gym associated with the coach")

	// ErrUpstream indicates the identity service answered with an
	// unexpected status.
	ErrUpstream = errors.New("identity service request failed")
)

// Gym is the gym record the identity service associates with a user.
type Gym struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"nombre"`
}

// Member is a gym member as reported by the identity service. Role carries
// the platform role names (Entrenador, Atleta, Administrador).
type Member struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"nombre"`
	Email string    `json:"email"`
	Role  string    `json:"rol"`
	Level string    `json:"nivel,omitempty"`
}

// Client defines the identity service operations the planning service needs.
type Client interface {
	// GymForCoach resolves the gym the coach belongs to.
	// Returns ErrGymNotFound if the identity service reports none.
	GymForCoach(ctx context.Context, coachID uuid.UUID, authToken string) (*Gym, error)

	// GymMembers lists all members of a gym.
	GymMembers(ctx context.Context, gymID uuid.UUID, authToken string) ([]Member, error)
}

// HTTPClient is the production Client talking JSON over HTTP. The caller's
// bearer token is passed through unchanged; the identity service enforces
// its own authorization.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewHTTPClient creates an identity client for the configured base URL.
// If logger is nil, a default logger will be used.
func NewHTTPClient(cfg config.IdentityConfig, logger *slog.Logger) *HTTPClient {
	if logger == nil {
		logger = slog.Default()
	}

	return &HTTPClient{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger.With(slog.String("component", "identity_client")),
	}
}

// Ensure HTTPClient implements Client interface
var _ Client = (*HTTPClient)(nil)

// GymForCoach implements Client.GymForCoach
func (c *HTTPClient) GymForCoach(
	ctx context.Context,
	coachID uuid.UUID,
	authToken string,
) (*Gym, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	url := fmt.Sprintf("%s/usuarios/%s/gimnasio", c.baseURL, coachID)
	var gym Gym
	if err := c.getJSON(ctx, url, authToken, &gym); err != nil {
		log.Warn("failed to resolve coach gym",
			slog.String("coach_id", coachID.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	if gym.ID == uuid.Nil {
		log.Debug("coach has no gym", slog.String("coach_id", coachID.String()))
		return nil, ErrGymNotFound
	}

	return &gym, nil
}

// GymMembers implements Client.GymMembers
func (c *HTTPClient) GymMembers(
	ctx context.Context,
	gymID uuid.UUID,
	authToken string,
) ([]Member, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	url := fmt.Sprintf("%s/gimnasios/%s/miembros", c.baseURL, gymID)
	var members []Member
	if err := c.getJSON(ctx, url, authToken, &members); err != nil {
		log.Warn("failed to list gym members",
			slog.String("gym_id", gymID.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	return members, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, url, authToken string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build identity request: %w", err)
	}
	if authToken != "" {
		req.Header.Set("Authorization", authToken)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrGymNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: status %d from %s", ErrUpstream, resp.StatusCode, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: invalid response body: %v", ErrUpstream, err)
	}
	return nil
}

// Athletes filters a member list down to athletes.
func Athletes(members []Member) []Member {
	athletes := []Member{}
	for _, member := range members {
		if member.Role == "Atleta" {
			athletes = append(athletes, member)
		}
	}
	return athletes
}
