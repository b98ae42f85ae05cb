package auth

import "context"

// MockTokenValidator implements TokenValidator for testing
type MockTokenValidator struct {
	// ValidateTokenFn allows tests to force specific behavior
	ValidateTokenFn func(ctx context.Context, tokenString string) (*Claims, error)

	// Default response values when ValidateTokenFn is nil
	Claims *Claims
	Err    error
}

// ValidateToken implements the TokenValidator interface
func (m *MockTokenValidator) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Claims, nil
}
