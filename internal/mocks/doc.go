// Package mocks provides centralized mock implementations for testing.
//
// This package contains in-memory implementations of the store interfaces,
// facilitating consistent testing across the codebase. Instead of defining
// inline mocks in individual test files, these standardized implementations
// can be reused.
//
// Each mock keeps a map-backed default implementation that honors the store
// contract (sentinel errors, duplicate skipping, cascades) and exposes one
// overridable function field per interface method for tests that need to
// force specific behavior.
//
// Usage:
//
//	import "github.com/dverdin/gymplan-api/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    sportStore := mocks.NewMockSportStore()
//	    sportStore.DeleteFn = func(ctx context.Context, id int) error {
//	        return store.ErrSportInUse
//	    }
//
//	    // Use the mock in your test...
//	}
//
// When adding a new mock to this package:
//  1. Create a new file named after the interface being mocked
//  2. Implement the mock struct with function fields for each interface method
//  3. Document any helper methods or special functionality
package mocks
