// Package domain contains the planning entities and their invariants:
// sports, the exercise catalog, routines with their ordered exercise
// entries, goals, and assignments. Entities are self-validating; factory
// constructors reject invalid states and reconstruction constructors
// rebuild trusted rows loaded from the store.
package domain
