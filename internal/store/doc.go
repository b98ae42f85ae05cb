// Package store defines the persistence contracts the planning domain
// requires: one interface per entity plus the sentinel errors they surface.
// Services depend only on these interfaces; the PostgreSQL implementations
// live in internal/platform/postgres.
package store
