// Package postgres implements the store interfaces on PostgreSQL. It owns
// the SQL for sports, the exercise catalog, routines, goals, and
// assignments, including the cross-entity consistency rules: cascading
// plan deletes, idempotent catalog upserts, and duplicate-skipping batch
// assignment inserts. Driver errors are mapped to store sentinels before
// they leave this package.
package postgres
