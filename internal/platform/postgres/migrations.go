package postgres

import "embed"

// Migrations holds the embedded goose migration files so the server binary
// can migrate the schema without a checkout of the repository.
//
//go:embed migrations/*.sql
var Migrations embed.FS
