// Package config handles configuration loading, parsing, and validation.
// Settings come from environment variables with the GYMPLAN_ prefix or a
// YAML file, and cover the HTTP server, the database, token validation,
// and the identity service endpoint.
package config
