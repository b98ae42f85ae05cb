// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It translates the HTTP surface (Spanish field
// names, path parameters, status codes) into calls against the planning
// services and maps their errors back to safe client responses.
package api
