// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package defines the
// listen port, the API key protecting the operator endpoints and whether the
// Swagger UI is mounted.
package server
