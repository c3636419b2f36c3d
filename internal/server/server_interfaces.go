package server

import (
	"context"

	"github.com/go-chi/chi/v5"
)

// ServerTestInterface abstracts the server lifecycle for tests.
type ServerTestInterface interface {
	// SetupRoutes configures the HTTP routes for the server
	SetupRoutes()

	// GetRouter returns the configured router for request handling
	GetRouter() chi.Router

	// Start begins listening for HTTP requests
	Start() error

	// Shutdown gracefully stops the server
	Shutdown(ctx context.Context) error
}

var _ ServerTestInterface = (*Server)(nil)
