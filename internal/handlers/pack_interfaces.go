// Package handlers provides the HTTP request handlers of the migration pack API.
package handlers

import (
	"context"

	"github.com/yasinhessnawi1/migrationpack/internal/models"
)

// PackServiceInterface defines the methods required from the pack service.
// The handlers depend on this interface rather than the concrete service so
// they can be tested without a database or file system.
type PackServiceInterface interface {
	// PackExportWith builds a migration pack.
	//
	// Parameters:
	//   - ctx: Context for the operation
	//   - req: Per-run overrides from the request body
	//
	// Returns:
	//   - The finished archive
	//   - An error if the pack could not be built
	PackExportWith(ctx context.Context, req models.PackRequest) (*models.PackResult, error)
}

// HealthChecker reports whether the CMS database is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
