// Package constants provides shared constant values used throughout the application.
//
// The general_const.go file defines the route paths and build-time identifiers of
// the migration pack service. Keeping them here gives the router, the handlers and
// the tests one source of truth for the public URL surface.
package constants

// Base Routes define the root URL paths of the service.
const (
	// APIBasePath is the root path prefix for all API endpoints.
	APIBasePath = "/api"

	// HealthPath is the endpoint for health checks and system status.
	HealthPath = "/health"

	// VersionPath is the endpoint reporting build information.
	VersionPath = "/version"
)

// Packer Routes define the endpoints that produce migration packs.
// They are mounted under APIBasePath.
const (
	// PackerBasePath groups the packer endpoints.
	PackerBasePath = "/usync/packer"

	// PackerMakePackPath runs one export and streams the archive back.
	PackerMakePackPath = "/make-pack"

	// PackerAPIPath answers route discovery probes.
	PackerAPIPath = "/api"
)

// Application identity.
const (
	// AppName is the default application name reported in logs and tokens.
	AppName = "migrationpack"
)
