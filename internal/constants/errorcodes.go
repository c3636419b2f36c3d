// Package constants provides shared constant values used throughout the application.
//
// The errorcodes.go file defines constants related to error handling and messaging.
// User-facing messages stay generic so failures in the export pipeline never leak
// file-system paths or SQL to API clients.
package constants

// User-Facing Error Messages define standardized messages that can be safely presented to users.
const (
	// MsgAuthRequired indicates that the user must authenticate to access the resource.
	MsgAuthRequired = "Authentication required"

	// MsgAccessDenied indicates that the user lacks permission for the requested resource.
	MsgAccessDenied = "You don't have permission to access this resource"

	// MsgInternalServerError is a generic message for unexpected server errors.
	MsgInternalServerError = "An internal server error occurred"

	// MsgTokenExpired indicates that the provided authentication token has expired.
	MsgTokenExpired = "Authentication token has expired"

	// MsgInvalidToken indicates that the provided authentication token is invalid.
	MsgInvalidToken = "Invalid token"

	// MsgResourceNotFound indicates that the requested resource does not exist.
	MsgResourceNotFound = "The requested resource could not be found"

	// MsgMethodNotAllowed indicates that the HTTP method is not supported for the resource.
	MsgMethodNotAllowed = "This method is not allowed for this resource"

	// MsgTooManyRequests indicates that the client exceeded its request budget.
	MsgTooManyRequests = "Too many requests, please try again later"

	// MsgRequestBodyTooLarge indicates the request body exceeded MaxRequestBodySize.
	MsgRequestBodyTooLarge = "Request body too large"

	// MsgEmptyRequestBody indicates a JSON body was expected but none was sent.
	MsgEmptyRequestBody = "Request body must not be empty"

	// MsgMalformedJSON indicates the request body ended in the middle of a JSON value.
	MsgMalformedJSON = "Request body contains badly-formed JSON"

	// MsgPackFailed is returned when a migration pack could not be produced.
	MsgPackFailed = "Failed to create the migration pack"
)

// Database Error Types define constants for recognizing and handling database-specific errors.
const (
	// PGErrorUndefinedTable is the PostgreSQL error code for a missing relation.
	PGErrorUndefinedTable = "42P01"

	// PGErrorUndefinedColumn is the PostgreSQL error code for a missing column.
	PGErrorUndefinedColumn = "42703"

	// MySQLErrorNoSuchTable is the MySQL error number for a missing table.
	MySQLErrorNoSuchTable = 1146

	// MySQLErrorBadField is the MySQL error number for an unknown column.
	MySQLErrorBadField = 1054
)

// Logger Constants define values used for structured logging.
const (
	// LogCategoryPack is the log category for pipeline events.
	LogCategoryPack = "pack"

	// LogCategoryAuth is the log category for authentication-related events.
	LogCategoryAuth = "auth"

	// LogRedactedValue is used to replace sensitive values in logs.
	LogRedactedValue = "[REDACTED]"
)
