// Package database manages the connection pool to the CMS database that
// migration packs are exported from. MySQL and PostgreSQL are supported.
package database

import (
	"context"
	"database/sql"
)

// Querier is the read surface shared by the pool and its transactions.
// Repositories run their statements against a Querier so the same code
// works standalone and inside ReadTransaction.
type Querier interface {
	// QueryContext executes a query with the provided context that returns rows.
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)

	// QueryRowContext executes a query with the provided context that is expected to return at most one row.
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Ensure the pool and transactions implement Querier.
var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
	_ Querier = (*Pool)(nil)
)
