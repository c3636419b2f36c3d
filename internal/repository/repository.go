// Package repository reads the CMS entities that go into a migration pack.
//
// Every statement is a parameterless bulk read over unquoted identifiers, so the
// same SQL runs on MySQL and PostgreSQL. Related rows are fetched with separate
// statements and joined in memory.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/yasinhessnawi1/migrationpack/internal/database"
	"github.com/yasinhessnawi1/migrationpack/internal/utils"
)

// queryAll runs query on q and hands every row to scan.
// The query is logged once with its total duration and final error.
func queryAll(ctx context.Context, q database.Querier, query string, scan func(rows *sql.Rows) error) (err error) {
	// Start query timer
	startTime := time.Now()
	defer func() {
		utils.LogDBQuery(query, nil, time.Since(startTime), err)
	}()

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err = scan(rows); err != nil {
			return err
		}
	}

	return rows.Err()
}

// timePtr converts a nullable timestamp
func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// timeOrZero converts a nullable timestamp, mapping NULL to the zero time
func timeOrZero(t sql.NullTime) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}
