package repository_test

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/migrationpack/internal/database"
)

var (
	testTime     = time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	testKeyOne   = "6f1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d"
	testKeyTwo   = "0a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4e"
	testKeyThree = "1a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4f"
)

// setupPool creates a pool backed by sqlmock and a cleanup function
func setupPool(t *testing.T) (*database.Pool, sqlmock.Sqlmock, func()) {
	// Create a new SQL mock database
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	// Create a database pool with the mock database
	dbPool := &database.Pool{DB: db}

	return dbPool, mock, func() {
		db.Close()
	}
}
