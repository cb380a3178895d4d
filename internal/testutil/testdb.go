package testutil

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/gradeplan/internal/db"
)

// NewTestDB returns a private, migrated in-memory catalog database that
// is closed when the test ends.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err, "opening in-memory catalog")
	t.Cleanup(func() { _ = database.Close() })
	return database
}

// NewTestUoW is the production unit of work with logging left off.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
