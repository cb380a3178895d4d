package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"subjects", "credits", "offerings", "sections", "plan_runs"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{"idx_sections_term", "idx_plan_runs_created"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestMigrate_SectionsCascadeWithOffering(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO offerings (code, term, offered, fetched_at) VALUES ('MC102', '1s2024', 1, '2024-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO sections (code, term, position, slots_json, fetched_at) VALUES ('MC102', '1s2024', 0, '[]', '2024-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM offerings WHERE code = 'MC102'`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sections`).Scan(&n))
	assert.Zero(t, n)
}

func TestMigrate_SectionRequiresOffering(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO sections (code, term, position, slots_json, fetched_at) VALUES ('MC102', '1s2024', 0, '[]', '2024-01-01T00:00:00Z')`)
	assert.Error(t, err)
}

func TestMigrate_RejectsNonPositiveCredits(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO credits (code, credits, updated_at) VALUES ('MC102', 0, '2024-01-01T00:00:00Z')`)
	assert.Error(t, err)
}

func TestOpenDB_CreatesDirectory(t *testing.T) {
	path := t.TempDir() + "/nested/dir/gradeplan.db"
	db, err := OpenDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
}
