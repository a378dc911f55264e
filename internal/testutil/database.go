package testutil

import (
	"database/sql"
	"testing"

	"sislog/internal/database"
)

// NewTestDatabase creates a new in-memory SQLite database with schema applied.
// The database is automatically closed when the test completes.
func NewTestDatabase(t *testing.T) *database.SQLiteDatabase {
	t.Helper()
	db, _ := NewTestDatabaseWithConn(t)
	return db
}

// NewTestDatabaseWithConn is NewTestDatabase that also returns the raw
// connection, for tests that need to install triggers or insert rows the
// service would refuse.
func NewTestDatabaseWithConn(t *testing.T) (*database.SQLiteDatabase, *sql.DB) {
	t.Helper()

	sqlDB, err := database.OpenConnection(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	if _, err := sqlDB.Exec(database.Schema); err != nil {
		sqlDB.Close()
		t.Fatalf("failed to apply schema: %v", err)
	}

	db := database.NewSQLiteDatabaseFromDB(sqlDB)

	t.Cleanup(func() {
		db.Close()
	})

	return db, sqlDB
}
