// Package sqlstoretest opens throwaway SQLite stores for tests.
package sqlstoretest

import (
	"context"
	"testing"

	"jobtracker/internal/database"
	"jobtracker/internal/repository/sqlstore"
)

// New returns a migrated in-memory store that is closed with the test.
func New(t testing.TB) *sqlstore.Store {
	t.Helper()
	ctx := context.Background()
	db, dialect, err := database.Open(ctx, database.Config{Driver: database.DriverSQLite, DSN: "file::memory:"}, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := database.Migrate(ctx, db, dialect); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return sqlstore.New(db, dialect)
}
