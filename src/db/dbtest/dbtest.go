// Package dbtest opens throwaway databases for tests.
package dbtest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/s155003/Budgetly/src/db"
)

// New returns a migrated SQLite database stored in the test's temp dir.
// It is closed when the test ends.
func New(t testing.TB) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "budgetly.db")
	conn, _, err := db.Connect(context.Background(), "sqlite://"+path)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}
