// Package testdb opens migrated throwaway databases for tests.
package testdb

import (
	"ExpenseLedger/database/migration"
	"ExpenseLedger/database/sqlite"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// NewSQLite returns a migrated SQLite database in a temporary directory that is
// closed when the test ends.
func NewSQLite(t testing.TB) *sqlx.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ledger.db")

	db, err := sqlite.New(path)
	require.NoError(t, err, "open sqlite")
	t.Cleanup(func() { db.Close() })

	require.NoError(t, migration.Up(migration.DialectSQLite, sqlite.DSN(path)), "migrate sqlite")

	return db
}
