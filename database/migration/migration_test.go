package migration_test

import (
	"ExpenseLedger/database/migration"
	"ExpenseLedger/database/sqlite"
	"ExpenseLedger/database/testdb"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpCreatesSchema(t *testing.T) {
	db := testdb.NewSQLite(t)

	var tables []string
	require.NoError(t, db.Select(&tables, `SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name`))

	assert.Contains(t, tables, "categories")
	assert.Contains(t, tables, "expenses")
}

func TestUpIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")

	require.NoError(t, migration.Up(migration.DialectSQLite, sqlite.DSN(path)))
	assert.NoError(t, migration.Up(migration.DialectSQLite, sqlite.DSN(path)))
}

func TestUpRejectsUnknownDialect(t *testing.T) {
	assert.Error(t, migration.Up("mysql", "irrelevant"))
}

func TestSchemaRejectsNonPositiveAmount(t *testing.T) {
	db := testdb.NewSQLite(t)

	_, err := db.Exec(`INSERT INTO categories (id, owner_user_id, name) VALUES ('c1', 'u1', 'Food')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO expenses (id, owner_user_id, category_id, description, amount, expense_date)
		VALUES ('e1', 'u1', 'c1', 'Lunch', '0', '2024-01-01')`)
	assert.Error(t, err)

	_, err = db.Exec(`INSERT INTO categories (id, owner_user_id, name) VALUES ('c2', 'u1', 'Food')`)
	assert.Error(t, err, "category names are unique per owner")
}
