package sqlite

import (
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
)

const DriverName = "sqlite"

// SQLite's built-in lower() folds ASCII only; replace it so LOWER() matches
// Postgres for accented text.
func init() {
	sqlite.MustRegisterDeterministicScalarFunction("lower", 1, unicodeLower)
}

func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return strings.ToLower(fmt.Sprint(v)), nil
	}
}

func Path() string {
	if p := os.Getenv("SQLITE_PATH"); p != "" {
		return p
	}
	return "./storage/expense_ledger.db"
}

// DSN enables foreign keys, waits on locks instead of failing, and takes the
// write lock when a transaction begins so read-then-write transactions cannot deadlock.
func DSN(path string) string {
	return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate", path)
}

func New(path string) (*sqlx.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create sqlite directory: %w", err)
	}

	db, err := sqlx.Connect(DriverName, DSN(path))
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}

	// one writer at a time; queued callers wait on the pool instead of SQLITE_BUSY
	db.SetMaxOpenConns(1)

	return db, nil
}
