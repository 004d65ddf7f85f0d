package config

import (
	"ExpenseLedger/database/migration"
	"ExpenseLedger/database/postgres"
	"ExpenseLedger/database/sqlite"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// OpenDatabase connects to the store selected by DB_DRIVER and brings its schema up to date.
func OpenDatabase() (*sqlx.DB, error) {
	driver := strings.ToLower(strings.TrimSpace(os.Getenv("DB_DRIVER")))
	if driver == "" {
		driver = migration.DialectPostgres
	}

	switch driver {
	case migration.DialectPostgres:
		if err := migration.Up(migration.DialectPostgres, postgres.DSN()); err != nil {
			return nil, err
		}
		return postgres.New()
	case migration.DialectSQLite:
		path := sqlite.Path()
		db, err := sqlite.New(path)
		if err != nil {
			return nil, err
		}
		if err := migration.Up(migration.DialectSQLite, sqlite.DSN(path)); err != nil {
			db.Close()
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

// LoadLocation returns the APP_TIMEZONE location used for "today".
func LoadLocation() (*time.Location, error) {
	name := strings.TrimSpace(os.Getenv("APP_TIMEZONE"))
	if name == "" {
		return time.UTC, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load APP_TIMEZONE %q: %w", name, err)
	}
	return loc, nil
}
