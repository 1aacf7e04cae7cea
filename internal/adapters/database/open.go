// Package database opens the SQL connection pool for the configured DSN.
package database

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	driverPostgres = "postgres"
	driverSQLite   = "sqlite"
)

// Driver returns the database/sql driver name and data source for dsn.
// "sqlite:" prefixed DSNs (sqlite:///path/to.db, sqlite::memory:) select the
// embedded SQLite driver; everything else is passed to lib/pq.
func Driver(dsn string) (driver, source string) {
	if rest, ok := strings.CutPrefix(dsn, "sqlite:"); ok {
		return driverSQLite, strings.TrimPrefix(rest, "//")
	}
	return driverPostgres, dsn
}

// Open opens and pings the database described by dsn.
func Open(dsn string) (*sql.DB, error) {
	driver, source := Driver(dsn)
	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == driverSQLite {
		// :memory: databases exist per connection.
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, nil
}
