package storage

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrations embed.FS

func (db *DB) migrate() error {
	src, err := iofs.New(migrations, "migrations/"+db.driver)
	if err != nil {
		return err
	}

	var target database.Driver
	switch db.driver {
	case DriverSQLite:
		target, err = migratesqlite.WithInstance(db.conn.DB, &migratesqlite.Config{})
	case DriverPostgres:
		target, err = migratepg.WithInstance(db.conn.DB, &migratepg.Config{})
	default:
		err = fmt.Errorf("no migrations for driver %q", db.driver)
	}
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", src, db.driver, target)
	if err != nil {
		return err
	}

	// m.Close is not called: it would close the shared connection
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
