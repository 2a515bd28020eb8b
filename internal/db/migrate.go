package db

import (
	"errors"
	"fmt"
	"io/fs"
	"mealremind/migrations"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// MigratePostgres brings the Postgres schema up to date.
func MigratePostgres(connString string) error {
	return up(migrations.Postgres, "postgres", connString)
}

// MigrateSQLite brings the SQLite schema of the database file at path up to date.
func MigrateSQLite(path string) error {
	return up(migrations.SQLite, "sqlite", "sqlite://"+path)
}

func up(fsys fs.FS, dir string, databaseURL string) error {
	source, err := iofs.New(fsys, dir)
	if err != nil {
		return err
	}
	m, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		return fmt.Errorf("could not connect to DB for applying migrations: %w", err)
	}
	defer m.Close()

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not apply DB migrations: %w", err)
	}
	return nil
}
