package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexivanou/worldwise/internal/config"
	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib" // Postgres driver for database/sql
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Connect creates a database connection based on configuration using sqlx
func Connect(ctx context.Context, cfg config.DBConfig) (*sqlx.DB, error) {
	driverName := "pgx"
	if cfg.IsMemory() {
		driverName = "sqlite3"
	}

	db, err := sqlx.ConnectContext(ctx, driverName, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// NewMigrator binds the migration set under dir ("migrations" in the repo
// root) to an open connection. The sqlite or postgres subdirectory is chosen
// by the database type. Closing the migrator closes db.
func NewMigrator(db *sqlx.DB, dbType config.DBType, dir string) (*migrate.Migrate, error) {
	var (
		driver migratedb.Driver
		name   = "postgres"
		sub    = "postgres"
		err    error
	)

	// Driver instances avoid DSN parsing issues with in-memory SQLite, whose
	// schema only exists on this connection
	if dbType == config.DBTypeMemory {
		name, sub = "sqlite3", "sqlite"
		driver, err = sqlite3.WithInstance(db.DB, &sqlite3.Config{})
	} else {
		driver, err = postgres.WithInstance(db.DB, &postgres.Config{})
	}
	if err != nil {
		return nil, fmt.Errorf("could not create %s driver: %w", name, err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+dir+"/"+sub, name, driver)
	if err != nil {
		return nil, fmt.Errorf("could not create migrate instance: %w", err)
	}
	return m, nil
}

// Migrate applies every pending migration from dir
func Migrate(db *sqlx.DB, dbType config.DBType, dir string) error {
	m, err := NewMigrator(db, dbType, dir)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}
