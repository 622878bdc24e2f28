package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/udisondev/monench/internal/db/migrations"
)

// Supported storage drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// RunMigrations runs goose migrations for the given driver and DSN.
// For SQLite the DSN is the database file path.
func RunMigrations(ctx context.Context, driver, dsn string) error {
	var (
		sqlDriver, dialect string
	)
	switch driver {
	case DriverPostgres:
		sqlDriver, dialect = "pgx", "postgres"
	case DriverSQLite:
		sqlDriver, dialect = "sqlite", "sqlite3"
		dsn = sqliteDSN(dsn)
	default:
		return fmt.Errorf("unknown storage driver %q", driver)
	}

	sqlDB, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return fmt.Errorf("opening sql connection for migrations: %w", err)
	}
	defer sqlDB.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// Open migrates the schema and opens the store for driver.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	if err := RunMigrations(ctx, driver, dsn); err != nil {
		return nil, err
	}
	if driver == DriverPostgres {
		pg, err := NewPgStore(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return pg, nil
	}
	lite, err := OpenSQLite(dsn)
	if err != nil {
		return nil, err
	}
	return lite, nil
}
