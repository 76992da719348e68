package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"

	"copilot/db"
)

// Migration dialects, matching the directories under db/migrations.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// NewMigrator returns a migrator that applies the embedded migrations for
// dialect to conn. Closing the migrator also closes conn.
func NewMigrator(conn *sqlx.DB, dialect string) (*migrate.Migrate, error) {
	var (
		driver database.Driver
		err    error
	)
	switch dialect {
	case DialectPostgres:
		driver, err = postgres.WithInstance(conn.DB, &postgres.Config{})
	case DialectSQLite:
		driver, err = sqlite.WithInstance(conn.DB, &sqlite.Config{})
	default:
		return nil, fmt.Errorf("unknown migration dialect: %s", dialect)
	}
	if err != nil {
		return nil, fmt.Errorf("creating %s migration driver: %w", dialect, err)
	}

	src, err := iofs.New(db.Migrations, "migrations/"+dialect)
	if err != nil {
		return nil, fmt.Errorf("reading embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, dialect, driver)
	if err != nil {
		return nil, fmt.Errorf("creating migrator: %w", err)
	}
	return m, nil
}

// MigrateUp applies every pending migration. The migrator is left open
// because closing it would close conn.
func MigrateUp(ctx context.Context, conn *sqlx.DB, dialect string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m, err := NewMigrator(conn, dialect)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying %s migrations: %w", dialect, err)
	}
	return nil
}
