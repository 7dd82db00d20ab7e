package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed client/*.sql server/*.sql
var embedMigrations embed.FS

// MigrateSQLite applies the client ledger schema.
func MigrateSQLite(db *sql.DB) error {
	return migrate(db, "sqlite3", "client")
}

// MigratePostgres applies the remote store schema.
func MigratePostgres(db *sql.DB) error {
	return migrate(db, "pgx", "server")
}

func migrate(db *sql.DB, dialect, dir string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
