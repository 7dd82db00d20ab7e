package store

import (
	"fmt"

	"github.com/MKhiriev/go-finance-keeper/migrations"
)

// Migrate applies the migration set matching the connection dialect.
func (db *DB) Migrate() error {
	switch db.dialect {
	case DialectSQLite:
		return migrations.MigrateSQLite(db.DB)
	case DialectPostgres:
		return migrations.MigratePostgres(db.DB)
	default:
		return fmt.Errorf("no migrations for dialect %q", db.dialect)
	}
}
