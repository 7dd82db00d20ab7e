package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-finance-keeper/internal/config"
	"github.com/MKhiriev/go-finance-keeper/internal/logger"
)

const sqliteParams = "?_foreign_keys=on&_busy_timeout=5000"

// NewConnectSQLite opens the client database file, creating it and its
// directory when missing.
func NewConnectSQLite(ctx context.Context, cfg config.ClientDB, log *logger.Logger) (*DB, error) {
	if err := ensureDBFile(cfg.DSN); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database file")
		return nil, err
	}

	return openDB(ctx, DialectSQLite, cfg.DSN+sqliteParams, log, func(conn *sql.DB) {
		// sqlite allows a single writer
		conn.SetMaxOpenConns(1)
	})
}

func ensureDBFile(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("error creating DB dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating DB file: %w", err)
	}
	return f.Close()
}
