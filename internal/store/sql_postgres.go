package store

import (
	"context"
	"database/sql"
	"errors"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/MKhiriev/go-finance-keeper/internal/config"
	"github.com/MKhiriev/go-finance-keeper/internal/logger"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	postgresMaxOpenConns = 10
	postgresMaxIdleConns = 4
)

// NewConnectPostgres opens the server database through the pgx stdlib driver.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	return openDB(ctx, DialectPostgres, cfg.DSN, log, func(conn *sql.DB) {
		conn.SetMaxOpenConns(postgresMaxOpenConns)
		conn.SetMaxIdleConns(postgresMaxIdleConns)
	})
}

// postgresError returns the SQLSTATE code of err or "" if err did not come
// from the server.
func postgresError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
