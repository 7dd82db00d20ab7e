package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/go-finance-keeper/internal/logger"
)

// retryDelays are the pauses before the second and third attempt of an
// idempotent statement.
var retryDelays = []time.Duration{50 * time.Millisecond, 200 * time.Millisecond}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// Dialect names the SQL dialect a [DB] speaks. It selects the migration set.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "pgx"
)

type DB struct {
	*sql.DB
	dialect            Dialect
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewDB wraps an already opened connection. It is used by tests to plug in
// sqlmock connections.
func NewDB(conn *sql.DB, dialect Dialect, log *logger.Logger) *DB {
	db := &DB{DB: conn, dialect: dialect, logger: log}
	if dialect == DialectPostgres {
		db.errorClassificator = NewPostgresErrorClassifier()
	}
	return db
}

// openDB opens a connection for dialect, applies tune and checks it with a
// ping.
func openDB(ctx context.Context, dialect Dialect, dsn string, log *logger.Logger, tune func(*sql.DB)) (*DB, error) {
	conn, err := sql.Open(string(dialect), dsn)
	if err != nil {
		log.Err(err).Str("dialect", string(dialect)).Msg("error opening database connection")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	if tune != nil {
		tune(conn)
	}

	if err = conn.PingContext(ctx); err != nil {
		conn.Close()
		log.Err(err).Str("dialect", string(dialect)).Msg("error connecting database (ping)")
		return nil, fmt.Errorf("error connecting database: %w", err)
	}
	log.Info().Str("dialect", string(dialect)).Msg("connected to database successfully")

	return NewDB(conn, dialect, log), nil
}

// IsRetryable reports whether err is a transient database failure.
func (db *DB) IsRetryable(err error) bool {
	if db.errorClassificator == nil {
		return false
	}
	return db.errorClassificator.Classify(err) == Retryable
}

// withRetry runs fn and repeats it after a transient failure. fn must be
// idempotent. The last error is returned as is.
func (db *DB) withRetry(ctx context.Context, fn func() error) error {
	err := fn()
	for _, delay := range retryDelays {
		if err == nil || !db.IsRetryable(err) {
			return err
		}

		logger.FromContext(ctx).Warn().Err(err).Dur("delay", delay).Msg("transient database error, retrying")

		select {
		case <-ctx.Done():
			return err
		case <-time.After(delay):
		}
		err = fn()
	}
	return err
}
