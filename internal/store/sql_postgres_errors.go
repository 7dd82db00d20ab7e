package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification tells whether a failed statement may succeed when run
// again.
type ErrorClassification int

const (
	NonRetryable ErrorClassification = iota
	Retryable
)

// PostgresErrorClassifier implements [ErrorClassificator] on top of the
// SQLSTATE carried by pgx errors.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify returns [NonRetryable] for nil and for errors that did not come
// from the server.
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	var pgErr *pgconn.PgError
	if err == nil || !errors.As(err, &pgErr) {
		return NonRetryable
	}
	return ClassifyPgError(pgErr)
}

// ClassifyPgError treats connection loss (class 08), rolled back
// transactions (class 40) and a server that is starting up or shutting
// down as transient. Everything else, unique violations in particular,
// is permanent.
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	switch {
	case pgErr == nil:
		return NonRetryable
	case pgerrcode.IsConnectionException(pgErr.Code),
		pgerrcode.IsTransactionRollback(pgErr.Code):
		return Retryable
	}

	switch pgErr.Code {
	case pgerrcode.CannotConnectNow,
		pgerrcode.AdminShutdown,
		pgerrcode.CrashShutdown,
		pgerrcode.TooManyConnections:
		return Retryable
	}

	return NonRetryable
}
