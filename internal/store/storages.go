package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-finance-keeper/internal/config"
	"github.com/MKhiriev/go-finance-keeper/internal/logger"
)

// Storages groups the server repositories.
type Storages struct {
	UserRepository        UserRepository
	RemoteEntryRepository RemoteEntryRepository

	db *DB
}

// NewStorages connects to PostgreSQL, applies migrations and wires the
// server repositories.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		UserRepository:        NewUserRepository(db, logger),
		RemoteEntryRepository: NewRemoteEntryRepository(db, logger),
		db:                    db,
	}, nil
}

// Ping checks the database connection.
func (s *Storages) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *Storages) Close() error {
	return s.db.Close()
}
