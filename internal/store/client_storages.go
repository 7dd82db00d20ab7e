package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-finance-keeper/internal/config"
	"github.com/MKhiriev/go-finance-keeper/internal/logger"
)

// ClientStorages groups all client-side storage repositories into a single
// value that can be passed around the service layer.
type ClientStorages struct {
	// EntryRepository is the device-resident ledger.
	EntryRepository LocalEntryRepository

	// SettingsRepository keeps the device salt and the persisted session.
	SettingsRepository SettingsRepository

	closer func() error
}

// NewClientStorages initialises the client storage layer:
//   - "memory" / ":memory:" DSNs and "*.json" paths use the JSON-file store;
//   - any other DSN is an SQLite file which is created if missing and
//     migrated to the latest schema.
func NewClientStorages(cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Str("dsn", cfg.DB.DSN).Msg("creating new storages...")

	if IsMemoryDSN(cfg.DB.DSN) || strings.HasSuffix(cfg.DB.DSN, ".json") {
		fileStorage, err := NewLocalFileStorage(cfg.DB.DSN)
		if err != nil {
			return nil, fmt.Errorf("file storage error: %w", err)
		}

		return &ClientStorages{
			EntryRepository:    fileStorage,
			SettingsRepository: fileStorage,
		}, nil
	}

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		EntryRepository:    NewLocalEntryRepository(db, logger),
		SettingsRepository: NewSettingsRepository(db, logger),
		closer:             db.Close,
	}, nil
}

// Close releases the underlying database connection, if any.
func (s *ClientStorages) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}
